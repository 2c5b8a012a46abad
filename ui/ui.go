// Package ui bakes immediate-mode 2D interface elements into pixel-space
// vertex batches. The builder works entirely on the CPU; the GL backend
// uploads the finished batch each frame and draws it with the atlas
// shader, which maps pixel positions straight to NDC.
package ui

import (
	"brush-engine/core"
)

// Vertex is one UI vertex: a screen position in pixels with the origin at
// the bottom-left (the builder flips Y from the top-left input space) and
// a texcoord in atlas pixels.
type Vertex struct {
	X, Y float32
	U, V float32
}

// Batch is a finished set of UI geometry for one atlas texture.
type Batch struct {
	Vertices []Vertex
	Indices  []uint16
}

// Builder accumulates quads for one frame. Coordinates passed in use a
// top-left origin with Y growing downward, the convention of every other
// UI system; the builder converts to the GL convention during the bake.
type Builder struct {
	ScreenW float32
	ScreenH float32
	batch   Batch
}

func NewBuilder(screenW, screenH float32) *Builder {
	return &Builder{ScreenW: screenW, ScreenH: screenH}
}

// Reset clears the batch for a new frame and picks up the current screen
// size.
func (b *Builder) Reset(screenW, screenH float32) {
	b.ScreenW = screenW
	b.ScreenH = screenH
	b.batch.Vertices = b.batch.Vertices[:0]
	b.batch.Indices = b.batch.Indices[:0]
}

// Batch returns the accumulated geometry. The slices are reused across
// Reset calls; upload before the next Reset.
func (b *Builder) Batch() Batch {
	return b.batch
}

// Quad pushes one textured rectangle: dst in screen pixels (top-left
// origin), src in atlas pixels with a bottom-left origin, matching the
// vertically flipped texture upload.
func (b *Builder) Quad(dst, src core.Rect) {
	base := uint16(len(b.batch.Vertices))

	// flip Y so the rect lands in GL's bottom-left space
	top := b.ScreenH - dst.Y
	bottom := b.ScreenH - (dst.Y + dst.Height)

	b.batch.Vertices = append(b.batch.Vertices,
		Vertex{X: dst.X, Y: bottom, U: src.X, V: src.Y},
		Vertex{X: dst.X + dst.Width, Y: bottom, U: src.X + src.Width, V: src.Y},
		Vertex{X: dst.X + dst.Width, Y: top, U: src.X + src.Width, V: src.Y + src.Height},
		Vertex{X: dst.X, Y: top, U: src.X, V: src.Y + src.Height},
	)
	b.batch.Indices = append(b.batch.Indices,
		base, base+1, base+2,
		base+2, base+3, base,
	)
}

// Image draws a texture region 1:1 or stretched into dst.
func (b *Builder) Image(dst, src core.Rect) {
	b.Quad(dst, src)
}

// NineCell draws a frame: the corners of the source rect keep their size,
// the edges stretch along one axis and the middle stretches along both.
// border is the corner size in atlas pixels, applied on all four sides of
// both rects.
func (b *Builder) NineCell(dst, src core.Rect, border float32) {
	dx := [4]float32{dst.X, dst.X + border, dst.X + dst.Width - border, dst.X + dst.Width}
	dy := [4]float32{dst.Y, dst.Y + border, dst.Y + dst.Height - border, dst.Y + dst.Height}
	sx := [4]float32{src.X, src.X + border, src.X + src.Width - border, src.X + src.Width}
	// source rows descend: dst rows count from the top, atlas V from the bottom
	sy := [4]float32{src.Y + src.Height, src.Y + src.Height - border, src.Y + border, src.Y}

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			b.Quad(
				core.Rect{X: dx[col], Y: dy[row], Width: dx[col+1] - dx[col], Height: dy[row+1] - dy[row]},
				core.Rect{X: sx[col], Y: sy[row+1], Width: sx[col+1] - sx[col], Height: sy[row] - sy[row+1]},
			)
		}
	}
}
