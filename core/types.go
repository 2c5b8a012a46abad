package core

import (
	"brush-engine/math"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite  = Color{1, 1, 1, 1}
	ColorBlack  = Color{0, 0, 0, 1}
	ColorRed    = Color{1, 0, 0, 1}
	ColorGreen  = Color{0, 1, 0, 1}
	ColorBlue   = Color{0, 0, 1, 1}
	ColorYellow = Color{1, 1, 0, 1}
)

// Scale multiplies the RGB channels by s, leaving alpha untouched.
func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

// Mul multiplies two colors componentwise on RGB, leaving alpha from c.
func (c Color) Mul(other Color) Color {
	return Color{R: c.R * other.R, G: c.G * other.G, B: c.B * other.B, A: c.A}
}

// Add sums the RGB channels, leaving alpha from c.
func (c Color) Add(other Color) Color {
	return Color{R: c.R + other.R, G: c.G + other.G, B: c.B + other.B, A: c.A}
}

// Lerp blends toward other by t on all four channels. Uses the
// c*(1-t) + other*t form of GLSL mix, which is exact at both endpoints.
func (c Color) Lerp(other Color, t float32) Color {
	return Color{
		R: c.R*(1-t) + other.R*t,
		G: c.G*(1-t) + other.G*t,
		B: c.B*(1-t) + other.B*t,
		A: c.A*(1-t) + other.A*t,
	}
}

func (c Color) ToVec3() math.Vec3 {
	return math.Vec3{X: c.R, Y: c.G, Z: c.B}
}

type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
	Color    Color
}

type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

// Rect is a pixel-space rectangle with a top-left origin.
type Rect struct {
	X, Y, Width, Height float32
}
