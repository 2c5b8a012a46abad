package ui

import (
	"strings"

	"brush-engine/core"
)

// The font atlas is a fixed character grid: fontCols glyphs per row, each
// GlyphWidth x GlyphHeight pixels, laid out in fontChars order starting at
// the top-left of the atlas region.
const (
	GlyphWidth  float32 = 6
	GlyphHeight float32 = 10
	fontCols            = 10
	fontRows            = 8
)

// fontChars lists the glyphs in atlas order, top row first.
const fontChars = "ABCDEFGHIJ" +
	"KLMNOPQRST" +
	"UVWXYZabcd" +
	"efghijklmn" +
	"opqrstuvwx" +
	"yz01234567" +
	"89.,:;!?'\"" +
	"()[]-+/%_ "

// glyphRect returns the atlas-pixel rect for one character, in the
// bottom-left-origin convention of Builder.Quad. fontOriginY is the
// atlas Y of the top edge of the glyph grid. Unknown characters map to
// the last glyph (blank).
func glyphRect(c rune, fontOriginY float32) core.Rect {
	idx := strings.IndexRune(fontChars, c)
	if idx < 0 {
		idx = len(fontChars) - 1
	}
	col := idx % fontCols
	row := idx / fontCols
	return core.Rect{
		X:      float32(col) * GlyphWidth,
		Y:      fontOriginY - float32(row+1)*GlyphHeight,
		Width:  GlyphWidth,
		Height: GlyphHeight,
	}
}

// Text lays out a string left to right at (x, y) in screen pixels
// (top-left origin), scaled by scale. Newlines advance by one glyph
// height. The font grid is assumed to start at the top of the atlas,
// which sits at atlasHeight in bottom-origin coordinates.
func (b *Builder) Text(x, y float32, text string, scale, atlasHeight float32) {
	penX := x
	penY := y
	for _, c := range text {
		if c == '\n' {
			penX = x
			penY += GlyphHeight * scale
			continue
		}
		b.Quad(
			core.Rect{X: penX, Y: penY, Width: GlyphWidth * scale, Height: GlyphHeight * scale},
			glyphRect(c, atlasHeight),
		)
		penX += GlyphWidth * scale
	}
}

// TextWidth returns the pixel width of a single-line string at the given
// scale, for right-aligned and centered layout.
func TextWidth(text string, scale float32) float32 {
	return float32(len([]rune(text))) * GlyphWidth * scale
}
