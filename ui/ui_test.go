package ui

import (
	"testing"

	"brush-engine/core"
)

func TestQuadFlipsY(t *testing.T) {
	b := NewBuilder(800, 600)
	b.Quad(
		core.Rect{X: 10, Y: 20, Width: 100, Height: 50},
		core.Rect{X: 0, Y: 0, Width: 16, Height: 16},
	)

	batch := b.Batch()
	if len(batch.Vertices) != 4 || len(batch.Indices) != 6 {
		t.Fatalf("quad geometry: %d verts, %d indices", len(batch.Vertices), len(batch.Indices))
	}

	// Input rect top edge at y=20 becomes 600-20=580 in GL space, bottom
	// edge at y=70 becomes 530
	for _, v := range batch.Vertices {
		if v.Y != 580 && v.Y != 530 {
			t.Errorf("vertex Y = %v, want 580 or 530", v.Y)
		}
	}
	// winding references the first vertex block
	if batch.Indices[0] != 0 || batch.Indices[5] != 0 {
		t.Errorf("indices = %v", batch.Indices)
	}
}

func TestQuadIndicesOffsetPerQuad(t *testing.T) {
	b := NewBuilder(800, 600)
	src := core.Rect{Width: 8, Height: 8}
	b.Quad(core.Rect{X: 0, Y: 0, Width: 8, Height: 8}, src)
	b.Quad(core.Rect{X: 8, Y: 0, Width: 8, Height: 8}, src)

	batch := b.Batch()
	if len(batch.Indices) != 12 {
		t.Fatalf("index count = %d, want 12", len(batch.Indices))
	}
	for _, idx := range batch.Indices[6:] {
		if idx < 4 || idx > 7 {
			t.Errorf("second quad index %d outside 4..7", idx)
		}
	}
}

func TestNineCellGeometry(t *testing.T) {
	b := NewBuilder(800, 600)
	b.NineCell(
		core.Rect{X: 100, Y: 100, Width: 90, Height: 60},
		core.Rect{X: 0, Y: 0, Width: 24, Height: 24},
		8,
	)

	batch := b.Batch()
	if len(batch.Vertices) != 36 || len(batch.Indices) != 54 {
		t.Fatalf("nine-cell geometry: %d verts, %d indices, want 36/54", len(batch.Vertices), len(batch.Indices))
	}

	// Total covered area spans the destination rect: min and max X
	minX, maxX := batch.Vertices[0].X, batch.Vertices[0].X
	for _, v := range batch.Vertices {
		if v.X < minX {
			minX = v.X
		}
		if v.X > maxX {
			maxX = v.X
		}
	}
	if minX != 100 || maxX != 190 {
		t.Errorf("nine-cell X span = [%v, %v], want [100, 190]", minX, maxX)
	}
}

func TestTextLayout(t *testing.T) {
	b := NewBuilder(800, 600)
	b.Text(10, 10, "AB", 1, 80)

	batch := b.Batch()
	if len(batch.Vertices) != 8 {
		t.Fatalf("text vertex count = %d, want 8", len(batch.Vertices))
	}

	// Second glyph starts one advance to the right
	if batch.Vertices[4].X != 10+GlyphWidth {
		t.Errorf("second glyph X = %v, want %v", batch.Vertices[4].X, 10+GlyphWidth)
	}

	// 'A' is the first glyph: top-left of the grid
	if batch.Vertices[0].U != 0 {
		t.Errorf("glyph A U = %v, want 0", batch.Vertices[0].U)
	}
	// 'B' is the second glyph in the top row
	if batch.Vertices[4].U != GlyphWidth {
		t.Errorf("glyph B U = %v, want %v", batch.Vertices[4].U, GlyphWidth)
	}
}

func TestTextNewline(t *testing.T) {
	b := NewBuilder(800, 600)
	b.Text(10, 10, "A\nB", 2, 80)

	batch := b.Batch()
	if len(batch.Vertices) != 8 {
		t.Fatalf("vertex count = %d, want 8 (newline emits no quad)", len(batch.Vertices))
	}
	// second line starts back at x and one scaled glyph height down,
	// which in flipped space is lower on screen
	if batch.Vertices[4].X != 10 {
		t.Errorf("second line X = %v, want 10", batch.Vertices[4].X)
	}
	if batch.Vertices[4].Y >= batch.Vertices[0].Y {
		t.Error("second line should sit below the first in flipped space")
	}
}

func TestTextWidth(t *testing.T) {
	if got := TextWidth("hello", 2); got != 5*GlyphWidth*2 {
		t.Errorf("TextWidth = %v, want %v", got, 5*GlyphWidth*2)
	}
}

func TestBuilderReset(t *testing.T) {
	b := NewBuilder(800, 600)
	b.Quad(core.Rect{Width: 8, Height: 8}, core.Rect{Width: 8, Height: 8})
	b.Reset(1024, 768)

	if len(b.Batch().Vertices) != 0 || len(b.Batch().Indices) != 0 {
		t.Error("Reset should clear the batch")
	}
	if b.ScreenW != 1024 || b.ScreenH != 768 {
		t.Errorf("Reset screen size = %vx%v", b.ScreenW, b.ScreenH)
	}
}

func TestSortSprites(t *testing.T) {
	sprites := []Sprite{
		{Depth: 0.2},
		{Depth: 0.9},
		{Depth: 0.5},
	}
	SortSprites(sprites)

	want := []float32{0.9, 0.5, 0.2}
	for i, s := range sprites {
		if s.Depth != want[i] {
			t.Errorf("sprite[%d].Depth = %v, want %v (back to front)", i, s.Depth, want[i])
		}
	}
}
