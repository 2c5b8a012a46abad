package scene

import (
	"testing"

	"brush-engine/math"
)

func TestTileUVDominantAxis(t *testing.T) {
	pos := math.NewVec3(4, 6, 8)

	tests := []struct {
		name   string
		normal math.Vec3
		want   math.Vec2
	}{
		{"up", math.Vec3Up, math.NewVec2(4/TileDivisor, 8/TileDivisor)},
		{"down", math.Vec3Down, math.NewVec2(4/TileDivisor, 8/TileDivisor)},
		{"right", math.Vec3Right, math.NewVec2(8/TileDivisor, 6/TileDivisor)},
		{"left", math.Vec3Left, math.NewVec2(8/TileDivisor, 6/TileDivisor)},
		{"front", math.Vec3Front, math.NewVec2(4/TileDivisor, 6/TileDivisor)},
		{"back", math.Vec3Back, math.NewVec2(4/TileDivisor, 6/TileDivisor)},
	}

	for _, tt := range tests {
		got := TileUV(pos, tt.normal)
		if got != tt.want {
			t.Errorf("%s: TileUV = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTileUVTieBreaks(t *testing.T) {
	pos := math.NewVec3(4, 6, 8)

	// Y wins a tie with X: floor projection
	got := TileUV(pos, math.NewVec3(1, 1, 0))
	want := math.NewVec2(4/TileDivisor, 8/TileDivisor)
	if got != want {
		t.Errorf("Y/X tie: TileUV = %v, want %v", got, want)
	}

	// Y wins a tie with Z
	got = TileUV(pos, math.NewVec3(0, 1, 1))
	if got != want {
		t.Errorf("Y/Z tie: TileUV = %v, want %v", got, want)
	}

	// Y wins a three-way tie
	got = TileUV(pos, math.NewVec3(1, 1, 1))
	if got != want {
		t.Errorf("three-way tie: TileUV = %v, want %v", got, want)
	}

	// X wins a tie with Z: wall projection on ZY
	got = TileUV(pos, math.NewVec3(1, 0, 1))
	want = math.NewVec2(8/TileDivisor, 6/TileDivisor)
	if got != want {
		t.Errorf("X/Z tie: TileUV = %v, want %v", got, want)
	}
}

func TestTileUVSignInvariance(t *testing.T) {
	// Axis selection uses absolute components, so negated normals project
	// onto the same plane
	pos := math.NewVec3(-3, 5, 7)
	for _, n := range []math.Vec3{
		math.NewVec3(0.2, 0.9, -0.1),
		math.NewVec3(-0.2, -0.9, 0.1),
	} {
		got := TileUV(pos, n)
		want := math.NewVec2(-3/TileDivisor, 7/TileDivisor)
		if got != want {
			t.Errorf("normal %v: TileUV = %v, want %v", n, got, want)
		}
	}
}
