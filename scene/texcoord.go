package scene

import "brush-engine/math"

// TileDivisor is the tiling scale for projected texcoords: one texture
// repeat per this many world units. Must stay in sync with TILE_DIVISOR
// in the scene vertex shaders.
const TileDivisor float32 = 2.0

// TileUV projects a world-space position onto the axis plane most aligned
// with the surface normal and scales it by the tiling divisor. This is the
// CPU mirror of the tileUV() function in the scene vertex shaders; the two
// must agree exactly.
//
// Axis selection uses the componentwise absolute of the normal. Y wins
// ties against both X and Z, X wins ties against Z. Faces whose dominant
// axis differs pick different planes, so texture seams along edges of
// non-axis-aligned geometry are expected.
func TileUV(worldPos, worldNormal math.Vec3) math.Vec2 {
	a := worldNormal.Abs()
	if a.Y >= a.X && a.Y >= a.Z {
		return math.Vec2{X: worldPos.X, Y: worldPos.Z}.Div(TileDivisor)
	}
	if a.X >= a.Z {
		return math.Vec2{X: worldPos.Z, Y: worldPos.Y}.Div(TileDivisor)
	}
	return math.Vec2{X: worldPos.X, Y: worldPos.Y}.Div(TileDivisor)
}
