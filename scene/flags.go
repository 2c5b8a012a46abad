package scene

// Per-instance render flags, packed into the low bits of a 32-bit word.
// The word travels with every instance record and is re-tested in the
// shaders; undefined bits are ignored so older scene data keeps working.
const (
	FlagTileTexture uint32 = 1 << 0 // project texcoords from world position
	FlagFullbright  uint32 = 1 << 1 // skip lighting, output tint * diffuse
	FlagSkipDraw    uint32 = 1 << 2 // collapse the instance to a degenerate primitive
	FlagCutout      uint32 = 1 << 3 // discard low-alpha fragments (static mesh path only)
)

// InstanceFlags is the raw per-instance flag word.
type InstanceFlags uint32

// RenderState holds the flag word decoded into named booleans. Decode once
// at the draw boundary; everything past that point reads the fields.
type RenderState struct {
	TileTexture bool
	Fullbright  bool
	SkipDraw    bool
	Cutout      bool
}

func (f InstanceFlags) Decode() RenderState {
	return RenderState{
		TileTexture: uint32(f)&FlagTileTexture != 0,
		Fullbright:  uint32(f)&FlagFullbright != 0,
		SkipDraw:    uint32(f)&FlagSkipDraw != 0,
		Cutout:      uint32(f)&FlagCutout != 0,
	}
}

func (f InstanceFlags) Has(mask uint32) bool {
	return uint32(f)&mask != 0
}

// Encode packs named booleans back into a flag word.
func (s RenderState) Encode() InstanceFlags {
	var f uint32
	if s.TileTexture {
		f |= FlagTileTexture
	}
	if s.Fullbright {
		f |= FlagFullbright
	}
	if s.SkipDraw {
		f |= FlagSkipDraw
	}
	if s.Cutout {
		f |= FlagCutout
	}
	return InstanceFlags(f)
}
