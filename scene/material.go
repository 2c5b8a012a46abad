package scene

import "brush-engine/core"

// Material describes Phong surface appearance for the scene shaders.
// The diffuse map feeds the ambient and diffuse terms, the specular map
// masks the highlight. Either texture may be nil; the renderer substitutes
// a 1x1 fallback so the shader always has both samplers bound.
type Material struct {
	Name      string
	Diffuse   *Texture
	Specular  *Texture
	Shininess float32
}

// DefaultMaterial returns a plain white matte material with a dark
// specular mask.
func DefaultMaterial() *Material {
	return &Material{
		Name:      "Default",
		Shininess: 32,
	}
}

// NewMaterial creates a material around a diffuse map.
func NewMaterial(name string, diffuse *Texture) *Material {
	return &Material{
		Name:      name,
		Diffuse:   diffuse,
		Shininess: 32,
	}
}

// CutoutAlphaThreshold is the sampled alpha below which cutout, UI and
// sprite fragments are dropped.
const CutoutAlphaThreshold float32 = 0.1

// CutoutDiscards mirrors the discard test in the cutout, UI and sprite
// fragment shaders. The comparison is strictly less-than, so a fragment
// exactly at the threshold still draws.
func CutoutDiscards(alpha float32) bool {
	return alpha < CutoutAlphaThreshold
}

// Sample builds the material half of a SurfaceSample from flat map values,
// for hosts and tests that shade without a GPU.
func (m *Material) Sample(diffuse, specular core.Color) SurfaceSample {
	return SurfaceSample{
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: m.Shininess,
	}
}
