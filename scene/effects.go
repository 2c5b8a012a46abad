package scene

import (
	"brush-engine/core"
)

// KernelParams drives the 3x3 convolution stage of the post-process
// compositor. Weights are laid out row-major, top row first, matching the
// top/middle/bottom vec3 uniforms of the screen shader. Offset is the
// sample spacing in texels.
type KernelParams struct {
	Enabled bool
	Weights [9]float32
	Offset  float32
}

// FogParams drives the depth fog stage. The attenuation toward Color is
// min(pow(depth, Strength), Max) with depth in [0,1] from the depth
// buffer, so Strength below 1 pulls fog toward the camera and Max caps
// how much of the scene it can swallow.
type FogParams struct {
	Enabled  bool
	Color    core.Color
	Strength float32
	Max      float32
}

// FlagsWord packs the enable gate into bit 0 of the shader-side flags int.
func (k KernelParams) FlagsWord() int32 {
	if k.Enabled {
		return 1
	}
	return 0
}

func (f FogParams) FlagsWord() int32 {
	if f.Enabled {
		return 1
	}
	return 0
}

// IdentityKernel passes the center sample through untouched. With it the
// kernel stage is a no-op even when enabled.
func IdentityKernel() KernelParams {
	return KernelParams{
		Weights: [9]float32{
			0, 0, 0,
			0, 1, 0,
			0, 0, 0,
		},
		Offset: 1,
	}
}

func SharpenKernel() KernelParams {
	return KernelParams{
		Enabled: true,
		Weights: [9]float32{
			0, -1, 0,
			-1, 5, -1,
			0, -1, 0,
		},
		Offset: 1,
	}
}

func BlurKernel() KernelParams {
	return KernelParams{
		Enabled: true,
		Weights: [9]float32{
			1.0 / 16, 2.0 / 16, 1.0 / 16,
			2.0 / 16, 4.0 / 16, 2.0 / 16,
			1.0 / 16, 2.0 / 16, 1.0 / 16,
		},
		Offset: 1,
	}
}

func EdgeDetectKernel() KernelParams {
	return KernelParams{
		Enabled: true,
		Weights: [9]float32{
			1, 1, 1,
			1, -8, 1,
			1, 1, 1,
		},
		Offset: 1,
	}
}

// KernelPreset maps a settings-file name to its kernel. Unknown names get
// the identity kernel with the stage disabled.
func KernelPreset(name string) (KernelParams, bool) {
	switch name {
	case "identity":
		k := IdentityKernel()
		k.Enabled = true
		return k, true
	case "sharpen":
		return SharpenKernel(), true
	case "blur":
		return BlurKernel(), true
	case "edge":
		return EdgeDetectKernel(), true
	default:
		return IdentityKernel(), false
	}
}

// Convolve mirrors the kernel loop of the screen shader: the weighted sum
// of the nine neighbourhood samples replaces the center color. Samples are
// row-major, top row first, like Weights.
func (k KernelParams) Convolve(samples [9]core.Color) core.Color {
	if !k.Enabled {
		return samples[4]
	}
	var out core.Color
	for i, w := range k.Weights {
		out.R += samples[i].R * w
		out.G += samples[i].G * w
		out.B += samples[i].B * w
	}
	out.A = samples[4].A
	return out
}

// Factor mirrors the shader's fog attenuation for a depth-buffer value.
func (f FogParams) Factor(depth float32) float32 {
	att := pow32(depth, f.Strength)
	if att > f.Max {
		att = f.Max
	}
	return att
}

// Apply mirrors the full fog stage: lerp from the incoming color toward
// the fog color by the attenuation factor.
func (f FogParams) Apply(color core.Color, depth float32) core.Color {
	if !f.Enabled {
		return color
	}
	return color.Lerp(f.Color, f.Factor(depth))
}

// DefaultFog is a disabled mid-grey fog block so hosts can enable it by
// flipping one field.
func DefaultFog() FogParams {
	return FogParams{
		Color:    core.Color{R: 0.5, G: 0.55, B: 0.6, A: 1},
		Strength: 3,
		Max:      0.9,
	}
}
