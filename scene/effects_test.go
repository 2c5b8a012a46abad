package scene

import (
	stdmath "math"
	"testing"

	"brush-engine/core"
)

func gradientSamples() [9]core.Color {
	var s [9]core.Color
	for i := range s {
		v := float32(i) / 8
		s[i] = core.Color{R: v, G: v * 0.5, B: 1 - v, A: 1}
	}
	return s
}

func TestKernelDisabledPassthrough(t *testing.T) {
	k := KernelParams{Weights: [9]float32{1, 1, 1, 1, 1, 1, 1, 1, 1}}
	samples := gradientSamples()
	got := k.Convolve(samples)
	if got != samples[4] {
		t.Errorf("disabled kernel: got %+v, want center sample %+v", got, samples[4])
	}
}

func TestIdentityKernelUnchanged(t *testing.T) {
	k := IdentityKernel()
	k.Enabled = true
	samples := gradientSamples()
	got := k.Convolve(samples)
	if !colorNear(got, samples[4], 0.00001) {
		t.Errorf("identity kernel: got %+v, want center sample %+v", got, samples[4])
	}
}

func TestBlurKernelWeightsSumToOne(t *testing.T) {
	var sum float32
	for _, w := range BlurKernel().Weights {
		sum += w
	}
	if stdmath.Abs(float64(sum-1)) > 0.00001 {
		t.Errorf("blur kernel weights sum to %v, want 1", sum)
	}

	// A uniform field must survive a normalized blur unchanged
	var flat [9]core.Color
	for i := range flat {
		flat[i] = core.Color{R: 0.3, G: 0.6, B: 0.9, A: 1}
	}
	got := BlurKernel().Convolve(flat)
	if !colorNear(got, flat[4], 0.00001) {
		t.Errorf("blur of uniform field: got %+v, want %+v", got, flat[4])
	}
}

func TestEdgeKernelZeroOnFlatField(t *testing.T) {
	var flat [9]core.Color
	for i := range flat {
		flat[i] = core.Color{R: 0.7, G: 0.7, B: 0.7, A: 1}
	}
	got := EdgeDetectKernel().Convolve(flat)
	if !colorNear(got, core.Color{A: 1}, 0.0001) {
		t.Errorf("edge detect on flat field: got %+v, want black", got)
	}
}

func TestKernelPreset(t *testing.T) {
	for _, name := range []string{"identity", "sharpen", "blur", "edge"} {
		k, ok := KernelPreset(name)
		if !ok {
			t.Errorf("preset %q not found", name)
		}
		if !k.Enabled {
			t.Errorf("preset %q should come back enabled", name)
		}
	}

	k, ok := KernelPreset("bogus")
	if ok || k.Enabled {
		t.Errorf("unknown preset: ok=%v enabled=%v, want disabled identity", ok, k.Enabled)
	}
}

func TestFogFactor(t *testing.T) {
	f := FogParams{Enabled: true, Strength: 2, Max: 0.75}

	tests := []struct {
		depth float32
		want  float32
	}{
		{0, 0},
		{0.5, 0.25},
		{0.8, 0.64},
		{0.9, 0.75}, // 0.81 clamped to Max
		{1, 0.75},
	}
	for _, tt := range tests {
		got := f.Factor(tt.depth)
		if stdmath.Abs(float64(got-tt.want)) > 0.00001 {
			t.Errorf("Factor(%v) = %v, want %v", tt.depth, got, tt.want)
		}
	}
}

func TestFogFullCoverage(t *testing.T) {
	// Strength 1, max 1, depth 1 resolves to exactly the fog color
	f := FogParams{
		Enabled:  true,
		Color:    core.Color{R: 0.2, G: 0.3, B: 0.4, A: 1},
		Strength: 1,
		Max:      1,
	}
	got := f.Apply(core.Color{R: 1, G: 0, B: 1, A: 1}, 1)
	if got != f.Color {
		t.Errorf("full fog: got %+v, want exactly %+v", got, f.Color)
	}
}

func TestFogDisabledIdentity(t *testing.T) {
	f := DefaultFog()
	in := core.Color{R: 0.9, G: 0.1, B: 0.4, A: 1}
	if got := f.Apply(in, 0.8); got != in {
		t.Errorf("disabled fog: got %+v, want %+v", got, in)
	}
}

func TestFogMonotonicInDepth(t *testing.T) {
	f := FogParams{Enabled: true, Color: core.ColorWhite, Strength: 3, Max: 1}
	prev := float32(-1)
	for _, d := range []float32{0, 0.2, 0.4, 0.6, 0.8, 1} {
		att := f.Factor(d)
		if att < prev {
			t.Errorf("fog factor decreased: Factor(%v) = %v, previous %v", d, att, prev)
		}
		prev = att
	}
}
