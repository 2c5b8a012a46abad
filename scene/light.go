package scene

import (
	"fmt"
	stdmath "math"

	"brush-engine/core"
	"brush-engine/math"
)

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func pow32(base, exp float32) float32 {
	return float32(stdmath.Pow(float64(base), float64(exp)))
}

// MaxPointLights is the point light capacity of the scene shaders. The
// uniform arrays are sized with the same constant; LightSet enforces it
// host-side so the count uniform can never exceed the array.
const MaxPointLights = 64

// DirectionalLight shines uniformly along Direction. Direction points from
// the light toward the scene, so shading negates it to get the light vector.
type DirectionalLight struct {
	Direction math.Vec3
	Ambient   core.Color
	Diffuse   core.Color
	Specular  core.Color
}

// PointLight radiates from Position with distance attenuation
// 1 / (Constant + Linear*d + Quadratic*d*d). The coefficients are passed
// to the shader unvalidated; keep Constant at 1 (or at least well away
// from zero) so the denominator never vanishes.
type PointLight struct {
	Position  math.Vec3
	Ambient   core.Color
	Diffuse   core.Color
	Specular  core.Color
	Constant  float32
	Linear    float32
	Quadratic float32
}

// NewPointLight returns a light with the usual medium-range falloff.
func NewPointLight(position math.Vec3, diffuse core.Color) PointLight {
	return PointLight{
		Position:  position,
		Ambient:   diffuse.Scale(0.05),
		Diffuse:   diffuse,
		Specular:  core.ColorWhite,
		Constant:  1.0,
		Linear:    0.09,
		Quadratic: 0.032,
	}
}

// Attenuation mirrors the shader falloff term at the given distance.
func (l PointLight) Attenuation(distance float32) float32 {
	return 1.0 / (l.Constant + l.Linear*distance + l.Quadratic*distance*distance)
}

// SurfaceSample is everything the lighting model needs about one fragment:
// sampled material maps plus unit geometry vectors. It drives the CPU
// mirror of the fragment shader used by the tests.
type SurfaceSample struct {
	Normal    math.Vec3 // unit surface normal
	ViewDir   math.Vec3 // unit vector from surface toward the eye
	Diffuse   core.Color // diffuse map sample
	Specular  core.Color // specular map sample
	Shininess float32
}

// phong evaluates one light's contribution given its unit light vector
// (surface toward light) and the three light colors.
func phong(s SurfaceSample, lightDir math.Vec3, ambient, diffuse, specular core.Color) core.Color {
	diff := max32(s.Normal.Dot(lightDir), 0)

	reflectDir := lightDir.Negate().Reflect(s.Normal)
	spec := pow32(max32(s.ViewDir.Dot(reflectDir), 0), s.Shininess)

	out := ambient.Mul(s.Diffuse)
	out = out.Add(diffuse.Mul(s.Diffuse).Scale(diff))
	out = out.Add(specular.Mul(s.Specular).Scale(spec))
	return out
}

// Shade mirrors calcDirLight in the scene fragment shaders.
func (l DirectionalLight) Shade(s SurfaceSample) core.Color {
	lightDir := l.Direction.Negate().Normalize()
	return phong(s, lightDir, l.Ambient, l.Diffuse, l.Specular)
}

// Shade mirrors calcPointLight in the scene fragment shaders.
func (l PointLight) Shade(worldPos math.Vec3, s SurfaceSample) core.Color {
	toLight := l.Position.Sub(worldPos)
	lightDir := toLight.Normalize()
	att := l.Attenuation(toLight.Length())
	return phong(s, lightDir, l.Ambient, l.Diffuse, l.Specular).Scale(att)
}

// LightSet is the per-frame light list bound to the scene shaders: one
// directional light plus a bounded point light array.
type LightSet struct {
	Directional DirectionalLight
	points      []PointLight
}

func NewLightSet() *LightSet {
	return &LightSet{
		Directional: DirectionalLight{
			Direction: math.Vec3{X: -0.3, Y: -1, Z: -0.2}.Normalize(),
			Ambient:   core.Color{R: 0.15, G: 0.15, B: 0.15, A: 1},
			Diffuse:   core.Color{R: 0.8, G: 0.8, B: 0.75, A: 1},
			Specular:  core.ColorWhite,
		},
	}
}

// AddPoint appends a point light, refusing to grow past the shader capacity.
func (ls *LightSet) AddPoint(l PointLight) error {
	if len(ls.points) >= MaxPointLights {
		return fmt.Errorf("point light limit reached (%d)", MaxPointLights)
	}
	ls.points = append(ls.points, l)
	return nil
}

func (ls *LightSet) Points() []PointLight {
	return ls.points
}

func (ls *LightSet) Count() int {
	return len(ls.points)
}

func (ls *LightSet) Clear() {
	ls.points = ls.points[:0]
}

// SelectNearest returns up to k point lights ordered by distance to pos.
// Hosts with more lights than the shader capacity call this per frame to
// decide which ones to bind. Insertion sort into a bounded slice; k is
// small so this beats sorting the whole list.
func (ls *LightSet) SelectNearest(pos math.Vec3, k int) []PointLight {
	if k > MaxPointLights {
		k = MaxPointLights
	}
	if k <= 0 || len(ls.points) == 0 {
		return nil
	}

	selected := make([]PointLight, 0, k)
	dists := make([]float32, 0, k)
	for _, l := range ls.points {
		d := l.Position.Sub(pos).LengthSqr()
		i := len(dists)
		for i > 0 && dists[i-1] > d {
			i--
		}
		if i >= k {
			continue
		}
		if len(selected) < k {
			selected = append(selected, PointLight{})
			dists = append(dists, 0)
		}
		copy(selected[i+1:], selected[i:])
		copy(dists[i+1:], dists[i:])
		selected[i] = l
		dists[i] = d
	}
	return selected
}

// ShadeFragment mirrors the full fragment shader lighting path: fullbright
// short-circuits to tint times the diffuse sample, otherwise directional
// plus point contributions accumulate and the sum is multiplied by the
// per-vertex tint.
func (ls *LightSet) ShadeFragment(state RenderState, worldPos math.Vec3, s SurfaceSample, tint core.Color) core.Color {
	if state.Fullbright {
		return tint.Mul(s.Diffuse)
	}
	acc := ls.Directional.Shade(s)
	for _, l := range ls.points {
		acc = acc.Add(l.Shade(worldPos, s))
	}
	return acc.Mul(tint)
}
