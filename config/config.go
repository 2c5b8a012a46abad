// Package config loads the demo host's render settings from a YAML file.
// Every field has a sensible default; a missing file yields the defaults
// so the binary runs without any on-disk configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"brush-engine/core"
	"brush-engine/scene"
)

type WindowSettings struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	VSync      bool   `yaml:"vsync"`
	Fullscreen bool   `yaml:"fullscreen"`
}

type FogSettings struct {
	Enabled  bool       `yaml:"enabled"`
	Color    [3]float32 `yaml:"color"`
	Strength float32    `yaml:"strength"`
	Max      float32    `yaml:"max"`
}

type KernelSettings struct {
	// Preset names one of the built-in kernels (identity, sharpen, blur,
	// edge). Explicit weights override the preset when present.
	Preset  string    `yaml:"preset"`
	Weights []float32 `yaml:"weights"`
	Offset  float32   `yaml:"offset"`
}

type Settings struct {
	Window      WindowSettings `yaml:"window"`
	Fog         FogSettings    `yaml:"fog"`
	Kernel      KernelSettings `yaml:"kernel"`
	Skybox      string         `yaml:"skybox"`
	TextureRoot string         `yaml:"texture_root"`
}

func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Width:  1280,
			Height: 720,
			Title:  "Brush Engine",
			VSync:  true,
		},
		Fog: FogSettings{
			Color:    [3]float32{0.5, 0.55, 0.6},
			Strength: 3,
			Max:      0.9,
		},
		Kernel: KernelSettings{
			Offset: 1,
		},
		Skybox:      "",
		TextureRoot: "res/textures",
	}
}

// Load reads settings from path, layered over the defaults. A missing
// file is not an error; a malformed one is.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("config: %s not found, using defaults\n", path)
			return s, nil
		}
		return s, fmt.Errorf("read config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse config %q: %w", path, err)
	}
	return s, nil
}

// WindowConfig converts the window block to the core type.
func (s Settings) WindowConfig() core.WindowConfig {
	return core.WindowConfig{
		Width:      s.Window.Width,
		Height:     s.Window.Height,
		Title:      s.Window.Title,
		Resizable:  true,
		VSync:      s.Window.VSync,
		Fullscreen: s.Window.Fullscreen,
	}
}

// FogParams converts the fog block to the scene parameter struct.
func (s Settings) FogParams() scene.FogParams {
	return scene.FogParams{
		Enabled:  s.Fog.Enabled,
		Color:    core.Color{R: s.Fog.Color[0], G: s.Fog.Color[1], B: s.Fog.Color[2], A: 1},
		Strength: s.Fog.Strength,
		Max:      s.Fog.Max,
	}
}

// KernelParams resolves the kernel block: explicit weights win over a
// preset name, and nine weights are required for the explicit form.
func (s Settings) KernelParams() (scene.KernelParams, error) {
	if len(s.Kernel.Weights) > 0 {
		if len(s.Kernel.Weights) != 9 {
			return scene.IdentityKernel(), fmt.Errorf("kernel weights: got %d values, want 9", len(s.Kernel.Weights))
		}
		k := scene.KernelParams{Enabled: true, Offset: s.Kernel.Offset}
		copy(k.Weights[:], s.Kernel.Weights)
		if k.Offset == 0 {
			k.Offset = 1
		}
		return k, nil
	}

	if s.Kernel.Preset != "" {
		k, ok := scene.KernelPreset(s.Kernel.Preset)
		if !ok {
			return k, fmt.Errorf("unknown kernel preset %q", s.Kernel.Preset)
		}
		if s.Kernel.Offset != 0 {
			k.Offset = s.Kernel.Offset
		}
		return k, nil
	}

	return scene.IdentityKernel(), nil
}
