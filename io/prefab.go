package io

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"brush-engine/math"
	"brush-engine/scene"
)

// PrefabFile is the on-disk JSON format for a placeable model: a set of
// brushes and mesh references with per-part render flags.
type PrefabFile struct {
	Name    string       `json:"name"`
	Mobile  bool         `json:"mobile,omitempty"`
	Brushes []BrushData  `json:"brushes,omitempty"`
	Meshes  []MeshRef    `json:"meshes,omitempty"`
}

// BrushData is an axis-aligned textured box part.
type BrushData struct {
	Texture  string     `json:"texture"`
	Position [3]float32 `json:"position"`
	Size     [3]float32 `json:"size"`
	Flags    []string   `json:"flags,omitempty"`
}

// MeshRef places a named mesh with a local transform. When Source names a
// model file (relative to the prefab), ImportMeshes loads it so the mesh
// does not have to be registered by hand; otherwise Mesh must match a mesh
// already in the scene registry.
type MeshRef struct {
	Mesh     string     `json:"mesh"`
	Source   string     `json:"source,omitempty"`
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation,omitempty"` // euler, radians
	Scale    [3]float32 `json:"scale,omitempty"`    // zero value means (1,1,1)
	Flags    []string   `json:"flags,omitempty"`
}

// flagNames maps the prefab flag strings to their bit masks.
var flagNames = map[string]uint32{
	"extend_texture": scene.FlagTileTexture,
	"fullbright":     scene.FlagFullbright,
	"skip":           scene.FlagSkipDraw,
	"cutout":         scene.FlagCutout,
}

// ParseFlags folds a list of named flags into one instance flag word.
func ParseFlags(names []string) (scene.InstanceFlags, error) {
	var flags uint32
	for _, name := range names {
		mask, ok := flagNames[name]
		if !ok {
			return 0, fmt.Errorf("unknown render flag %q", name)
		}
		flags |= mask
	}
	return scene.InstanceFlags(flags), nil
}

// LoadPrefab reads a prefab JSON file, loads any mesh sources it names
// relative to its own directory, and builds the corresponding model. The
// returned meshes still need registering with the scene.
func LoadPrefab(path string) (*scene.Model, []*scene.Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read prefab %q: %w", path, err)
	}
	var file PrefabFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("parse prefab %q: %w", path, err)
	}
	model, err := BuildModel(&file)
	if err != nil {
		return nil, nil, err
	}
	meshes, err := ImportMeshes(&file, filepath.Dir(path))
	if err != nil {
		return nil, nil, err
	}
	return model, meshes, nil
}

// ImportMeshes loads the model files the prefab's mesh entries name as
// sources, resolved against baseDir. A source yielding a single mesh is
// renamed to the referencing entry's mesh key; multi-mesh sources keep
// their authored names. Each file loads once however many entries share it.
func ImportMeshes(file *PrefabFile, baseDir string) ([]*scene.Mesh, error) {
	var meshes []*scene.Mesh
	loaded := make(map[string][]*scene.Mesh)

	for i, m := range file.Meshes {
		if m.Source == "" {
			continue
		}
		path := filepath.Join(baseDir, m.Source)
		ms, ok := loaded[path]
		if !ok {
			var err error
			ms, err = LoadMeshAsset(path)
			if err != nil {
				return nil, fmt.Errorf("prefab %q mesh %d: %w", file.Name, i, err)
			}
			loaded[path] = ms
			meshes = append(meshes, ms...)
		}
		if len(ms) == 1 {
			ms[0].Name = m.Mesh
		}
	}
	return meshes, nil
}

// BuildModel converts a parsed prefab into a scene model.
func BuildModel(file *PrefabFile) (*scene.Model, error) {
	model := scene.NewModel()
	model.Mobile = file.Mobile

	for i, b := range file.Brushes {
		flags, err := ParseFlags(b.Flags)
		if err != nil {
			return nil, fmt.Errorf("prefab %q brush %d: %w", file.Name, i, err)
		}
		model.Renderables = append(model.Renderables, scene.BrushRenderable{
			Texture:  b.Texture,
			Position: vec3(b.Position),
			Size:     vec3(b.Size),
			Flags:    flags,
		})
	}

	for i, m := range file.Meshes {
		flags, err := ParseFlags(m.Flags)
		if err != nil {
			return nil, fmt.Errorf("prefab %q mesh %d: %w", file.Name, i, err)
		}
		scale := vec3(m.Scale)
		if scale == math.Vec3Zero {
			scale = math.Vec3One
		}
		transform := math.Mat4Scale(scale).
			Mul(math.Mat4Rotation(vec3(m.Rotation))).
			Mul(math.Mat4Translation(vec3(m.Position)))
		model.Renderables = append(model.Renderables, scene.MeshRenderable{
			MeshName:  m.Mesh,
			Transform: transform,
			Flags:     flags,
		})
	}

	return model, nil
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
