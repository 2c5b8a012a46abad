package io

import (
	"os"
	"path/filepath"
	"testing"

	"brush-engine/scene"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		names []string
		want  uint32
	}{
		{nil, 0},
		{[]string{"extend_texture"}, scene.FlagTileTexture},
		{[]string{"fullbright"}, scene.FlagFullbright},
		{[]string{"skip"}, scene.FlagSkipDraw},
		{[]string{"cutout"}, scene.FlagCutout},
		{[]string{"extend_texture", "skip"}, scene.FlagTileTexture | scene.FlagSkipDraw},
	}
	for _, tt := range tests {
		got, err := ParseFlags(tt.names)
		if err != nil {
			t.Errorf("ParseFlags(%v): %v", tt.names, err)
			continue
		}
		if uint32(got) != tt.want {
			t.Errorf("ParseFlags(%v) = %#x, want %#x", tt.names, uint32(got), tt.want)
		}
	}
}

func TestParseFlagsUnknown(t *testing.T) {
	if _, err := ParseFlags([]string{"glow"}); err == nil {
		t.Error("expected error for unknown flag name")
	}
}

func TestLoadPrefab(t *testing.T) {
	body := `{
		"name": "crate_stack",
		"brushes": [
			{"texture": "crate", "position": [0, 0, 0], "size": [1, 1, 1], "flags": ["extend_texture"]},
			{"texture": "crate", "position": [0, 1, 0], "size": [1, 1, 1]}
		],
		"meshes": [
			{"mesh": "barrel", "position": [2, 0, 0], "flags": ["fullbright"]}
		]
	}`
	path := filepath.Join(t.TempDir(), "crate_stack.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	model, meshes, err := LoadPrefab(path)
	if err != nil {
		t.Fatalf("LoadPrefab: %v", err)
	}
	if len(meshes) != 0 {
		t.Errorf("prefab without sources imported %d meshes", len(meshes))
	}
	if model.Mobile {
		t.Error("prefab without mobile field should be static")
	}
	if len(model.Renderables) != 3 {
		t.Fatalf("renderable count = %d, want 3", len(model.Renderables))
	}

	name, rec := model.Renderables[0].Instance()
	if name != "Brush_crate" {
		t.Errorf("brush mesh name = %q, want Brush_crate", name)
	}
	if !rec.Flags.Has(scene.FlagTileTexture) {
		t.Error("first brush should carry the tile flag")
	}

	name, rec = model.Renderables[2].Instance()
	if name != "barrel" {
		t.Errorf("mesh name = %q, want barrel", name)
	}
	if !rec.Flags.Has(scene.FlagFullbright) {
		t.Error("mesh part should carry the fullbright flag")
	}
	// default scale fills in as identity
	corner := rec.Transform.MulVec3(scene.CreateQuad().Vertices[2].Position)
	if corner.X <= 2 {
		t.Errorf("mesh transform did not translate: corner %v", corner)
	}
}

func TestLoadPrefabMeshSource(t *testing.T) {
	dir := t.TempDir()
	obj := `o Barrel
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	if err := os.WriteFile(filepath.Join(dir, "barrel.obj"), []byte(obj), 0o644); err != nil {
		t.Fatal(err)
	}
	body := `{
		"name": "barrel_prop",
		"meshes": [
			{"mesh": "barrel", "source": "barrel.obj", "position": [2, 0, 0]}
		]
	}`
	path := filepath.Join(dir, "barrel_prop.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	model, meshes, err := LoadPrefab(path)
	if err != nil {
		t.Fatalf("LoadPrefab: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("imported mesh count = %d, want 1", len(meshes))
	}
	// a single-mesh source takes the entry's registry key
	if meshes[0].Name != "barrel" {
		t.Errorf("imported mesh name = %q, want barrel", meshes[0].Name)
	}
	name, _ := model.Renderables[0].Instance()
	if name != meshes[0].Name {
		t.Errorf("renderable resolves %q, imported mesh is %q", name, meshes[0].Name)
	}
}

func TestLoadPrefabMissingSource(t *testing.T) {
	dir := t.TempDir()
	body := `{"name": "x", "meshes": [{"mesh": "m", "source": "gone.obj", "position": [0,0,0]}]}`
	path := filepath.Join(dir, "x.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadPrefab(path); err == nil {
		t.Error("expected error for missing mesh source")
	}
}

func TestLoadPrefabBadFlag(t *testing.T) {
	body := `{"name": "x", "brushes": [{"texture": "t", "position": [0,0,0], "size": [1,1,1], "flags": ["nope"]}]}`
	path := filepath.Join(t.TempDir(), "x.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadPrefab(path); err == nil {
		t.Error("expected error for unknown flag in prefab")
	}
}
