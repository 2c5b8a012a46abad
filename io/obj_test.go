package io

import (
	"os"
	"path/filepath"
	"testing"

	"brush-engine/core"
	"brush-engine/math"
)

func writeAsset(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOBJTriangulatesQuad(t *testing.T) {
	path := writeAsset(t, t.TempDir(), "quad.obj", `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`)

	meshes, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("mesh count = %d, want 1", len(meshes))
	}
	m := meshes[0]

	if len(m.Vertices) != 4 {
		t.Errorf("vertex count = %d, want 4 (face verts deduplicated)", len(m.Vertices))
	}
	wantIndices := []uint32{0, 1, 2, 0, 2, 3}
	if len(m.Indices) != len(wantIndices) {
		t.Fatalf("index count = %d, want %d", len(m.Indices), len(wantIndices))
	}
	for i, want := range wantIndices {
		if m.Indices[i] != want {
			t.Errorf("index[%d] = %d, want %d (fan triangulation)", i, m.Indices[i], want)
		}
	}

	v := m.Vertices[2]
	if v.Position != (math.Vec3{X: 1, Y: 1, Z: 0}) {
		t.Errorf("vertex 2 position = %v", v.Position)
	}
	if v.Normal != (math.Vec3{X: 0, Y: 0, Z: 1}) {
		t.Errorf("vertex 2 normal = %v", v.Normal)
	}
	if v.UV != (math.Vec2{X: 1, Y: 1}) {
		t.Errorf("vertex 2 uv = %v", v.UV)
	}
	// imported vertices stay white so the instance tint passes through
	if v.Color != core.ColorWhite {
		t.Errorf("vertex 2 color = %v, want white", v.Color)
	}
}

func TestLoadOBJNegativeIndices(t *testing.T) {
	path := writeAsset(t, t.TempDir(), "tri.obj", `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`)

	meshes, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	got := meshes[0].Vertices[1].Position
	if got != (math.Vec3{X: 1, Y: 0, Z: 0}) {
		t.Errorf("negative index resolved to %v, want (1 0 0)", got)
	}
}

func TestLoadOBJObjectsAndMaterials(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "props.mtl", `
newmtl shiny
Ns 96
newmtl matte
Ns 0
`)
	path := writeAsset(t, dir, "props.obj", `
mtllib props.mtl
o First
usemtl shiny
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
o Second
usemtl matte
v 0 0 1
v 1 0 1
v 0 1 1
f 4 5 6
`)

	meshes, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(meshes) != 2 {
		t.Fatalf("mesh count = %d, want 2", len(meshes))
	}
	if meshes[0].Name != "First" || meshes[1].Name != "Second" {
		t.Errorf("mesh names = %q, %q", meshes[0].Name, meshes[1].Name)
	}
	if meshes[0].Material == nil || meshes[0].Material.Shininess != 96 {
		t.Errorf("first material = %+v, want shininess 96", meshes[0].Material)
	}
	// Ns below 1 clamps so the specular exponent stays valid
	if meshes[1].Material == nil || meshes[1].Material.Shininess != 1 {
		t.Errorf("second material = %+v, want shininess 1", meshes[1].Material)
	}
}

func TestLoadOBJNoGeometry(t *testing.T) {
	path := writeAsset(t, t.TempDir(), "empty.obj", "# nothing here\n")
	if _, err := LoadOBJ(path); err == nil {
		t.Error("expected error for OBJ without faces")
	}
}

func TestLoadMeshAssetUnknownFormat(t *testing.T) {
	if _, err := LoadMeshAsset("model.stl"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
