package io

import (
	"fmt"
	"path/filepath"
	"strings"

	"brush-engine/scene"
)

// LoadMeshAsset loads the meshes of a model file, dispatching on the
// extension: Wavefront .obj, or glTF .gltf/.glb.
func LoadMeshAsset(path string) ([]*scene.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		result, err := scene.LoadGLTF(path)
		if err != nil {
			return nil, err
		}
		return result.Meshes, nil
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", filepath.Ext(path))
	}
}
