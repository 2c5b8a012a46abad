package io

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"brush-engine/core"
	"brush-engine/math"
	"brush-engine/scene"
)

// LoadOBJ parses a Wavefront .obj file into scene meshes. A mtllib
// reference resolves against the .obj's directory; diffuse and specular
// maps load from the paths the .mtl names. Faces with more than three
// vertices fan-triangulate.
func LoadOBJ(path string) ([]*scene.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer f.Close()

	var positions []math.Vec3
	var normals []math.Vec3
	var uvs []math.Vec2

	materials := make(map[string]*scene.Material)
	var meshes []*scene.Mesh

	currentName := "default"
	currentMaterial := ""
	var currentVerts []core.Vertex
	var currentIndices []uint32
	vertexMap := make(map[string]uint32) // "v/vt/vn" spec -> vertex index

	flush := func() {
		if len(currentVerts) == 0 {
			return
		}
		m := scene.CreateMeshFromData(currentName, currentVerts, currentIndices)
		m.Material = materials[currentMaterial]
		meshes = append(meshes, m)
		currentVerts = nil
		currentIndices = nil
		vertexMap = make(map[string]uint32)
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "v":
			if len(parts) >= 4 {
				x, _ := strconv.ParseFloat(parts[1], 32)
				y, _ := strconv.ParseFloat(parts[2], 32)
				z, _ := strconv.ParseFloat(parts[3], 32)
				positions = append(positions, math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)})
			}
		case "vn":
			if len(parts) >= 4 {
				x, _ := strconv.ParseFloat(parts[1], 32)
				y, _ := strconv.ParseFloat(parts[2], 32)
				z, _ := strconv.ParseFloat(parts[3], 32)
				normals = append(normals, math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)})
			}
		case "vt":
			if len(parts) >= 3 {
				u, _ := strconv.ParseFloat(parts[1], 32)
				v, _ := strconv.ParseFloat(parts[2], 32)
				uvs = append(uvs, math.Vec2{X: float32(u), Y: float32(v)})
			}
		case "f":
			faceVerts := make([]uint32, 0, len(parts)-1)
			for _, faceStr := range parts[1:] {
				if idx, ok := vertexMap[faceStr]; ok {
					faceVerts = append(faceVerts, idx)
					continue
				}
				vertex := parseFaceVertex(faceStr, positions, normals, uvs)
				newIdx := uint32(len(currentVerts))
				currentVerts = append(currentVerts, vertex)
				vertexMap[faceStr] = newIdx
				faceVerts = append(faceVerts, newIdx)
			}
			for i := 2; i < len(faceVerts); i++ {
				currentIndices = append(currentIndices,
					faceVerts[0], faceVerts[i-1], faceVerts[i])
			}

		case "o", "g":
			flush()
			currentName = "unnamed"
			if len(parts) > 1 {
				currentName = parts[1]
			}

		case "usemtl":
			if len(parts) > 1 {
				currentMaterial = parts[1]
			}

		case "mtllib":
			if len(parts) > 1 {
				mtlPath := filepath.Join(filepath.Dir(path), parts[1])
				mtls, err := LoadMTL(mtlPath)
				if err != nil {
					fmt.Printf("Warning: failed to load MTL file %s: %v\n", mtlPath, err)
				} else {
					for k, v := range mtls {
						materials[k] = v
					}
				}
			}
		}
	}
	flush()

	if len(meshes) == 0 {
		return nil, fmt.Errorf("no mesh data found in OBJ file")
	}
	return meshes, scanner.Err()
}

// LoadMTL parses a Wavefront .mtl material file. Texture maps resolve
// relative to the .mtl's directory; a map that fails to load leaves the
// material slot nil so the renderer falls back to its defaults.
func LoadMTL(path string) (map[string]*scene.Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dir := filepath.Dir(path)
	result := make(map[string]*scene.Material)
	var current *scene.Material

	loadMap := func(file string) *scene.Texture {
		tex, err := scene.LoadTexture(filepath.Join(dir, file))
		if err != nil {
			fmt.Printf("Warning: failed to load texture %s: %v\n", file, err)
			return nil
		}
		return tex
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "newmtl":
			if len(parts) > 1 {
				current = scene.NewMaterial(parts[1], nil)
				result[parts[1]] = current
			}
		case "Ns":
			if current != nil && len(parts) >= 2 {
				ns, _ := strconv.ParseFloat(parts[1], 32)
				current.Shininess = float32(ns)
				if current.Shininess < 1 {
					current.Shininess = 1
				}
			}
		case "map_Kd":
			if current != nil && len(parts) > 1 {
				current.Diffuse = loadMap(parts[len(parts)-1])
			}
		case "map_Ks":
			if current != nil && len(parts) > 1 {
				current.Specular = loadMap(parts[len(parts)-1])
			}
		}
	}

	return result, scanner.Err()
}

// parseFaceVertex parses an OBJ face vertex spec like "v/vt/vn".
// Negative indices count from the end, per the OBJ spec.
func parseFaceVertex(spec string, positions []math.Vec3, normals []math.Vec3, uvs []math.Vec2) core.Vertex {
	v := core.Vertex{Color: core.ColorWhite}

	parts := strings.Split(spec, "/")

	if len(parts) >= 1 && parts[0] != "" {
		idx, _ := strconv.Atoi(parts[0])
		if idx < 0 {
			idx = len(positions) + idx + 1
		}
		if idx > 0 && idx <= len(positions) {
			v.Position = positions[idx-1]
		}
	}

	if len(parts) >= 2 && parts[1] != "" {
		idx, _ := strconv.Atoi(parts[1])
		if idx < 0 {
			idx = len(uvs) + idx + 1
		}
		if idx > 0 && idx <= len(uvs) {
			v.UV = uvs[idx-1]
		}
	}

	if len(parts) >= 3 && parts[2] != "" {
		idx, _ := strconv.Atoi(parts[2])
		if idx < 0 {
			idx = len(normals) + idx + 1
		}
		if idx > 0 && idx <= len(normals) {
			v.Normal = normals[idx-1]
		}
	}

	return v
}
