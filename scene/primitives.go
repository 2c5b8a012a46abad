package scene

import (
	stdmath "math"

	"brush-engine/core"
	"brush-engine/math"
)

// Procedural meshes for geometry that is not brush-built: markers, props
// and test objects. All primitives carry a white vertex color so the
// instance tint passes through unchanged.

// CreateSphere generates a UV-sphere mesh.
func CreateSphere(radius float32, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	var vertices []core.Vertex
	var indices []uint32

	for ring := 0; ring <= rings; ring++ {
		phi := float64(ring) * stdmath.Pi / float64(rings)
		sinPhi := float32(stdmath.Sin(phi))
		cosPhi := float32(stdmath.Cos(phi))

		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) * 2.0 * stdmath.Pi / float64(segments)
			sinTheta := float32(stdmath.Sin(theta))
			cosTheta := float32(stdmath.Cos(theta))

			normal := math.Vec3{X: sinPhi * cosTheta, Y: cosPhi, Z: sinPhi * sinTheta}
			vertices = append(vertices, core.Vertex{
				Position: normal.Mul(radius),
				Normal:   normal,
				UV:       math.Vec2{X: float32(seg) / float32(segments), Y: float32(ring) / float32(rings)},
				Color:    core.ColorWhite,
			})
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)

			indices = append(indices, current, next, current+1)
			indices = append(indices, current+1, next, next+1)
		}
	}

	return CreateMeshFromData("Sphere", vertices, indices)
}

// CreateCylinder generates a capped cylinder mesh.
func CreateCylinder(radius, height float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}

	var vertices []core.Vertex
	var indices []uint32
	halfHeight := height / 2.0

	for i := 0; i <= segments; i++ {
		theta := float64(i) * 2.0 * stdmath.Pi / float64(segments)
		cosT := float32(stdmath.Cos(theta))
		sinT := float32(stdmath.Sin(theta))
		normal := math.Vec3{X: cosT, Y: 0, Z: sinT}
		u := float32(i) / float32(segments)

		vertices = append(vertices, core.Vertex{
			Position: math.Vec3{X: cosT * radius, Y: -halfHeight, Z: sinT * radius},
			Normal:   normal,
			UV:       math.Vec2{X: u, Y: 0},
			Color:    core.ColorWhite,
		})
		vertices = append(vertices, core.Vertex{
			Position: math.Vec3{X: cosT * radius, Y: halfHeight, Z: sinT * radius},
			Normal:   normal,
			UV:       math.Vec2{X: u, Y: 1},
			Color:    core.ColorWhite,
		})
	}

	for i := 0; i < segments; i++ {
		base := uint32(i * 2)
		indices = append(indices, base, base+1, base+2)
		indices = append(indices, base+2, base+1, base+3)
	}

	// Caps: a center vertex fan per end.
	for _, cap := range []struct {
		y      float32
		normal math.Vec3
	}{
		{halfHeight, math.Vec3Up},
		{-halfHeight, math.Vec3Down},
	} {
		center := uint32(len(vertices))
		vertices = append(vertices, core.Vertex{
			Position: math.Vec3{Y: cap.y},
			Normal:   cap.normal,
			UV:       math.Vec2{X: 0.5, Y: 0.5},
			Color:    core.ColorWhite,
		})

		for i := 0; i < segments; i++ {
			theta := float64(i) * 2.0 * stdmath.Pi / float64(segments)
			nextTheta := float64(i+1) * 2.0 * stdmath.Pi / float64(segments)
			cosT := float32(stdmath.Cos(theta))
			sinT := float32(stdmath.Sin(theta))
			cosN := float32(stdmath.Cos(nextTheta))
			sinN := float32(stdmath.Sin(nextTheta))

			v1 := uint32(len(vertices))
			vertices = append(vertices, core.Vertex{
				Position: math.Vec3{X: cosT * radius, Y: cap.y, Z: sinT * radius},
				Normal:   cap.normal,
				UV:       math.Vec2{X: cosT*0.5 + 0.5, Y: sinT*0.5 + 0.5},
				Color:    core.ColorWhite,
			})
			v2 := uint32(len(vertices))
			vertices = append(vertices, core.Vertex{
				Position: math.Vec3{X: cosN * radius, Y: cap.y, Z: sinN * radius},
				Normal:   cap.normal,
				UV:       math.Vec2{X: cosN*0.5 + 0.5, Y: sinN*0.5 + 0.5},
				Color:    core.ColorWhite,
			})
			if cap.normal.Y > 0 {
				indices = append(indices, center, v1, v2)
			} else {
				indices = append(indices, center, v2, v1)
			}
		}
	}

	return CreateMeshFromData("Cylinder", vertices, indices)
}

// CreatePlane generates a flat plane mesh facing up, subdivided into a
// grid so per-vertex effects have something to work with.
func CreatePlane(width, depth float32, subdivisions int) *Mesh {
	if subdivisions < 1 {
		subdivisions = 1
	}

	var vertices []core.Vertex
	var indices []uint32

	halfW := width / 2.0
	halfD := depth / 2.0

	for z := 0; z <= subdivisions; z++ {
		for x := 0; x <= subdivisions; x++ {
			u := float32(x) / float32(subdivisions)
			v := float32(z) / float32(subdivisions)

			vertices = append(vertices, core.Vertex{
				Position: math.Vec3{
					X: -halfW + u*width,
					Y: 0,
					Z: -halfD + v*depth,
				},
				Normal: math.Vec3Up,
				UV:     math.Vec2{X: u, Y: v},
				Color:  core.ColorWhite,
			})
		}
	}

	for z := 0; z < subdivisions; z++ {
		for x := 0; x < subdivisions; x++ {
			topLeft := uint32(z*(subdivisions+1) + x)
			topRight := topLeft + 1
			bottomLeft := topLeft + uint32(subdivisions+1)
			bottomRight := bottomLeft + 1

			indices = append(indices, topLeft, bottomLeft, topRight)
			indices = append(indices, topRight, bottomLeft, bottomRight)
		}
	}

	return CreateMeshFromData("Plane", vertices, indices)
}
