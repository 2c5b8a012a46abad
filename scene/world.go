package scene

import (
	"brush-engine/math"
)

// Renderable is one drawable part of a model. Instance resolves it to a
// mesh name plus an instance record in the model's local space.
type Renderable interface {
	Instance() (meshName string, rec InstanceRecord)
}

// MeshRenderable references a registered mesh by name.
type MeshRenderable struct {
	MeshName  string
	Transform math.Mat4
	Flags     InstanceFlags
}

func (r MeshRenderable) Instance() (string, InstanceRecord) {
	return r.MeshName, InstanceRecord{Flags: r.Flags, Transform: r.Transform}
}

// BrushRenderable is an axis-aligned textured box: the unit brush cube
// translated to Position and scaled to Size. Each texture gets its own
// brush mesh so brushes sharing a texture batch into one instanced draw.
type BrushRenderable struct {
	Texture  string
	Position math.Vec3
	Size     math.Vec3
	Flags    InstanceFlags
}

// BrushMeshName is the registry key for the brush cube of one texture.
func BrushMeshName(texture string) string {
	return "Brush_" + texture
}

func (r BrushRenderable) Instance() (string, InstanceRecord) {
	// scale the unit cube to size, then move it into place
	transform := math.Mat4Scale(r.Size).Mul(math.Mat4Translation(r.Position))
	return BrushMeshName(r.Texture), InstanceRecord{Flags: r.Flags, Transform: transform}
}

// Model groups renderables under a shared transform. Static models bake
// into the scene's instanced batches once; mobile models re-queue their
// parts every frame through QueueMobile.
type Model struct {
	Transform   math.Mat4
	Renderables []Renderable
	Mobile      bool

	// indices into the scene's static batches, parallel to Renderables,
	// set by AddToScene for later UpdateTransform calls
	staticIndices []int
	staticMeshes  []string
}

func NewModel() *Model {
	return &Model{Transform: math.Mat4Identity()}
}

// AddToScene instantiates a static model into the scene's batches,
// composing each renderable's local transform with the model transform.
// Mobile models are not baked; use QueueMobile each frame instead.
func (m *Model) AddToScene(s *Scene) {
	if m.Mobile {
		return
	}
	m.staticIndices = m.staticIndices[:0]
	m.staticMeshes = m.staticMeshes[:0]
	for _, r := range m.Renderables {
		name, rec := r.Instance()
		rec.Transform = rec.Transform.Mul(m.Transform)
		idx := s.AddStatic(name, rec)
		m.staticIndices = append(m.staticIndices, idx)
		m.staticMeshes = append(m.staticMeshes, name)
	}
}

// UpdateTransform moves an already-baked static model by rewriting its
// instance records in place.
func (m *Model) UpdateTransform(s *Scene, transform math.Mat4) {
	m.Transform = transform
	for i, r := range m.Renderables {
		if i >= len(m.staticIndices) {
			break
		}
		_, rec := r.Instance()
		rec.Transform = rec.Transform.Mul(m.Transform)
		if err := s.UpdateStatic(m.staticMeshes[i], m.staticIndices[i], rec); err != nil {
			return
		}
	}
}

// QueueMobile queues every renderable of a mobile model for this frame.
// Renderables resolve against the scene's mesh registry; unknown names
// are skipped.
func (m *Model) QueueMobile(s *Scene) {
	for _, r := range m.Renderables {
		name, rec := r.Instance()
		mesh, ok := s.Meshes[name]
		if !ok {
			continue
		}
		s.AddMobile(MobileMesh{
			Mesh:      mesh,
			Flags:     rec.Flags,
			Transform: rec.Transform.Mul(m.Transform),
		})
	}
}
