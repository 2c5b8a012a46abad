package scene

import (
	"fmt"

	"brush-engine/math"
)

// InstanceRecord is one entry of a static batch: the per-instance flag
// word plus the model transform. The GL backend packs these straight into
// the instance vertex buffer.
type InstanceRecord struct {
	Flags     InstanceFlags
	Transform math.Mat4
}

// MobileMesh is a per-frame draw of a single mesh with its own transform,
// for geometry that moves every frame and is not worth batching.
type MobileMesh struct {
	Mesh      *Mesh
	Flags     InstanceFlags
	Transform math.Mat4
}

// Scene holds everything one frame draws: registered meshes, static
// instanced batches keyed by mesh name, mobile meshes, the light set and
// the post-process and skybox settings.
//
// Static batches are meant to change rarely. Mutations mark the batch
// dirty; the renderer re-uploads only dirty batches at the next frame.
type Scene struct {
	Meshes map[string]*Mesh

	static map[string][]InstanceRecord
	dirty  map[string]bool

	Mobile []MobileMesh

	Lights *LightSet
	Fog    FogParams
	Kernel KernelParams
	Skybox string
}

func NewScene() *Scene {
	return &Scene{
		Meshes: make(map[string]*Mesh),
		static: make(map[string][]InstanceRecord),
		dirty:  make(map[string]bool),
		Lights: NewLightSet(),
		Fog:    DefaultFog(),
		Kernel: IdentityKernel(),
	}
}

// RegisterMesh makes a mesh addressable by name for static batches.
func (s *Scene) RegisterMesh(m *Mesh) {
	s.Meshes[m.Name] = m
}

// AddStatic appends an instance to the batch for meshName and returns its
// index within the batch, for later updates.
func (s *Scene) AddStatic(meshName string, rec InstanceRecord) int {
	s.static[meshName] = append(s.static[meshName], rec)
	s.dirty[meshName] = true
	return len(s.static[meshName]) - 1
}

// UpdateStatic replaces one instance record and marks the batch dirty.
func (s *Scene) UpdateStatic(meshName string, index int, rec InstanceRecord) error {
	batch, ok := s.static[meshName]
	if !ok || index < 0 || index >= len(batch) {
		return fmt.Errorf("no static instance %d for mesh %q", index, meshName)
	}
	batch[index] = rec
	s.dirty[meshName] = true
	return nil
}

// StaticBatch returns the instance records for one mesh name.
func (s *Scene) StaticBatch(meshName string) []InstanceRecord {
	return s.static[meshName]
}

// EachStaticBatch calls fn for every non-empty static batch.
func (s *Scene) EachStaticBatch(fn func(meshName string, records []InstanceRecord)) {
	for name, records := range s.static {
		if len(records) > 0 {
			fn(name, records)
		}
	}
}

// TakeDirty reports whether the batch changed since the last call and
// clears the mark.
func (s *Scene) TakeDirty(meshName string) bool {
	if s.dirty[meshName] {
		delete(s.dirty, meshName)
		return true
	}
	return false
}

// AddMobile queues a per-frame mesh draw.
func (s *Scene) AddMobile(m MobileMesh) {
	s.Mobile = append(s.Mobile, m)
}

// ClearMobile drops all mobile draws; hosts call this once per frame
// before re-queueing.
func (s *Scene) ClearMobile() {
	s.Mobile = s.Mobile[:0]
}
