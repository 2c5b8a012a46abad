package scene

import (
	"testing"

	"brush-engine/math"
)

func TestSceneStaticBatches(t *testing.T) {
	s := NewScene()
	s.RegisterMesh(CreateBrushCube(BrushMeshName("stone")))

	idx := s.AddStatic("Brush_stone", InstanceRecord{
		Flags:     InstanceFlags(FlagTileTexture),
		Transform: math.Mat4Identity(),
	})
	if idx != 0 {
		t.Errorf("first instance index = %d, want 0", idx)
	}

	if !s.TakeDirty("Brush_stone") {
		t.Error("batch should be dirty after AddStatic")
	}
	if s.TakeDirty("Brush_stone") {
		t.Error("TakeDirty should clear the mark")
	}

	rec := InstanceRecord{Flags: InstanceFlags(FlagSkipDraw), Transform: math.Mat4Translation(math.NewVec3(1, 2, 3))}
	if err := s.UpdateStatic("Brush_stone", idx, rec); err != nil {
		t.Fatalf("UpdateStatic: %v", err)
	}
	if !s.TakeDirty("Brush_stone") {
		t.Error("batch should be dirty again after UpdateStatic")
	}
	if got := s.StaticBatch("Brush_stone")[0]; got != rec {
		t.Errorf("StaticBatch[0] = %+v, want %+v", got, rec)
	}

	if err := s.UpdateStatic("Brush_stone", 7, rec); err == nil {
		t.Error("expected error updating out-of-range instance")
	}
	if err := s.UpdateStatic("nope", 0, rec); err == nil {
		t.Error("expected error updating unknown batch")
	}
}

func TestBrushRenderableTransform(t *testing.T) {
	b := BrushRenderable{
		Texture:  "brick",
		Position: math.NewVec3(2, 0, -4),
		Size:     math.NewVec3(3, 1, 2),
		Flags:    InstanceFlags(FlagTileTexture),
	}

	name, rec := b.Instance()
	if name != "Brush_brick" {
		t.Errorf("mesh name = %q, want %q", name, "Brush_brick")
	}

	// The unit brush corner (0,0,0) lands at Position, the far corner
	// (1,1,1) at Position+Size
	min := rec.Transform.MulVec3(math.Vec3Zero)
	max := rec.Transform.MulVec3(math.Vec3One)
	if min != b.Position {
		t.Errorf("brush min corner = %v, want %v", min, b.Position)
	}
	if max != b.Position.Add(b.Size) {
		t.Errorf("brush max corner = %v, want %v", max, b.Position.Add(b.Size))
	}
}

func TestModelAddToSceneComposesTransform(t *testing.T) {
	s := NewScene()
	model := NewModel()
	model.Transform = math.Mat4Translation(math.NewVec3(10, 0, 0))
	model.Renderables = append(model.Renderables, BrushRenderable{
		Texture:  "stone",
		Position: math.NewVec3(1, 0, 0),
		Size:     math.Vec3One,
	})

	model.AddToScene(s)

	batch := s.StaticBatch("Brush_stone")
	if len(batch) != 1 {
		t.Fatalf("batch size = %d, want 1", len(batch))
	}
	origin := batch[0].Transform.MulVec3(math.Vec3Zero)
	want := math.NewVec3(11, 0, 0)
	if origin != want {
		t.Errorf("composed brush corner = %v, want %v", origin, want)
	}
}

func TestModelUpdateTransform(t *testing.T) {
	s := NewScene()
	model := NewModel()
	model.Renderables = append(model.Renderables, MeshRenderable{
		MeshName:  "prop",
		Transform: math.Mat4Identity(),
	})
	model.AddToScene(s)
	s.TakeDirty("prop")

	model.UpdateTransform(s, math.Mat4Translation(math.NewVec3(0, 5, 0)))
	if !s.TakeDirty("prop") {
		t.Error("batch should be dirty after UpdateTransform")
	}
	got := s.StaticBatch("prop")[0].Transform.MulVec3(math.Vec3Zero)
	if got != math.NewVec3(0, 5, 0) {
		t.Errorf("moved instance origin = %v, want (0,5,0)", got)
	}
}

func TestMobileModelNotBaked(t *testing.T) {
	s := NewScene()
	s.RegisterMesh(CreateCube(1))

	model := NewModel()
	model.Mobile = true
	model.Renderables = append(model.Renderables, MeshRenderable{
		MeshName:  "Cube",
		Transform: math.Mat4Identity(),
	})

	model.AddToScene(s)
	if len(s.StaticBatch("Cube")) != 0 {
		t.Error("mobile model must not create static instances")
	}

	model.QueueMobile(s)
	if len(s.Mobile) != 1 {
		t.Fatalf("mobile queue size = %d, want 1", len(s.Mobile))
	}

	// Unknown mesh names are skipped, not queued
	model.Renderables = append(model.Renderables, MeshRenderable{MeshName: "missing"})
	s.ClearMobile()
	model.QueueMobile(s)
	if len(s.Mobile) != 1 {
		t.Errorf("mobile queue size = %d, want 1 (unknown mesh skipped)", len(s.Mobile))
	}
}

func TestCameraForward(t *testing.T) {
	c := NewCamera(16.0 / 9.0)

	// Default yaw looks down -Z
	f := c.Forward()
	if f.Sub(math.Vec3Back).Length() > 0.0001 {
		t.Errorf("default Forward = %v, want %v", f, math.Vec3Back)
	}

	// Pitch clamps short of vertical
	c.Rotate(0, 10)
	if c.Pitch >= float32(3.1415926)/2 {
		t.Errorf("pitch %v not clamped below pi/2", c.Pitch)
	}
}
