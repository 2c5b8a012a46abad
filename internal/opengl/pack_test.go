package opengl

import (
	stdmath "math"
	"testing"

	"brush-engine/math"
	"brush-engine/scene"
)

func TestPackInstancesLayout(t *testing.T) {
	rec := scene.InstanceRecord{
		Flags:     scene.InstanceFlags(scene.FlagTileTexture | scene.FlagFullbright),
		Transform: math.Mat4Translation(math.Vec3{X: 3, Y: 5, Z: 7}),
	}
	buf := packInstances([]scene.InstanceRecord{rec}, nil)

	if len(buf) != instanceWords {
		t.Fatalf("buffer length = %d, want %d", len(buf), instanceWords)
	}
	if got := stdmath.Float32bits(buf[0]); got != 3 {
		t.Errorf("flag bits = %d, want 3", got)
	}
	// translation sits in the last column of the column-major model matrix
	if buf[13] != 3 || buf[14] != 5 || buf[15] != 7 {
		t.Errorf("translation column = %v %v %v, want 3 5 7", buf[13], buf[14], buf[15])
	}
	// pure translation: normal matrix stays identity
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			want := float32(0)
			if col == row {
				want = 1
			}
			if buf[17+col*3+row] != want {
				t.Errorf("normal[%d][%d] = %v, want %v", col, row, buf[17+col*3+row], want)
			}
		}
	}
}

func TestPackInstancesNormalMatrixScale(t *testing.T) {
	rec := scene.InstanceRecord{
		Transform: math.Mat4Scale(math.Vec3{X: 2, Y: 2, Z: 2}),
	}
	buf := packInstances([]scene.InstanceRecord{rec}, nil)

	// inverse-transpose of a uniform scale 2 is a uniform scale 0.5
	for i := 0; i < 3; i++ {
		got := buf[17+i*3+i]
		if stdmath.Abs(float64(got)-0.5) > 1e-5 {
			t.Errorf("normal diagonal[%d] = %v, want 0.5", i, got)
		}
	}
}

func TestPackInstancesStride(t *testing.T) {
	records := []scene.InstanceRecord{
		{Flags: scene.InstanceFlags(scene.FlagSkipDraw), Transform: math.Mat4Identity()},
		{Flags: scene.InstanceFlags(scene.FlagCutout), Transform: math.Mat4Identity()},
	}
	buf := packInstances(records, nil)

	if len(buf) != 2*instanceWords {
		t.Fatalf("buffer length = %d, want %d", len(buf), 2*instanceWords)
	}
	if got := stdmath.Float32bits(buf[instanceWords]); got != uint32(scene.FlagCutout) {
		t.Errorf("second instance flag bits = %d, want %d", got, scene.FlagCutout)
	}
}

func TestPackInstancesReusesBuffer(t *testing.T) {
	records := []scene.InstanceRecord{
		{Transform: math.Mat4Identity()},
		{Transform: math.Mat4Identity()},
	}
	buf := packInstances(records, nil)
	again := packInstances(records[:1], buf)

	if len(again) != instanceWords {
		t.Fatalf("length = %d, want %d", len(again), instanceWords)
	}
	if &again[0] != &buf[0] {
		t.Error("scratch buffer was not reused")
	}
}

func BenchmarkPackInstances(b *testing.B) {
	records := make([]scene.InstanceRecord, 1024)
	for i := range records {
		records[i].Transform = math.Mat4Translation(math.Vec3{X: float32(i)})
	}
	var buf []float32
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = packInstances(records, buf)
	}
}
