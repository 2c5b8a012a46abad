package opengl

import (
	stdmath "math"

	"brush-engine/math"
	"brush-engine/scene"
)

// Per-instance vertex buffer layout, in float32 words:
//
//	[0]      flag bits, stored as raw float bits; the attrib reads them
//	         back as an unsigned int via VertexAttribIPointer
//	[1..16]  model mat4, column-major
//	[17..25] normal mat3, column-major
const (
	instanceWords  = 26
	instanceStride = instanceWords * 4 // bytes
)

// Byte offsets of the instance attributes within one record.
const (
	instanceFlagsOffset  = 0
	instanceModelOffset  = 4
	instanceNormalOffset = 4 + 16*4
)

// packInstances flattens records into the instance buffer layout. buf is
// reused when its capacity suffices. The normal matrix is the
// inverse-transpose of the model's upper 3x3, computed here once per
// instance rather than per vertex on the GPU.
func packInstances(records []scene.InstanceRecord, buf []float32) []float32 {
	need := len(records) * instanceWords
	if cap(buf) < need {
		buf = make([]float32, need)
	}
	buf = buf[:need]

	for i, rec := range records {
		base := i * instanceWords
		buf[base] = stdmath.Float32frombits(uint32(rec.Flags))

		for col := 0; col < 4; col++ {
			for row := 0; row < 4; row++ {
				buf[base+1+col*4+row] = rec.Transform[col][row]
			}
		}

		nm := math.NormalMatrix(rec.Transform)
		for col := 0; col < 3; col++ {
			for row := 0; row < 3; row++ {
				buf[base+17+col*3+row] = nm[col][row]
			}
		}
	}
	return buf
}
