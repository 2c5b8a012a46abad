package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"brush-engine/math"
	"brush-engine/scene"
)

// Skybox renders a cubemap sky on an inverted unit cube. The vertex shader
// uses the xyww trick (gl_Position.z = gl_Position.w) so every fragment
// lands at NDC depth 1.0, behind all scene geometry, which lets the sky
// draw after the scene and fill only uncovered pixels.
type Skybox struct {
	vao  uint32
	vbo  uint32
	prog *Program
	cm   *scene.Cubemap
}

// 36 positions (xyz) for a unit cube. Winding is CCW from the outside;
// face culling is disabled during draw so the inside faces show.
var skyboxVerts = []float32{
	// -Z face
	-1, -1, -1, 1, 1, -1, 1, -1, -1,
	1, 1, -1, -1, -1, -1, -1, 1, -1,
	// +Z face
	-1, -1, 1, 1, -1, 1, 1, 1, 1,
	1, 1, 1, -1, 1, 1, -1, -1, 1,
	// -X face
	-1, 1, 1, -1, 1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, 1, -1, 1, 1,
	// +X face
	1, 1, 1, 1, -1, -1, 1, 1, -1,
	1, -1, -1, 1, 1, 1, 1, -1, 1,
	// -Y face
	-1, -1, -1, 1, -1, -1, 1, -1, 1,
	1, -1, 1, -1, -1, 1, -1, -1, -1,
	// +Y face
	-1, 1, -1, 1, 1, 1, 1, 1, -1,
	1, 1, 1, -1, 1, -1, -1, 1, 1,
}

// NewSkybox compiles the sky shader, uploads the cube geometry and binds
// the given cubemap as the sky texture.
func NewSkybox(cm *scene.Cubemap) (*Skybox, error) {
	if err := UploadCubemap(cm); err != nil {
		return nil, err
	}
	prog, err := NewProgram(skyboxVertSrc, skyboxFragSrc)
	if err != nil {
		return nil, fmt.Errorf("skybox shader: %w", err)
	}

	sb := &Skybox{prog: prog, cm: cm}

	gl.GenVertexArrays(1, &sb.vao)
	gl.GenBuffers(1, &sb.vbo)
	gl.BindVertexArray(sb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, sb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(skyboxVerts)*4, gl.Ptr(skyboxVerts), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 12, gl.PtrOffset(0))
	gl.BindVertexArray(0)

	return sb, nil
}

// SetCubemap swaps the sky texture. The cubemap is uploaded if needed.
func (sb *Skybox) SetCubemap(cm *scene.Cubemap) error {
	if err := UploadCubemap(cm); err != nil {
		return err
	}
	sb.cm = cm
	return nil
}

// Draw renders the sky. The camera view matrix has its translation stripped
// here so the box stays centered on the eye.
func (sb *Skybox) Draw(view, projection math.Mat4) {
	if sb.cm == nil || sb.cm.GLID == 0 {
		return
	}

	// Depth LEQUAL so depth=1.0 fragments pass against the cleared depth
	// value. Depth mask off so the sky never writes depth.
	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(false)

	sb.prog.Use()
	sb.prog.SetMat4("view", view.ToMat3().ToMat4())
	sb.prog.SetMat4("projection", projection)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, sb.cm.GLID)
	sb.prog.SetInt("skybox", 0)

	gl.BindVertexArray(sb.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 36)
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
}

// Destroy frees all GPU resources owned by this skybox.
func (sb *Skybox) Destroy() {
	gl.DeleteVertexArrays(1, &sb.vao)
	gl.DeleteBuffers(1, &sb.vbo)
	sb.prog.Destroy()
}
