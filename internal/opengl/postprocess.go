package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"brush-engine/math"
	"brush-engine/scene"
)

// weightsRow slices one row of a 3x3 kernel into a vec3 for upload.
func weightsRow(w [9]float32, row int) math.Vec3 {
	return math.Vec3{X: w[row*3], Y: w[row*3+1], Z: w[row*3+2]}
}

// ScreenFBO is the off-screen render target for the world pass. The scene
// draws into it, then Blit composites color and depth to the default
// framebuffer through the screen shader: an optional 3x3 kernel first,
// then optional depth fog, each gated by its own flag word.
type ScreenFBO struct {
	// Scene renders into this
	FBO      uint32 // framebuffer object
	ColorTex uint32 // RGB colour attachment
	DepthTex uint32 // DEPTH24_STENCIL8, sampleable for the fog pass
	Width    int32
	Height   int32

	prog    *Program
	quadVAO uint32 // empty VAO for the fullscreen triangle
}

// NewScreenFBO compiles the screen shader and allocates the render target.
func NewScreenFBO(width, height int) (*ScreenFBO, error) {
	prog, err := NewProgram(screenVertSrc, screenFragSrc)
	if err != nil {
		return nil, fmt.Errorf("screen shader: %w", err)
	}

	fbo := &ScreenFBO{prog: prog}
	prog.Use()
	prog.SetInt("screenTex", 0)
	prog.SetInt("depthTex", 1)

	gl.GenVertexArrays(1, &fbo.quadVAO)
	fbo.allocFBO(width, height)
	return fbo, nil
}

// ── FBO lifecycle ─────────────────────────────────────────────────────────────

func (fb *ScreenFBO) allocFBO(width, height int) {
	fb.Width = int32(width)
	fb.Height = int32(height)

	gl.GenTextures(1, &fb.ColorTex)
	gl.BindTexture(gl.TEXTURE_2D, fb.ColorTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB,
		int32(width), int32(height), 0, gl.RGB, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	// Depth as a sampleable texture; the fog pass reads the raw depth value
	gl.GenTextures(1, &fb.DepthTex)
	gl.BindTexture(gl.TEXTURE_2D, fb.DepthTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH24_STENCIL8,
		int32(width), int32(height), 0, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &fb.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0,
		gl.TEXTURE_2D, fb.ColorTex, 0)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT,
		gl.TEXTURE_2D, fb.DepthTex, 0)
	if s := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); s != gl.FRAMEBUFFER_COMPLETE {
		fmt.Printf("WARNING: screen FBO incomplete (0x%X)\n", s)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (fb *ScreenFBO) freeFBO() {
	if fb.FBO != 0 {
		gl.DeleteFramebuffers(1, &fb.FBO)
		fb.FBO = 0
	}
	if fb.ColorTex != 0 {
		gl.DeleteTextures(1, &fb.ColorTex)
		fb.ColorTex = 0
	}
	if fb.DepthTex != 0 {
		gl.DeleteTextures(1, &fb.DepthTex)
		fb.DepthTex = 0
	}
}

// Resize recreates the render target at the new pixel dimensions.
func (fb *ScreenFBO) Resize(width, height int) {
	fb.freeFBO()
	fb.allocFBO(width, height)
}

// Destroy frees all GPU resources owned by this object.
func (fb *ScreenFBO) Destroy() {
	fb.freeFBO()
	fb.prog.Destroy()
	if fb.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &fb.quadVAO)
		fb.quadVAO = 0
	}
}

// ── Pass ──────────────────────────────────────────────────────────────────────

// Begin redirects subsequent draws into the off-screen target.
func (fb *ScreenFBO) Begin() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.FBO)
}

// End restores the default framebuffer.
func (fb *ScreenFBO) End() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Blit composites the off-screen target to the default framebuffer. The
// kernel always runs before the fog so the fog tints the convolved color.
// Disabled stages pass the image through untouched.
func (fb *ScreenFBO) Blit(kernel scene.KernelParams, fog scene.FogParams) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, fb.Width, fb.Height)
	gl.Disable(gl.DEPTH_TEST)

	fb.prog.Use()
	fb.prog.SetInt("kernel.flags", kernel.FlagsWord())
	fb.prog.SetVec3("kernel.top", weightsRow(kernel.Weights, 0))
	fb.prog.SetVec3("kernel.middle", weightsRow(kernel.Weights, 1))
	fb.prog.SetVec3("kernel.bottom", weightsRow(kernel.Weights, 2))
	fb.prog.SetFloat("kernel.offset", kernel.Offset)
	fb.prog.SetInt("fog.flags", fog.FlagsWord())
	fb.prog.SetColor3("fog.color", fog.Color)
	fb.prog.SetFloat("fog.strength", fog.Strength)
	fb.prog.SetFloat("fog.maxAttenuation", fog.Max)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, fb.ColorTex)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, fb.DepthTex)

	gl.BindVertexArray(fb.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)

	gl.Enable(gl.DEPTH_TEST)
}
