package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"brush-engine/ui"
)

// Unit quad in [0,1]^2, two CCW triangles. Each sprite stretches it via
// uniforms, so one draw call per sprite and no vertex streaming.
var spriteQuadVerts = []float32{
	0, 0, 1, 0, 1, 1,
	1, 1, 0, 1, 0, 0,
}

// SpriteRenderer draws screen-space sprites one at a time, each with its
// own texture and placement uniforms. Sprites sort back to front before
// drawing so alpha blending composites correctly.
type SpriteRenderer struct {
	prog *Program
	vao  uint32
	vbo  uint32
}

func NewSpriteRenderer() (*SpriteRenderer, error) {
	prog, err := NewProgram(spriteVertSrc, spriteFragSrc)
	if err != nil {
		return nil, fmt.Errorf("sprite shader: %w", err)
	}

	r := &SpriteRenderer{prog: prog}
	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(spriteQuadVerts)*4, gl.Ptr(spriteQuadVerts), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 8, gl.PtrOffset(0))
	gl.BindVertexArray(0)

	return r, nil
}

// Draw renders the sprites over the bound framebuffer. The slice is sorted
// in place by depth.
func (r *SpriteRenderer) Draw(sprites []ui.Sprite, screenW, screenH float32) {
	if len(sprites) == 0 {
		return
	}
	ui.SortSprites(sprites)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	r.prog.Use()
	r.prog.SetVec2("screenSize", screenW, screenH)
	gl.BindVertexArray(r.vao)

	for i := range sprites {
		s := &sprites[i]
		if s.Texture == nil {
			continue
		}
		if err := UploadTexture(s.Texture); err != nil {
			fmt.Printf("WARNING: sprite texture upload: %v\n", err)
			continue
		}

		r.prog.SetVec2("screenPos", s.Screen.X, s.Screen.Y)
		r.prog.SetVec2("screenScale", s.Screen.Width, s.Screen.Height)
		r.prog.SetVec2("atlasPos", s.Atlas.X, s.Atlas.Y)
		r.prog.SetVec2("atlasScale", s.Atlas.Width, s.Atlas.Height)
		r.prog.SetVec2("textureSizePx", float32(s.Texture.Width), float32(s.Texture.Height))
		r.prog.SetFloat("depth", s.Depth)

		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, s.Texture.GLID)
		r.prog.SetInt("sprite", 0)

		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}

	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// Destroy frees all GPU resources owned by this renderer.
func (r *SpriteRenderer) Destroy() {
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteBuffers(1, &r.vbo)
	r.prog.Destroy()
}
