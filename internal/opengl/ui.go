package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"brush-engine/scene"
	"brush-engine/ui"
)

// UIRenderer draws one frame's batched interface geometry from a single
// atlas texture. The batch streams into a reused VBO/EBO pair each call.
type UIRenderer struct {
	prog *Program
	vao  uint32
	vbo  uint32
	ebo  uint32

	vboCap int // bytes
	eboCap int // bytes
}

func NewUIRenderer() (*UIRenderer, error) {
	prog, err := NewProgram(uiVertSrc, uiFragSrc)
	if err != nil {
		return nil, fmt.Errorf("ui shader: %w", err)
	}

	r := &UIRenderer{prog: prog}
	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)

	stride := int32(unsafe.Sizeof(ui.Vertex{}))
	var v ui.Vertex

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.X))))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.U))))
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BindVertexArray(0)

	return r, nil
}

// Draw streams the batch to the GPU and renders it over whatever is in the
// bound framebuffer. Depth testing is off for the duration; UI geometry
// layers purely by submission order.
func (r *UIRenderer) Draw(batch ui.Batch, atlas *scene.Texture, screenW, screenH float32) {
	if len(batch.Indices) == 0 || atlas == nil {
		return
	}
	if err := UploadTexture(atlas); err != nil {
		fmt.Printf("WARNING: ui atlas upload: %v\n", err)
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.BindVertexArray(r.vao)

	vertBytes := len(batch.Vertices) * int(unsafe.Sizeof(ui.Vertex{}))
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if vertBytes > r.vboCap {
		gl.BufferData(gl.ARRAY_BUFFER, vertBytes, gl.Ptr(batch.Vertices), gl.STREAM_DRAW)
		r.vboCap = vertBytes
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, vertBytes, gl.Ptr(batch.Vertices))
	}

	idxBytes := len(batch.Indices) * 2
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	if idxBytes > r.eboCap {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, idxBytes, gl.Ptr(batch.Indices), gl.STREAM_DRAW)
		r.eboCap = idxBytes
	} else {
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, idxBytes, gl.Ptr(batch.Indices))
	}

	r.prog.Use()
	r.prog.SetVec2("screenSize", screenW, screenH)
	r.prog.SetVec2("atlasSize", float32(atlas.Width), float32(atlas.Height))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, atlas.GLID)
	r.prog.SetInt("atlas", 0)

	gl.DrawElements(gl.TRIANGLES, int32(len(batch.Indices)), gl.UNSIGNED_SHORT, nil)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// Destroy frees all GPU resources owned by this renderer.
func (r *UIRenderer) Destroy() {
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteBuffers(1, &r.ebo)
	r.prog.Destroy()
}
