package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"brush-engine/core"
	"brush-engine/math"
	"brush-engine/scene"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO         uint32
	VBO         uint32
	EBO         uint32
	IndexCount  int32
	HasIndices  bool
	InstanceVBO uint32 // per-instance data VBO (0 = not yet allocated)
	InstanceCap int    // capacity of InstanceVBO in instances
}

// Renderer is the OpenGL rendering backend for the world pass. It owns two
// programs that share the lighting fragment shader: an instanced one for
// static batches, where flags and transforms ride in the instance buffer,
// and a single-draw one for mobile meshes, where they are uniforms.
type Renderer struct {
	instanced *Program
	single    *Program

	// Fallbacks bound when a material has no map: full white diffuse so
	// the light colors pass through, dim grey specular.
	whiteTex *scene.Texture
	greyTex  *scene.Texture

	gpuMeshes   map[*scene.Mesh]*GPUMesh
	packScratch []float32

	viewportW int32
	viewportH int32

	ClearColor core.Color
}

// NewRenderer initializes OpenGL and compiles the world-pass shaders.
// The window's GL context must be current.
func NewRenderer(width, height int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	fmt.Printf("OpenGL %s\n", gl.GoStr(gl.GetString(gl.VERSION)))

	instanced, err := NewProgram(sceneVertInstancedSrc, sceneFragSrc)
	if err != nil {
		return nil, fmt.Errorf("instanced shader: %w", err)
	}
	single, err := NewProgram(sceneVertSingleSrc, sceneFragSrc)
	if err != nil {
		instanced.Destroy()
		return nil, fmt.Errorf("single shader: %w", err)
	}

	r := &Renderer{
		instanced:  instanced,
		single:     single,
		whiteTex:   scene.NewSolidTexture("fallback_diffuse", 255, 255, 255, 255),
		greyTex:    scene.NewSolidTexture("fallback_specular", 64, 64, 64, 255),
		gpuMeshes:  make(map[*scene.Mesh]*GPUMesh),
		viewportW:  int32(width),
		viewportH:  int32(height),
		ClearColor: core.Color{R: 0.05, G: 0.05, B: 0.08, A: 1},
	}
	if err := UploadTexture(r.whiteTex); err != nil {
		return nil, err
	}
	if err := UploadTexture(r.greyTex); err != nil {
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	return r, nil
}

// Resize updates the viewport for the next BeginFrame.
func (r *Renderer) Resize(width, height int) {
	r.viewportW = int32(width)
	r.viewportH = int32(height)
}

// BeginFrame clears the bound framebuffer and uploads the per-frame camera
// and light uniforms to both world programs.
func (r *Renderer) BeginFrame(cam *scene.Camera, lights *scene.LightSet) {
	gl.Viewport(0, 0, r.viewportW, r.viewportH)
	gl.ClearColor(r.ClearColor.R, r.ClearColor.G, r.ClearColor.B, r.ClearColor.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()

	for _, p := range [2]*Program{r.instanced, r.single} {
		p.Use()
		p.SetMat4("view", view)
		p.SetMat4("projection", proj)
		p.SetVec3("viewPos", cam.Position)
		r.bindLights(p, lights)
	}
}

// bindLights uploads the directional light and every point light to p.
// p must be in use.
func (r *Renderer) bindLights(p *Program, lights *scene.LightSet) {
	d := lights.Directional
	p.SetVec3("dirLight.direction", d.Direction)
	p.SetColor3("dirLight.ambient", d.Ambient)
	p.SetColor3("dirLight.diffuse", d.Diffuse)
	p.SetColor3("dirLight.specular", d.Specular)

	for i, pl := range lights.Points() {
		prefix := fmt.Sprintf("pointLights[%d]", i)
		p.SetVec3(prefix+".position", pl.Position)
		p.SetColor3(prefix+".ambient", pl.Ambient)
		p.SetColor3(prefix+".diffuse", pl.Diffuse)
		p.SetColor3(prefix+".specular", pl.Specular)
		p.SetFloat(prefix+".constant", pl.Constant)
		p.SetFloat(prefix+".linear", pl.Linear)
		p.SetFloat(prefix+".quadratic", pl.Quadratic)
	}
	p.SetInt("pointLightCount", int32(lights.Count()))
}

// DrawStatic renders every static batch in one instanced draw call per
// mesh. Batches marked dirty since the last frame are re-packed and
// re-uploaded first.
func (r *Renderer) DrawStatic(sc *scene.Scene) {
	r.instanced.Use()
	sc.EachStaticBatch(func(name string, records []scene.InstanceRecord) {
		mesh, ok := sc.Meshes[name]
		if !ok {
			fmt.Printf("WARNING: static batch references unregistered mesh %q\n", name)
			return
		}
		gpu := r.ensureUploaded(mesh)
		if gpu == nil {
			return
		}

		if sc.TakeDirty(name) || gpu.InstanceVBO == 0 {
			r.packScratch = packInstances(records, r.packScratch)
			r.uploadInstanceVBO(gpu, r.packScratch, len(records))
		}

		r.applyMaterial(r.instanced, mesh.Material)

		gl.BindVertexArray(gpu.VAO)
		if gpu.HasIndices {
			gl.DrawElementsInstanced(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil, int32(len(records)))
		} else {
			gl.DrawArraysInstanced(gl.TRIANGLES, 0, int32(len(mesh.Vertices)), int32(len(records)))
		}
		gl.BindVertexArray(0)
	})
}

// DrawMobile renders the scene's queued per-frame meshes with the
// single-draw program.
func (r *Renderer) DrawMobile(sc *scene.Scene) {
	for _, mm := range sc.Mobile {
		r.DrawMesh(mm.Mesh, mm.Transform, mm.Flags)
	}
}

// DrawMesh renders one mesh with an explicit transform and flag word. The
// normal matrix is derived from the transform here, so non-uniform scales
// light correctly.
func (r *Renderer) DrawMesh(mesh *scene.Mesh, transform math.Mat4, flags scene.InstanceFlags) {
	if mesh == nil {
		return
	}
	gpu := r.ensureUploaded(mesh)
	if gpu == nil {
		return
	}

	r.single.Use()
	r.single.SetMat4("model", transform)
	r.single.SetMat3("normalMatrix", math.NormalMatrix(transform))
	r.single.SetUint("flags", uint32(flags))
	r.applyMaterial(r.single, mesh.Material)

	gl.BindVertexArray(gpu.VAO)
	if gpu.HasIndices {
		gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(mesh.Vertices)))
	}
	gl.BindVertexArray(0)
}

// applyMaterial binds the diffuse and specular maps (units 0 and 1) and
// sets the shininess. Must be called while p is active.
func (r *Renderer) applyMaterial(p *Program, mat *scene.Material) {
	if mat == nil {
		mat = scene.DefaultMaterial()
	}

	diffuse := r.whiteTex
	if mat.Diffuse != nil {
		if err := UploadTexture(mat.Diffuse); err == nil {
			diffuse = mat.Diffuse
		}
	}
	specular := r.greyTex
	if mat.Specular != nil {
		if err := UploadTexture(mat.Specular); err == nil {
			specular = mat.Specular
		}
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, diffuse.GLID)
	p.SetInt("material.diffuse", 0)

	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, specular.GLID)
	p.SetInt("material.specular", 1)

	p.SetFloat("material.shininess", mat.Shininess)
}

// uploadInstanceVBO uploads buf to the per-mesh instance VBO, creating it
// and wiring attrib locations 4-11 into the VAO on first call.
func (r *Renderer) uploadInstanceVBO(gpu *GPUMesh, buf []float32, count int) {
	if gpu.InstanceVBO == 0 {
		gl.GenBuffers(1, &gpu.InstanceVBO)
		gl.BindVertexArray(gpu.VAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, gpu.InstanceVBO)

		// Flag word at location 4, read as an integer attribute.
		gl.EnableVertexAttribArray(4)
		gl.VertexAttribIPointer(4, 1, gl.UNSIGNED_INT, instanceStride, gl.PtrOffset(instanceFlagsOffset))
		gl.VertexAttribDivisor(4, 1)

		// Model mat4 columns at locations 5-8.
		for i := uint32(0); i < 4; i++ {
			gl.EnableVertexAttribArray(5 + i)
			gl.VertexAttribPointer(5+i, 4, gl.FLOAT, false, instanceStride, gl.PtrOffset(instanceModelOffset+int(i)*16))
			gl.VertexAttribDivisor(5+i, 1)
		}
		// Normal mat3 columns at locations 9-11.
		for i := uint32(0); i < 3; i++ {
			gl.EnableVertexAttribArray(9 + i)
			gl.VertexAttribPointer(9+i, 3, gl.FLOAT, false, instanceStride, gl.PtrOffset(instanceNormalOffset+int(i)*12))
			gl.VertexAttribDivisor(9+i, 1)
		}
		gl.BindVertexArray(0)
	}

	byteSize := len(buf) * 4
	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.InstanceVBO)
	if count > gpu.InstanceCap {
		gl.BufferData(gl.ARRAY_BUFFER, byteSize, gl.Ptr(buf), gl.DYNAMIC_DRAW)
		gpu.InstanceCap = count
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, byteSize, gl.Ptr(buf))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// ── Resource management ───────────────────────────────────────────────────────

// ReleaseMesh frees GPU buffers for the given mesh.
func (r *Renderer) ReleaseMesh(mesh *scene.Mesh) {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		gl.DeleteVertexArrays(1, &gpu.VAO)
		gl.DeleteBuffers(1, &gpu.VBO)
		if gpu.HasIndices {
			gl.DeleteBuffers(1, &gpu.EBO)
		}
		if gpu.InstanceVBO != 0 {
			gl.DeleteBuffers(1, &gpu.InstanceVBO)
		}
		delete(r.gpuMeshes, mesh)
		mesh.GPUData = nil
	}
}

// Destroy releases all GPU resources owned by the renderer.
func (r *Renderer) Destroy() {
	for mesh := range r.gpuMeshes {
		r.ReleaseMesh(mesh)
	}
	DeleteTexture(r.whiteTex)
	DeleteTexture(r.greyTex)
	r.instanced.Destroy()
	r.single.Destroy()
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// ensureUploaded uploads vertex/index data if not already done.
func (r *Renderer) ensureUploaded(mesh *scene.Mesh) *GPUMesh {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		return gpu
	}
	if len(mesh.Vertices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))

	gpu := &GPUMesh{
		IndexCount: int32(len(mesh.Indices)),
		HasIndices: len(mesh.Indices) > 0,
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(stride),
		gl.Ptr(mesh.Vertices),
		gl.STATIC_DRAW)

	var v core.Vertex
	posOff := int(unsafe.Offsetof(v.Position))
	normOff := int(unsafe.Offsetof(v.Normal))
	uvOff := int(unsafe.Offsetof(v.UV))
	colorOff := int(unsafe.Offsetof(v.Color))

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(posOff))

	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(normOff))

	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(uvOff))

	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 4, gl.FLOAT, false, stride, gl.PtrOffset(colorOff))

	if gpu.HasIndices {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
			len(mesh.Indices)*4,
			gl.Ptr(mesh.Indices),
			gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	r.gpuMeshes[mesh] = gpu
	mesh.GPUData = gpu
	return gpu
}
