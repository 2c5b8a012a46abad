package opengl

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"brush-engine/core"
	"brush-engine/math"
)

// Program wraps a linked shader program with a uniform location cache, so
// passes can set uniforms by name without a GetUniformLocation round trip
// per frame. Unknown names resolve to -1 once and are silently ignored by
// the Set helpers, matching GL semantics.
type Program struct {
	ID   uint32
	locs map[string]int32
}

// NewProgram compiles and links a vertex/fragment pair. Sources must be
// NUL-terminated.
func NewProgram(vertSrc, fragSrc string) (*Program, error) {
	id, err := linkProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, err
	}
	return &Program{ID: id, locs: make(map[string]int32)}, nil
}

func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

func (p *Program) Destroy() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// Loc returns the cached uniform location for name.
func (p *Program) Loc(name string) int32 {
	if loc, ok := p.locs[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	p.locs[name] = loc
	return loc
}

// Set helpers. The program must be in use.

func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.Loc(name), v)
}

func (p *Program) SetUint(name string, v uint32) {
	gl.Uniform1ui(p.Loc(name), v)
}

func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.Loc(name), v)
}

func (p *Program) SetVec2(name string, x, y float32) {
	gl.Uniform2f(p.Loc(name), x, y)
}

func (p *Program) SetVec3(name string, v math.Vec3) {
	gl.Uniform3f(p.Loc(name), v.X, v.Y, v.Z)
}

// SetColor3 uploads the RGB channels of a color as a vec3.
func (p *Program) SetColor3(name string, c core.Color) {
	gl.Uniform3f(p.Loc(name), c.R, c.G, c.B)
}

func (p *Program) SetMat4(name string, m math.Mat4) {
	gl.UniformMatrix4fv(p.Loc(name), 1, false, &m[0][0])
}

func (p *Program) SetMat3(name string, m math.Mat3) {
	gl.UniformMatrix3fv(p.Loc(name), 1, false, &m[0][0])
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
