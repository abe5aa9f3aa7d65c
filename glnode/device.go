package glnode

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// floatsPerVertex is x, y, u, v.
const floatsPerVertex = 4

// program is a linked shader program and its uniform locations.
type program struct {
	id         uint32
	matrixLoc  int32
	opacityLoc int32
	samplerLoc int32
}

// quad is the vertex array and buffer holding the four fan vertices.
type quad struct {
	vao, vbo uint32
}

// drawCall is everything one quad draw needs.
type drawCall struct {
	prog    program
	quad    quad
	texture uint32
	matrix  mgl32.Mat4
	opacity float32
}

// glAPI is the slice of OpenGL the node uses. The real implementation is
// glDevice; tests substitute a recording fake.
type glAPI interface {
	buildProgram(vertexSrc, fragmentSrc string) (program, error)
	deleteProgram(p program)

	createQuad() quad
	updateQuad(q quad, verts []float32)
	deleteQuad(q quad)

	createTexture(w, h int) uint32
	uploadTexture(tex uint32, w, h int, pix []byte)
	deleteTexture(tex uint32)

	draw(d drawCall)
	// unbind clears the texture, buffer and program bindings the other
	// calls leave behind.
	unbind()
}

// glDevice issues real go-gl calls against the current context.
type glDevice struct{}

func (glDevice) buildProgram(vertexSrc, fragmentSrc string) (program, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vertexSrc)
	if err != nil {
		return program{}, fmt.Errorf("vertex shader: %w", err)
	}
	fs, err := compileShader(gl.FRAGMENT_SHADER, fragmentSrc)
	if err != nil {
		gl.DeleteShader(vs)
		return program{}, fmt.Errorf("fragment shader: %w", err)
	}

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
		gl.DeleteProgram(id)
		return program{}, fmt.Errorf("link error: %s", log)
	}

	return program{
		id:         id,
		matrixLoc:  gl.GetUniformLocation(id, gl.Str("matrix\x00")),
		opacityLoc: gl.GetUniformLocation(id, gl.Str("opacity\x00")),
		samplerLoc: gl.GetUniformLocation(id, gl.Str("s_texture\x00")),
	}, nil
}

func compileShader(shaderType uint32, source string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile error: %s", log)
	}
	return shader, nil
}

func (glDevice) deleteProgram(p program) {
	gl.DeleteProgram(p.id)
}

func (glDevice) createQuad() quad {
	var q quad
	gl.GenVertexArrays(1, &q.vao)
	gl.GenBuffers(1, &q.vbo)

	gl.BindVertexArray(q.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*floatsPerVertex*4, nil, gl.DYNAMIC_DRAW)

	stride := int32(floatsPerVertex * 4)
	gl.EnableVertexAttribArray(posAttrLoc)
	gl.VertexAttribPointer(posAttrLoc, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.DisableVertexAttribArray(colAttrLoc)
	gl.EnableVertexAttribArray(texAttrLoc)
	gl.VertexAttribPointer(texAttrLoc, 2, gl.FLOAT, false, stride, gl.PtrOffset(2*4))

	gl.BindVertexArray(0)
	return q
}

func (glDevice) updateQuad(q quad, verts []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts))
}

func (glDevice) deleteQuad(q quad) {
	gl.DeleteBuffers(1, &q.vbo)
	gl.DeleteVertexArrays(1, &q.vao)
}

func (glDevice) createTexture(w, h int) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	return tex
}

func (glDevice) uploadTexture(tex uint32, w, h int, pix []byte) {
	if len(pix) == 0 {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
}

func (glDevice) deleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}

func (glDevice) draw(d drawCall) {
	gl.UseProgram(d.prog.id)
	gl.UniformMatrix4fv(d.prog.matrixLoc, 1, false, &d.matrix[0])
	gl.Uniform1f(d.prog.opacityLoc, d.opacity)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.texture)
	gl.Uniform1i(d.prog.samplerLoc, 0)

	gl.Disable(gl.BLEND)
	gl.BindVertexArray(d.quad.vao)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
	gl.BindVertexArray(0)
}

func (glDevice) unbind() {
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.UseProgram(0)
}
