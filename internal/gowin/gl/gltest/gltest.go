// Package gltest provides an in-memory implementation of gl.OpenGL for tests
// that cannot open a real context.
//
// It keeps just enough state to check call ordering, buffer contents, vertex
// layouts and object lifetimes. Shader "compilation" checks the overall
// shape of GLSL (version directive, main function, balanced braces) and
// produces driver-style diagnostics otherwise.
package gltest

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/tinyrange/hellotriangle/internal/gowin/gl"
)

// Attrib is a vertex attribute recorded on a vertex array object.
type Attrib struct {
	Buffer     uint32
	Size       int32
	Type       uint32
	Normalized bool
	Stride     int32
	Offset     uintptr
	Enabled    bool
}

// Draw is one recorded DrawArrays call together with the state it used.
type Draw struct {
	Program uint32
	VAO     uint32
	Mode    uint32
	First   int32
	Count   int32
}

type shader struct {
	kind     uint32
	src      string
	compiled bool
	log      string
	deleted  bool
}

type program struct {
	stages  []uint32
	linked  bool
	log     string
	deleted bool
}

type vertexArray struct {
	attribs map[uint32]*Attrib
	deleted bool
}

// GL is a fake OpenGL context. The zero value is not usable; call New.
type GL struct {
	// VersionString is returned for GetString(gl.Version).
	VersionString string

	// Calls lists every entry point invoked, in order, without the gl prefix.
	Calls []string
	// Draws lists every DrawArrays call, in order.
	Draws []Draw
	// ViewportRect is the last rectangle passed to Viewport as x, y, w, h.
	ViewportRect [4]int32
	// ClearRGBA is the last color passed to ClearColor.
	ClearRGBA [4]float32
	// Clears counts Clear calls with the color bit set.
	Clears int

	nextID uint32

	shaders  map[uint32]*shader
	programs map[uint32]*program
	buffers  map[uint32][]byte
	vaos     map[uint32]*vertexArray

	currentProgram uint32
	boundBuffer    uint32
	boundVAO       uint32
	err            uint32
}

var _ gl.OpenGL = (*GL)(nil)

// New returns an empty context reporting OpenGL 3.3.
func New() *GL {
	return &GL{
		VersionString: "3.3.0 gltest",
		shaders:       make(map[uint32]*shader),
		programs:      make(map[uint32]*program),
		buffers:       make(map[uint32][]byte),
		vaos:          make(map[uint32]*vertexArray),
	}
}

func (g *GL) call(name string) {
	g.Calls = append(g.Calls, name)
}

func (g *GL) id() uint32 {
	g.nextID++
	return g.nextID
}

func (g *GL) GetString(name uint32) string {
	g.call("GetString")
	switch name {
	case gl.Vendor:
		return "gltest"
	case gl.Renderer:
		return "in-memory"
	case gl.Version:
		return g.VersionString
	}
	return ""
}

func (g *GL) GetError() uint32 {
	g.call("GetError")
	err := g.err
	g.err = gl.NoError
	return err
}

func (g *GL) CreateShader(kind uint32) uint32 {
	g.call("CreateShader")
	if kind != gl.VertexShader && kind != gl.FragmentShader {
		return 0
	}
	id := g.id()
	g.shaders[id] = &shader{kind: kind}
	return id
}

func (g *GL) ShaderSource(id uint32, src string) {
	g.call("ShaderSource")
	if sh, ok := g.shaders[id]; ok {
		sh.src = src
	}
}

func (g *GL) CompileShader(id uint32) {
	g.call("CompileShader")
	sh, ok := g.shaders[id]
	if !ok {
		return
	}
	sh.log = checkSource(sh.kind, sh.src)
	sh.compiled = sh.log == ""
}

func (g *GL) GetShaderiv(id uint32, pname uint32, params *int32) {
	g.call("GetShaderiv")
	sh, ok := g.shaders[id]
	if !ok {
		*params = 0
		return
	}
	switch pname {
	case gl.CompileStatus:
		*params = boolInt(sh.compiled)
	case gl.InfoLogLength:
		*params = logLength(sh.log)
	}
}

func (g *GL) GetShaderInfoLog(id uint32) string {
	g.call("GetShaderInfoLog")
	if sh, ok := g.shaders[id]; ok {
		return sh.log
	}
	return ""
}

func (g *GL) DeleteShader(id uint32) {
	g.call("DeleteShader")
	if sh, ok := g.shaders[id]; ok {
		sh.deleted = true
	}
}

func (g *GL) CreateProgram() uint32 {
	g.call("CreateProgram")
	id := g.id()
	g.programs[id] = &program{}
	return id
}

func (g *GL) AttachShader(prog, sh uint32) {
	g.call("AttachShader")
	p, ok := g.programs[prog]
	if !ok {
		return
	}
	if s, ok := g.shaders[sh]; !ok || s.deleted {
		return
	}
	p.stages = append(p.stages, sh)
}

func (g *GL) LinkProgram(prog uint32) {
	g.call("LinkProgram")
	p, ok := g.programs[prog]
	if !ok {
		return
	}
	var vertex, fragment int
	for _, id := range p.stages {
		sh := g.shaders[id]
		if !sh.compiled {
			p.linked = false
			p.log = "error: linking with uncompiled/unspecialized shader\n"
			return
		}
		switch sh.kind {
		case gl.VertexShader:
			vertex++
		case gl.FragmentShader:
			fragment++
		}
	}
	switch {
	case vertex == 0 && fragment == 0:
		p.log = "error: no shaders attached to the program\n"
	case vertex == 0:
		p.log = "error: vertex shader missing\n"
	case fragment == 0:
		p.log = "error: fragment shader missing\n"
	default:
		p.log = ""
	}
	p.linked = p.log == ""
}

func (g *GL) GetProgramiv(prog uint32, pname uint32, params *int32) {
	g.call("GetProgramiv")
	p, ok := g.programs[prog]
	if !ok {
		*params = 0
		return
	}
	switch pname {
	case gl.LinkStatus:
		*params = boolInt(p.linked)
	case gl.InfoLogLength:
		*params = logLength(p.log)
	}
}

func (g *GL) GetProgramInfoLog(prog uint32) string {
	g.call("GetProgramInfoLog")
	if p, ok := g.programs[prog]; ok {
		return p.log
	}
	return ""
}

func (g *GL) UseProgram(prog uint32) {
	g.call("UseProgram")
	g.currentProgram = prog
}

func (g *GL) DeleteProgram(prog uint32) {
	g.call("DeleteProgram")
	if p, ok := g.programs[prog]; ok {
		p.deleted = true
	}
	if g.currentProgram == prog {
		g.currentProgram = 0
	}
}

func (g *GL) GenBuffers(n int32, buffers *uint32) {
	g.call("GenBuffers")
	out := unsafe.Slice(buffers, n)
	for i := range out {
		out[i] = g.id()
		g.buffers[out[i]] = nil
	}
}

func (g *GL) BindBuffer(target, buffer uint32) {
	g.call("BindBuffer")
	if target == gl.ArrayBuffer {
		g.boundBuffer = buffer
	}
}

func (g *GL) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	g.call("BufferData")
	if target != gl.ArrayBuffer || g.boundBuffer == 0 {
		g.err = 0x0502 // GL_INVALID_OPERATION
		return
	}
	buf := make([]byte, size)
	if data != nil {
		copy(buf, unsafe.Slice((*byte)(data), size))
	}
	g.buffers[g.boundBuffer] = buf
}

func (g *GL) GetBufferSubData(target uint32, offset, size int, data unsafe.Pointer) {
	g.call("GetBufferSubData")
	if target != gl.ArrayBuffer || g.boundBuffer == 0 {
		g.err = 0x0502
		return
	}
	buf := g.buffers[g.boundBuffer]
	if offset < 0 || offset+size > len(buf) {
		g.err = 0x0501 // GL_INVALID_VALUE
		return
	}
	copy(unsafe.Slice((*byte)(data), size), buf[offset:offset+size])
}

func (g *GL) DeleteBuffers(n int32, buffers *uint32) {
	g.call("DeleteBuffers")
	for _, id := range unsafe.Slice(buffers, n) {
		delete(g.buffers, id)
		if g.boundBuffer == id {
			g.boundBuffer = 0
		}
	}
}

func (g *GL) GenVertexArrays(n int32, arrays *uint32) {
	g.call("GenVertexArrays")
	out := unsafe.Slice(arrays, n)
	for i := range out {
		out[i] = g.id()
		g.vaos[out[i]] = &vertexArray{attribs: make(map[uint32]*Attrib)}
	}
}

func (g *GL) BindVertexArray(array uint32) {
	g.call("BindVertexArray")
	g.boundVAO = array
}

func (g *GL) DeleteVertexArrays(n int32, arrays *uint32) {
	g.call("DeleteVertexArrays")
	for _, id := range unsafe.Slice(arrays, n) {
		if v, ok := g.vaos[id]; ok {
			v.deleted = true
		}
		if g.boundVAO == id {
			g.boundVAO = 0
		}
	}
}

func (g *GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	g.call("VertexAttribPointer")
	v, ok := g.vaos[g.boundVAO]
	if !ok || g.boundBuffer == 0 {
		g.err = 0x0502
		return
	}
	a := v.attrib(index)
	a.Buffer = g.boundBuffer
	a.Size = size
	a.Type = xtype
	a.Normalized = normalized
	a.Stride = stride
	a.Offset = offset
}

func (g *GL) EnableVertexAttribArray(index uint32) {
	g.call("EnableVertexAttribArray")
	v, ok := g.vaos[g.boundVAO]
	if !ok {
		g.err = 0x0502
		return
	}
	v.attrib(index).Enabled = true
}

func (v *vertexArray) attrib(index uint32) *Attrib {
	a, ok := v.attribs[index]
	if !ok {
		a = &Attrib{}
		v.attribs[index] = a
	}
	return a
}

func (g *GL) Viewport(x, y, width, height int32) {
	g.call("Viewport")
	g.ViewportRect = [4]int32{x, y, width, height}
}

func (g *GL) ClearColor(r, gg, b, a float32) {
	g.call("ClearColor")
	g.ClearRGBA = [4]float32{r, gg, b, a}
}

func (g *GL) Clear(mask uint32) {
	g.call("Clear")
	if mask&gl.ColorBufferBit != 0 {
		g.Clears++
	}
}

func (g *GL) DrawArrays(mode uint32, first, count int32) {
	g.call("DrawArrays")
	g.Draws = append(g.Draws, Draw{
		Program: g.currentProgram,
		VAO:     g.boundVAO,
		Mode:    mode,
		First:   first,
		Count:   count,
	})
}

// ReadPixels fills the destination with the current clear color.
func (g *GL) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	g.call("ReadPixels")
	if format != gl.RGBA || xtype != gl.UnsignedByte {
		g.err = 0x0500 // GL_INVALID_ENUM
		return
	}
	px := unsafe.Slice((*byte)(pixels), int(width)*int(height)*4)
	var c [4]byte
	for i, f := range g.ClearRGBA {
		c[i] = byte(f*255 + 0.5)
	}
	for i := 0; i < len(px); i += 4 {
		copy(px[i:i+4], c[:])
	}
}

// Buffer returns the contents of a live buffer object.
func (g *GL) Buffer(id uint32) ([]byte, bool) {
	b, ok := g.buffers[id]
	return b, ok
}

// VertexAttrib returns the attribute recorded at index on a vertex array.
func (g *GL) VertexAttrib(vao, index uint32) (Attrib, bool) {
	v, ok := g.vaos[vao]
	if !ok {
		return Attrib{}, false
	}
	a, ok := v.attribs[index]
	if !ok {
		return Attrib{}, false
	}
	return *a, true
}

// BoundVertexArray returns the currently bound vertex array.
func (g *GL) BoundVertexArray() uint32 {
	return g.boundVAO
}

// LivePrograms returns the number of programs not yet deleted.
func (g *GL) LivePrograms() int {
	n := 0
	for _, p := range g.programs {
		if !p.deleted {
			n++
		}
	}
	return n
}

// LiveShaders returns the number of shader objects not yet deleted.
func (g *GL) LiveShaders() int {
	n := 0
	for _, s := range g.shaders {
		if !s.deleted {
			n++
		}
	}
	return n
}

// LiveBuffers returns the number of buffer objects not yet deleted.
func (g *GL) LiveBuffers() int {
	return len(g.buffers)
}

// LiveVertexArrays returns the number of vertex arrays not yet deleted.
func (g *GL) LiveVertexArrays() int {
	n := 0
	for _, v := range g.vaos {
		if !v.deleted {
			n++
		}
	}
	return n
}

// CallIndex returns the position of the first call to name at or after from,
// or -1.
func (g *GL) CallIndex(name string, from int) int {
	for i := from; i < len(g.Calls); i++ {
		if g.Calls[i] == name {
			return i
		}
	}
	return -1
}

func boolInt(b bool) int32 {
	if b {
		return gl.True
	}
	return gl.False
}

// logLength mirrors GL_INFO_LOG_LENGTH, which counts the terminating NUL.
func logLength(log string) int32 {
	if log == "" {
		return 0
	}
	return int32(len(log) + 1)
}

func checkSource(kind uint32, src string) string {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return "0:1(1): error: empty shader source\n"
	}
	if !strings.HasPrefix(trimmed, "#version ") {
		return "0:1(1): error: missing #version directive\n"
	}
	depth := 0
	for i, line := range strings.Split(src, "\n") {
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth < 0 {
			return fmt.Sprintf("0:%d(1): error: syntax error, unexpected '}'\n", i+1)
		}
	}
	if depth != 0 {
		return fmt.Sprintf("0:%d(1): error: syntax error, unexpected end of file\n", strings.Count(src, "\n")+1)
	}
	if !strings.Contains(src, "void main") {
		return "0:1(1): error: function `main' undeclared\n"
	}
	if kind == gl.VertexShader && !strings.Contains(src, "gl_Position") {
		return "0:1(1): error: vertex shader does not write to `gl_Position'\n"
	}
	return ""
}
