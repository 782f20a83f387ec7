// Package gl exposes the subset of OpenGL 3.3 core used by the renderer as a
// Go interface, plus a loader that binds it to a live context.
package gl

import "unsafe"

// Enum values from the OpenGL 3.3 core registry.
const (
	False = 0
	True  = 1

	// Shader kinds.
	VertexShader   uint32 = 0x8B31
	FragmentShader uint32 = 0x8B30

	// Shader and program queries.
	CompileStatus uint32 = 0x8B81
	LinkStatus    uint32 = 0x8B82
	InfoLogLength uint32 = 0x8B84

	// Buffers.
	ArrayBuffer uint32 = 0x8892
	StaticDraw  uint32 = 0x88E4

	// Data types.
	Float        uint32 = 0x1406
	UnsignedByte uint32 = 0x1401
	RGBA         uint32 = 0x1908

	ColorBufferBit uint32 = 0x00004000
	Triangles      uint32 = 0x0004

	// Strings.
	Vendor   uint32 = 0x1F00
	Renderer uint32 = 0x1F01
	Version  uint32 = 0x1F02

	NoError uint32 = 0
)

// ProcAddressFunc resolves a GL entry point in the current context. It returns
// nil for entry points the driver does not provide.
type ProcAddressFunc func(name string) unsafe.Pointer

// OpenGL is the set of GL entry points the renderer calls. Methods mirror the
// C API, with Go strings in place of char pointers.
type OpenGL interface {
	GetString(name uint32) string
	GetError() uint32

	CreateShader(kind uint32) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname uint32, params *int32)
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname uint32, params *int32)
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	GenBuffers(n int32, buffers *uint32)
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)
	GetBufferSubData(target uint32, offset, size int, data unsafe.Pointer)
	DeleteBuffers(n int32, buffers *uint32)

	GenVertexArrays(n int32, arrays *uint32)
	BindVertexArray(array uint32)
	DeleteVertexArrays(n int32, arrays *uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	EnableVertexAttribArray(index uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	DrawArrays(mode uint32, first, count int32)
	ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer)
}
