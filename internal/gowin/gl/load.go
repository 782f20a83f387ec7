//go:build !windows

package gl

import (
	"runtime"
	"strings"
	"unsafe"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/unix"
)

type procContext struct {
	glGetString func(name uint32) *byte
	glGetError  func() uint32

	glCreateShader      func(kind uint32) uint32
	glShaderSource      func(shader uint32, count int32, str **byte, length *int32)
	glCompileShader     func(shader uint32)
	glGetShaderiv       func(shader uint32, pname uint32, params *int32)
	glGetShaderInfoLog  func(shader uint32, bufSize int32, length *int32, infoLog *byte)
	glDeleteShader      func(shader uint32)
	glCreateProgram     func() uint32
	glAttachShader      func(program, shader uint32)
	glLinkProgram       func(program uint32)
	glGetProgramiv      func(program uint32, pname uint32, params *int32)
	glGetProgramInfoLog func(program uint32, bufSize int32, length *int32, infoLog *byte)
	glUseProgram        func(program uint32)
	glDeleteProgram     func(program uint32)

	glGenBuffers       func(n int32, buffers *uint32)
	glBindBuffer       func(target, buffer uint32)
	glBufferData       func(target uint32, size int, data unsafe.Pointer, usage uint32)
	glGetBufferSubData func(target uint32, offset, size int, data unsafe.Pointer)
	glDeleteBuffers    func(n int32, buffers *uint32)

	glGenVertexArrays         func(n int32, arrays *uint32)
	glBindVertexArray         func(array uint32)
	glDeleteVertexArrays      func(n int32, arrays *uint32)
	glVertexAttribPointer     func(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	glEnableVertexAttribArray func(index uint32)

	glViewport   func(x, y, width, height int32)
	glClearColor func(r, g, b, a float32)
	glClear      func(mask uint32)
	glDrawArrays func(mode uint32, first, count int32)
	glReadPixels func(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer)
}

// Load binds every entry point of OpenGL through getProcAddress. The GL context
// must be current on the calling thread. All missing entry points are reported
// together in a *LoaderError.
func Load(getProcAddress ProcAddressFunc) (OpenGL, error) {
	c := &procContext{}
	procs := []struct {
		name string
		fn   any
	}{
		{"glGetString", &c.glGetString},
		{"glGetError", &c.glGetError},
		{"glCreateShader", &c.glCreateShader},
		{"glShaderSource", &c.glShaderSource},
		{"glCompileShader", &c.glCompileShader},
		{"glGetShaderiv", &c.glGetShaderiv},
		{"glGetShaderInfoLog", &c.glGetShaderInfoLog},
		{"glDeleteShader", &c.glDeleteShader},
		{"glCreateProgram", &c.glCreateProgram},
		{"glAttachShader", &c.glAttachShader},
		{"glLinkProgram", &c.glLinkProgram},
		{"glGetProgramiv", &c.glGetProgramiv},
		{"glGetProgramInfoLog", &c.glGetProgramInfoLog},
		{"glUseProgram", &c.glUseProgram},
		{"glDeleteProgram", &c.glDeleteProgram},
		{"glGenBuffers", &c.glGenBuffers},
		{"glBindBuffer", &c.glBindBuffer},
		{"glBufferData", &c.glBufferData},
		{"glGetBufferSubData", &c.glGetBufferSubData},
		{"glDeleteBuffers", &c.glDeleteBuffers},
		{"glGenVertexArrays", &c.glGenVertexArrays},
		{"glBindVertexArray", &c.glBindVertexArray},
		{"glDeleteVertexArrays", &c.glDeleteVertexArrays},
		{"glVertexAttribPointer", &c.glVertexAttribPointer},
		{"glEnableVertexAttribArray", &c.glEnableVertexAttribArray},
		{"glViewport", &c.glViewport},
		{"glClearColor", &c.glClearColor},
		{"glClear", &c.glClear},
		{"glDrawArrays", &c.glDrawArrays},
		{"glReadPixels", &c.glReadPixels},
	}

	var missing []string
	for _, p := range procs {
		addr := getProcAddress(p.name)
		if addr == nil {
			missing = append(missing, p.name)
			continue
		}
		purego.RegisterFunc(p.fn, uintptr(addr))
	}
	if len(missing) > 0 {
		return nil, &LoaderError{Missing: missing}
	}
	return c, nil
}

func (c *procContext) GetString(name uint32) string {
	return unix.BytePtrToString(c.glGetString(name))
}

func (c *procContext) GetError() uint32 {
	return c.glGetError()
}

func (c *procContext) CreateShader(kind uint32) uint32 {
	return c.glCreateShader(kind)
}

func (c *procContext) ShaderSource(shader uint32, src string) {
	csrc := cString(src)
	c.glShaderSource(shader, 1, &csrc, nil)
	runtime.KeepAlive(csrc)
}

// cString returns a NUL-terminated copy of s, ending at the first NUL in s if
// there is one.
func cString(s string) *byte {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}

func (c *procContext) CompileShader(shader uint32) {
	c.glCompileShader(shader)
}

func (c *procContext) GetShaderiv(shader uint32, pname uint32, params *int32) {
	c.glGetShaderiv(shader, pname, params)
}

func (c *procContext) GetShaderInfoLog(shader uint32) string {
	var n int32
	c.glGetShaderiv(shader, InfoLogLength, &n)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	var written int32
	c.glGetShaderInfoLog(shader, n, &written, &buf[0])
	return infoLog(buf, written)
}

func (c *procContext) DeleteShader(shader uint32) {
	c.glDeleteShader(shader)
}

func (c *procContext) CreateProgram() uint32 {
	return c.glCreateProgram()
}

func (c *procContext) AttachShader(program, shader uint32) {
	c.glAttachShader(program, shader)
}

func (c *procContext) LinkProgram(program uint32) {
	c.glLinkProgram(program)
}

func (c *procContext) GetProgramiv(program uint32, pname uint32, params *int32) {
	c.glGetProgramiv(program, pname, params)
}

func (c *procContext) GetProgramInfoLog(program uint32) string {
	var n int32
	c.glGetProgramiv(program, InfoLogLength, &n)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	var written int32
	c.glGetProgramInfoLog(program, n, &written, &buf[0])
	return infoLog(buf, written)
}

func (c *procContext) UseProgram(program uint32) {
	c.glUseProgram(program)
}

func (c *procContext) DeleteProgram(program uint32) {
	c.glDeleteProgram(program)
}

func (c *procContext) GenBuffers(n int32, buffers *uint32) {
	c.glGenBuffers(n, buffers)
}

func (c *procContext) BindBuffer(target, buffer uint32) {
	c.glBindBuffer(target, buffer)
}

func (c *procContext) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	c.glBufferData(target, size, data, usage)
}

func (c *procContext) GetBufferSubData(target uint32, offset, size int, data unsafe.Pointer) {
	c.glGetBufferSubData(target, offset, size, data)
}

func (c *procContext) DeleteBuffers(n int32, buffers *uint32) {
	c.glDeleteBuffers(n, buffers)
}

func (c *procContext) GenVertexArrays(n int32, arrays *uint32) {
	c.glGenVertexArrays(n, arrays)
}

func (c *procContext) BindVertexArray(array uint32) {
	c.glBindVertexArray(array)
}

func (c *procContext) DeleteVertexArrays(n int32, arrays *uint32) {
	c.glDeleteVertexArrays(n, arrays)
}

func (c *procContext) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	c.glVertexAttribPointer(index, size, xtype, normalized, stride, offset)
}

func (c *procContext) EnableVertexAttribArray(index uint32) {
	c.glEnableVertexAttribArray(index)
}

func (c *procContext) Viewport(x, y, width, height int32) {
	c.glViewport(x, y, width, height)
}

func (c *procContext) ClearColor(r, g, b, a float32) {
	c.glClearColor(r, g, b, a)
}

func (c *procContext) Clear(mask uint32) {
	c.glClear(mask)
}

func (c *procContext) DrawArrays(mode uint32, first, count int32) {
	c.glDrawArrays(mode, first, count)
}

func (c *procContext) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	c.glReadPixels(x, y, width, height, format, xtype, pixels)
}

// infoLog converts a driver-filled log buffer, dropping the trailing NUL some
// drivers include in the reported length.
func infoLog(buf []byte, written int32) string {
	if written < 0 || int(written) > len(buf) {
		written = int32(len(buf))
	}
	return strings.TrimRight(string(buf[:written]), "\x00")
}
