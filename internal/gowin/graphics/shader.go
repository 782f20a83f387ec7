package graphics

import (
	"fmt"
	"strings"

	glpkg "github.com/tinyrange/hellotriangle/internal/gowin/gl"
)

// StageKind is the pipeline stage a shader compiles for.
type StageKind uint32

const (
	VertexStage   = StageKind(glpkg.VertexShader)
	FragmentStage = StageKind(glpkg.FragmentShader)
)

func (k StageKind) String() string {
	switch k {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return fmt.Sprintf("StageKind(%#x)", uint32(k))
	}
}

// CompileError reports a shader stage that failed to compile. Log is the
// driver's diagnostic output.
type CompileError struct {
	Kind StageKind
	Name string
	Log  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader %q compilation failed: %s", e.Kind, e.Name, strings.TrimSpace(e.Log))
}

// LinkError reports a program that failed to link.
type LinkError struct {
	Program string
	Log     string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("program %q linking failed: %s", e.Program, strings.TrimSpace(e.Log))
}

// Stage is one compiled shader unit.
type Stage struct {
	gl     glpkg.OpenGL
	id     uint32
	kind   StageKind
	name   string
	failed bool
}

// CompileStage creates and compiles a shader stage. The returned stage is
// non-nil even when compilation fails, so callers can continue with a program
// that may not be usable; the error is then a *CompileError.
func CompileStage(gl glpkg.OpenGL, kind StageKind, name, src string) (*Stage, error) {
	id := gl.CreateShader(uint32(kind))
	st := &Stage{gl: gl, id: id, kind: kind, name: name}
	if id == 0 {
		st.failed = true
		return st, &CompileError{Kind: kind, Name: name, Log: "shader object could not be created"}
	}

	gl.ShaderSource(id, src)
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, glpkg.CompileStatus, &status)
	if status == glpkg.False {
		st.failed = true
		log := gl.GetShaderInfoLog(id)
		if log == "" {
			log = "no diagnostic output"
		}
		return st, &CompileError{Kind: kind, Name: name, Log: log}
	}
	return st, nil
}

// ID returns the GL shader object name.
func (s *Stage) ID() uint32 { return s.id }

func (s *Stage) Kind() StageKind { return s.kind }

func (s *Stage) Name() string { return s.name }

// Compiled reports whether the stage compiled without errors.
func (s *Stage) Compiled() bool { return !s.failed }

// Release flags the shader object for deletion. Programs it is attached to
// keep working.
func (s *Stage) Release() {
	if s.id == 0 {
		return
	}
	s.gl.DeleteShader(s.id)
	s.id = 0
}

// Program is a linked set of stages.
type Program struct {
	gl     glpkg.OpenGL
	id     uint32
	name   string
	linked bool
}

// LinkProgram attaches stages to a new program and links it. Like
// CompileStage it always returns a program; a failed link yields a *LinkError.
func LinkProgram(gl glpkg.OpenGL, name string, stages ...*Stage) (*Program, error) {
	id := gl.CreateProgram()
	p := &Program{gl: gl, id: id, name: name}
	for _, st := range stages {
		if st.id != 0 {
			gl.AttachShader(id, st.id)
		}
	}
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, glpkg.LinkStatus, &status)
	if status == glpkg.False {
		log := gl.GetProgramInfoLog(id)
		if log == "" {
			log = "no diagnostic output"
		}
		return p, &LinkError{Program: name, Log: log}
	}
	p.linked = true
	return p, nil
}

// ID returns the GL program object name.
func (p *Program) ID() uint32 { return p.id }

func (p *Program) Name() string { return p.name }

// Linked reports whether the program linked without errors.
func (p *Program) Linked() bool { return p.linked }

// Use makes p the current program.
func (p *Program) Use() {
	p.gl.UseProgram(p.id)
}

// Release deletes the program object.
func (p *Program) Release() {
	if p.id == 0 {
		return
	}
	p.gl.DeleteProgram(p.id)
	p.id = 0
}
