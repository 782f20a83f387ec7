package graphics

import (
	"errors"

	glpkg "github.com/tinyrange/hellotriangle/internal/gowin/gl"
)

const (
	vertexShaderSource = `#version 330 core
layout (location = 0) in vec3 aPos;

void main() {
	gl_Position = vec4(aPos.x, aPos.y, aPos.z, 1.0);
}`

	orangeFragmentShaderSource = `#version 330 core
out vec4 FragColor;

void main() {
	FragColor = vec4(1.0, 0.5, 0.2, 1.0);
}`

	yellowFragmentShaderSource = `#version 330 core
out vec4 FragColor;

void main() {
	FragColor = vec4(1.0, 1.0, 0.0, 1.0);
}`
)

// Sources holds the GLSL for the shared vertex stage and the two fragment
// variants.
type Sources struct {
	Vertex string
	Orange string
	Yellow string
}

// DefaultSources returns the built-in shaders: a pass-through vertex stage and
// solid orange and yellow fragment stages.
func DefaultSources() Sources {
	return Sources{
		Vertex: vertexShaderSource,
		Orange: orangeFragmentShaderSource,
		Yellow: yellowFragmentShaderSource,
	}
}

// Pipeline is the pair of programs drawn each frame. Both share one vertex
// stage.
type Pipeline struct {
	Orange *Program
	Yellow *Program

	// Errors holds every compile and link failure, in build order.
	Errors []error
}

// BuildPipeline compiles the three stages and links {vertex, orange} and
// {vertex, yellow}. Stages are released once both programs are linked.
//
// Compile and link failures do not stop the build: the pipeline is always
// returned, and the error joins every *CompileError and *LinkError seen.
func BuildPipeline(gl glpkg.OpenGL, src Sources) (*Pipeline, error) {
	p := &Pipeline{}

	vertex := p.compile(gl, VertexStage, "vertex", src.Vertex)
	orange := p.compile(gl, FragmentStage, "orange", src.Orange)
	yellow := p.compile(gl, FragmentStage, "yellow", src.Yellow)

	p.Orange = p.link(gl, "orange", vertex, orange)
	p.Yellow = p.link(gl, "yellow", vertex, yellow)

	// The vertex stage is shared, so it goes only after both links.
	orange.Release()
	yellow.Release()
	vertex.Release()

	return p, errors.Join(p.Errors...)
}

func (p *Pipeline) compile(gl glpkg.OpenGL, kind StageKind, name, src string) *Stage {
	st, err := CompileStage(gl, kind, name, src)
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
	return st
}

func (p *Pipeline) link(gl glpkg.OpenGL, name string, stages ...*Stage) *Program {
	prog, err := LinkProgram(gl, name, stages...)
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
	return prog
}

// Programs returns the programs in draw order.
func (p *Pipeline) Programs() []*Program {
	return []*Program{p.Orange, p.Yellow}
}

// Release deletes both programs.
func (p *Pipeline) Release() {
	for _, prog := range p.Programs() {
		if prog != nil {
			prog.Release()
		}
	}
}
