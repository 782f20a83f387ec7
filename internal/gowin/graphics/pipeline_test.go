package graphics

import (
	"errors"
	"strings"
	"testing"

	glpkg "github.com/tinyrange/hellotriangle/internal/gowin/gl"
	"github.com/tinyrange/hellotriangle/internal/gowin/gl/gltest"
)

func TestBuildPipelineLinksBothPrograms(t *testing.T) {
	g := gltest.New()

	p, err := BuildPipeline(g, DefaultSources())
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	if len(p.Errors) != 0 {
		t.Fatalf("unexpected pipeline errors: %v", p.Errors)
	}
	for _, prog := range p.Programs() {
		if prog.ID() == 0 {
			t.Fatalf("program %s has zero handle", prog.Name())
		}
		if !prog.Linked() {
			t.Fatalf("program %s not linked", prog.Name())
		}
	}
	if p.Orange.ID() == p.Yellow.ID() {
		t.Fatalf("programs share handle %d", p.Orange.ID())
	}
	if n := g.LivePrograms(); n != 2 {
		t.Fatalf("live programs = %d, want 2", n)
	}
	if n := g.LiveShaders(); n != 0 {
		t.Fatalf("live shaders after build = %d, want 0", n)
	}
}

func TestBuildPipelineReleasesStagesAfterBothLinks(t *testing.T) {
	g := gltest.New()
	if _, err := BuildPipeline(g, DefaultSources()); err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}

	firstLink := g.CallIndex("LinkProgram", 0)
	secondLink := g.CallIndex("LinkProgram", firstLink+1)
	firstDelete := g.CallIndex("DeleteShader", 0)
	if firstLink < 0 || secondLink < 0 || firstDelete < 0 {
		t.Fatalf("missing calls: link=%d,%d delete=%d", firstLink, secondLink, firstDelete)
	}
	if firstDelete < secondLink {
		t.Fatalf("shader deleted at call %d before second link at %d", firstDelete, secondLink)
	}
}

func TestCompileStageInvalidSource(t *testing.T) {
	tests := []struct {
		name string
		kind StageKind
		src  string
	}{
		{name: "empty", kind: FragmentStage, src: ""},
		{name: "no version", kind: FragmentStage, src: "void main() {}"},
		{name: "unbalanced", kind: FragmentStage, src: "#version 330 core\nvoid main() {\n"},
		{name: "no position", kind: VertexStage, src: "#version 330 core\nvoid main() {}\n"},
	}
	for _, tt := range tests {
		g := gltest.New()
		st, err := CompileStage(g, tt.kind, tt.name, tt.src)
		if st == nil {
			t.Fatalf("%s: CompileStage returned nil stage", tt.name)
		}
		if st.Compiled() {
			t.Fatalf("%s: stage reported compiled", tt.name)
		}
		var cerr *CompileError
		if !errors.As(err, &cerr) {
			t.Fatalf("%s: expected *CompileError, got %T (%v)", tt.name, err, err)
		}
		if cerr.Log == "" {
			t.Fatalf("%s: empty diagnostic log", tt.name)
		}
		if cerr.Kind != tt.kind || cerr.Name != tt.name {
			t.Fatalf("%s: error names %s %q", tt.name, cerr.Kind, cerr.Name)
		}
		if !strings.Contains(err.Error(), tt.kind.String()) {
			t.Fatalf("%s: error text %q does not name the stage", tt.name, err.Error())
		}
	}
}

func TestBuildPipelineInvalidFragmentIsNotFatal(t *testing.T) {
	g := gltest.New()
	src := DefaultSources()
	src.Yellow = "#version 330 core\nout vec4 FragColor;\nvoid main() {\n"

	p, err := BuildPipeline(g, src)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if p == nil || p.Orange == nil || p.Yellow == nil {
		t.Fatalf("pipeline not returned alongside error: %+v", p)
	}
	if !p.Orange.Linked() {
		t.Fatalf("orange program should still link")
	}
	if p.Yellow.Linked() {
		t.Fatalf("yellow program should not link")
	}

	var cerr *CompileError
	if !errors.As(err, &cerr) || cerr.Name != "yellow" {
		t.Fatalf("expected compile error for yellow, got %v", err)
	}
	var lerr *LinkError
	if !errors.As(err, &lerr) || lerr.Program != "yellow" {
		t.Fatalf("expected link error for yellow, got %v", err)
	}
	if lerr.Log == "" {
		t.Fatalf("empty link log")
	}
	if len(p.Errors) != 2 {
		t.Fatalf("pipeline errors = %d, want 2: %v", len(p.Errors), p.Errors)
	}
}

func TestPipelineRelease(t *testing.T) {
	g := gltest.New()
	p, err := BuildPipeline(g, DefaultSources())
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	p.Release()
	p.Release()
	if n := g.LivePrograms(); n != 0 {
		t.Fatalf("live programs after release = %d", n)
	}
}

func TestStageKindString(t *testing.T) {
	if VertexStage.String() != "vertex" || FragmentStage.String() != "fragment" {
		t.Fatalf("unexpected names %q %q", VertexStage, FragmentStage)
	}
	if got := StageKind(glpkg.ArrayBuffer).String(); !strings.HasPrefix(got, "StageKind(") {
		t.Fatalf("unknown kind printed as %q", got)
	}
}
