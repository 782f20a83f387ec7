package graphics

import (
	"image"
	"testing"

	glpkg "github.com/tinyrange/hellotriangle/internal/gowin/gl"
	"github.com/tinyrange/hellotriangle/internal/gowin/gl/gltest"
)

func TestUploadGeometryRoundTrip(t *testing.T) {
	g := gltest.New()

	geom, err := UploadGeometry(g, TriangleVertices[:], PositionLayout)
	if err != nil {
		t.Fatalf("UploadGeometry: %v", err)
	}
	if geom.VertexCount() != 6 {
		t.Fatalf("vertex count = %d, want 6", geom.VertexCount())
	}

	got := geom.ReadBack()
	if len(got) != len(TriangleVertices) {
		t.Fatalf("read back %d floats, want %d", len(got), len(TriangleVertices))
	}
	for i := range got {
		if got[i] != TriangleVertices[i] {
			t.Fatalf("float %d = %v, want %v", i, got[i], TriangleVertices[i])
		}
	}
	if code := g.GetError(); code != glpkg.NoError {
		t.Fatalf("GL error %#x", code)
	}
}

func TestUploadGeometryLayout(t *testing.T) {
	g := gltest.New()

	geom, err := UploadGeometry(g, TriangleVertices[:], PositionLayout)
	if err != nil {
		t.Fatalf("UploadGeometry: %v", err)
	}

	a, ok := g.VertexAttrib(geom.VAO(), 0)
	if !ok {
		t.Fatalf("attribute 0 not recorded on VAO %d", geom.VAO())
	}
	want := gltest.Attrib{
		Buffer:  geom.VBO(),
		Size:    3,
		Type:    glpkg.Float,
		Stride:  12,
		Offset:  0,
		Enabled: true,
	}
	if a != want {
		t.Fatalf("attribute = %+v, want %+v", a, want)
	}
	if vao := g.BoundVertexArray(); vao != 0 {
		t.Fatalf("VAO %d left bound", vao)
	}

	bind := g.CallIndex("BindBuffer", 0)
	data := g.CallIndex("BufferData", 0)
	attrib := g.CallIndex("VertexAttribPointer", 0)
	if bind < 0 || data < bind || attrib < data {
		t.Fatalf("upload out of order: bind=%d data=%d attrib=%d", bind, data, attrib)
	}
}

func TestUploadGeometryRejectsRaggedData(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		layout   VertexLayout
	}{
		{name: "ragged", vertices: []float32{0, 1, 2, 3}, layout: PositionLayout},
		{name: "empty", vertices: nil, layout: PositionLayout},
		{name: "no components", vertices: []float32{0, 1, 2}, layout: VertexLayout{}},
	}
	for _, tt := range tests {
		g := gltest.New()
		if _, err := UploadGeometry(g, tt.vertices, tt.layout); err == nil {
			t.Fatalf("%s: expected error", tt.name)
		}
		if n := g.LiveBuffers(); n != 0 {
			t.Fatalf("%s: %d buffers allocated for rejected data", tt.name, n)
		}
	}
}

func TestGeometryRelease(t *testing.T) {
	g := gltest.New()
	geom, err := UploadGeometry(g, TriangleVertices[:], PositionLayout)
	if err != nil {
		t.Fatalf("UploadGeometry: %v", err)
	}
	geom.Release()
	geom.Release()
	if g.LiveBuffers() != 0 || g.LiveVertexArrays() != 0 {
		t.Fatalf("live buffers=%d vaos=%d after release", g.LiveBuffers(), g.LiveVertexArrays())
	}
}

func TestSurfaceResize(t *testing.T) {
	g := gltest.New()
	s := NewSurface(g, 800, 600)
	if s.Viewport != image.Rect(0, 0, 800, 600) {
		t.Fatalf("initial viewport = %v", s.Viewport)
	}

	sizes := []image.Point{{1024, 768}, {1, 1}, {1920, 1080}, {300, 900}}
	for _, sz := range sizes {
		s.Resize(sz.X, sz.Y)
		if want := image.Rect(0, 0, sz.X, sz.Y); s.Viewport != want {
			t.Fatalf("Resize(%d, %d): viewport = %v, want %v", sz.X, sz.Y, s.Viewport, want)
		}
		if want := [4]int32{0, 0, int32(sz.X), int32(sz.Y)}; g.ViewportRect != want {
			t.Fatalf("Resize(%d, %d): GL viewport = %v, want %v", sz.X, sz.Y, g.ViewportRect, want)
		}
	}
}

func TestSurfaceScreenshot(t *testing.T) {
	g := gltest.New()
	s := NewSurface(g, 4, 2)
	s.Background = [4]float32{1, 0, 0, 1}
	s.Clear()

	img, err := s.Screenshot()
	if err != nil {
		t.Fatalf("Screenshot: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 2) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	r, gg, b, a := img.At(3, 1).RGBA()
	if r != 0xffff || gg != 0 || b != 0 || a != 0xffff {
		t.Fatalf("pixel = %x %x %x %x, want opaque red", r, gg, b, a)
	}

	s.Resize(0, 0)
	if _, err := s.Screenshot(); err == nil {
		t.Fatalf("expected error for empty viewport")
	}
}

func TestBottomUpReversesRows(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			img.Pix[img.PixOffset(x, y)] = uint8(10*y + x)
		}
	}

	out := bottomUp(img)
	if out.Bounds() != img.Bounds() {
		t.Fatalf("bounds = %v, want %v", out.Bounds(), img.Bounds())
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			if got, want := out.Pix[out.PixOffset(x, y)], uint8(10*(2-y)+x); got != want {
				t.Fatalf("(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}
