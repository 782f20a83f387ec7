package graphics

import (
	"fmt"
	"unsafe"

	glpkg "github.com/tinyrange/hellotriangle/internal/gowin/gl"
)

// TriangleVertices are the two triangles drawn each frame, as xyz positions in
// normalized device coordinates. The first three vertices form the left
// triangle, the last three the right one.
var TriangleVertices = [18]float32{
	-0.5, 0.5, 0.0,   // top
	-0.75, -0.5, 0.0, // bottom left
	-0.25, -0.5, 0.0, // bottom right

	0.5, 0.5, 0.0,   // top
	0.75, -0.5, 0.0, // bottom right
	0.25, -0.5, 0.0, // bottom left
}

const float32Size = 4

// VertexLayout describes a single float vertex attribute read from a tightly
// packed buffer.
type VertexLayout struct {
	Location   uint32
	Components int32
	Normalized bool
}

// PositionLayout is attribute 0 holding three floats per vertex.
var PositionLayout = VertexLayout{Location: 0, Components: 3}

// Stride returns the distance in bytes between consecutive vertices.
func (l VertexLayout) Stride() int32 {
	return l.Components * float32Size
}

// Geometry is an uploaded vertex buffer together with the vertex array object
// describing its layout.
type Geometry struct {
	gl     glpkg.OpenGL
	vao    uint32
	vbo    uint32
	layout VertexLayout
	count  int
	floats int
}

// UploadGeometry copies vertices into a new static buffer and records layout
// on a new vertex array object. The vertex array is left unbound.
func UploadGeometry(gl glpkg.OpenGL, vertices []float32, layout VertexLayout) (*Geometry, error) {
	if layout.Components <= 0 {
		return nil, fmt.Errorf("vertex layout needs at least one component, got %d", layout.Components)
	}
	if len(vertices) == 0 || len(vertices)%int(layout.Components) != 0 {
		return nil, fmt.Errorf("vertex data has %d floats, not a multiple of %d components", len(vertices), layout.Components)
	}

	g := &Geometry{
		gl:     gl,
		layout: layout,
		count:  len(vertices) / int(layout.Components),
		floats: len(vertices),
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.GenBuffers(1, &g.vbo)

	// The VAO records the buffer binding made while it is bound, so both
	// must be bound before the attribute is declared.
	gl.BindVertexArray(g.vao)
	gl.BindBuffer(glpkg.ArrayBuffer, g.vbo)
	gl.BufferData(glpkg.ArrayBuffer, len(vertices)*float32Size, unsafe.Pointer(&vertices[0]), glpkg.StaticDraw)

	gl.VertexAttribPointer(layout.Location, layout.Components, glpkg.Float, layout.Normalized, layout.Stride(), 0)
	gl.EnableVertexAttribArray(layout.Location)

	gl.BindVertexArray(0)

	return g, nil
}

// VertexCount returns the number of vertices in the buffer.
func (g *Geometry) VertexCount() int { return g.count }

// VAO returns the vertex array object name.
func (g *Geometry) VAO() uint32 { return g.vao }

// VBO returns the buffer object name.
func (g *Geometry) VBO() uint32 { return g.vbo }

// Bind makes the geometry's vertex array current.
func (g *Geometry) Bind() {
	g.gl.BindVertexArray(g.vao)
}

// Draw issues a triangle-list draw of count vertices starting at first.
func (g *Geometry) Draw(first, count int) {
	g.gl.DrawArrays(glpkg.Triangles, int32(first), int32(count))
}

// ReadBack returns the buffer contents as read from the GL.
func (g *Geometry) ReadBack() []float32 {
	out := make([]float32, g.floats)
	g.gl.BindBuffer(glpkg.ArrayBuffer, g.vbo)
	g.gl.GetBufferSubData(glpkg.ArrayBuffer, 0, len(out)*float32Size, unsafe.Pointer(&out[0]))
	return out
}

// Release deletes the vertex array and buffer.
func (g *Geometry) Release() {
	if g.vao != 0 {
		g.gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
	if g.vbo != 0 {
		g.gl.DeleteBuffers(1, &g.vbo)
		g.vbo = 0
	}
}
