package graphics

import (
	"fmt"
	"image"
	"unsafe"

	glpkg "github.com/tinyrange/hellotriangle/internal/gowin/gl"
)

// DefaultBackground is the clear color, a dark teal.
var DefaultBackground = [4]float32{0.2, 0.3, 0.3, 1.0}

// Surface tracks the drawing region of a window's default framebuffer. It is
// handed to the resize callback explicitly rather than relying on the GL's
// implicit viewport state.
type Surface struct {
	gl glpkg.OpenGL

	// Viewport is the region the last Resize applied.
	Viewport image.Rectangle
	// Background is the RGBA color Clear fills with.
	Background [4]float32
}

// NewSurface returns a surface covering a width x height framebuffer and
// applies that viewport.
func NewSurface(gl glpkg.OpenGL, width, height int) *Surface {
	s := &Surface{gl: gl, Background: DefaultBackground}
	s.Resize(width, height)
	return s
}

// Resize resets the viewport to the full width x height framebuffer. No
// aspect correction is applied.
func (s *Surface) Resize(width, height int) {
	s.Viewport = image.Rect(0, 0, width, height)
	s.gl.Viewport(0, 0, int32(width), int32(height))
}

// Clear fills the color buffer with the background color.
func (s *Surface) Clear() {
	c := s.Background
	s.gl.ClearColor(c[0], c[1], c[2], c[3])
	s.gl.Clear(glpkg.ColorBufferBit)
}

// Screenshot reads back the current viewport as an image, top row first.
func (s *Surface) Screenshot() (image.Image, error) {
	bw, bh := s.Viewport.Dx(), s.Viewport.Dy()
	if bw <= 0 || bh <= 0 {
		return nil, fmt.Errorf("screenshot of empty viewport %v", s.Viewport)
	}
	rgba := image.NewRGBA(image.Rect(0, 0, bw, bh))
	s.gl.ReadPixels(0, 0, int32(bw), int32(bh), glpkg.RGBA, glpkg.UnsignedByte, unsafe.Pointer(&rgba.Pix[0]))
	if code := s.gl.GetError(); code != glpkg.NoError {
		return nil, fmt.Errorf("read pixels: GL error %#x", code)
	}

	return bottomUp(rgba), nil
}

// bottomUp returns img with its rows in reverse order. GL reads the
// framebuffer starting at the bottom row.
func bottomUp(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Rect)
	rows := img.Rect.Dy()
	for top, bottom := 0, rows-1; top < rows; top, bottom = top+1, bottom-1 {
		copy(out.Pix[bottom*out.Stride:][:out.Stride], img.Pix[top*img.Stride:][:img.Stride])
	}
	return out
}
