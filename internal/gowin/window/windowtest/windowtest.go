// Package windowtest provides a scripted window.Window for driving render
// loops in tests.
package windowtest

import (
	"image"

	"github.com/tinyrange/hellotriangle/internal/gowin/gl"
	"github.com/tinyrange/hellotriangle/internal/gowin/window"
)

// Window replays scripted input one frame at a time. A frame ends with a call
// to Poll; Frame counts the Poll calls made so far.
type Window struct {
	GLContext gl.OpenGL
	// GLErr, when set, is returned by GL instead of GLContext.
	GLErr error

	Width  int
	Height int

	// KeysDown lists the keys reported down while a given frame runs.
	KeysDown map[int][]window.Key
	// Resizes lists the framebuffer sizes delivered by the Poll ending a frame.
	Resizes map[int][]image.Point
	// CloseAt is the frame whose Poll sets the close flag, as if the user
	// closed the window. Negative means never.
	CloseAt int

	Frame  int
	Swaps  int
	Closed bool

	shouldClose bool
	onResize    func(width, height int)
}

var _ window.Window = (*Window)(nil)

// New returns a window of the given size backed by g that never closes on its
// own.
func New(g gl.OpenGL, width, height int) *Window {
	return &Window{
		GLContext: g,
		Width:     width,
		Height:    height,
		KeysDown:  make(map[int][]window.Key),
		Resizes:   make(map[int][]image.Point),
		CloseAt:   -1,
	}
}

func (w *Window) GL() (gl.OpenGL, error) {
	if w.GLErr != nil {
		return nil, w.GLErr
	}
	return w.GLContext, nil
}

func (w *Window) Close() {
	w.Closed = true
}

func (w *Window) Poll() bool {
	for _, sz := range w.Resizes[w.Frame] {
		w.Width, w.Height = sz.X, sz.Y
		if w.onResize != nil {
			w.onResize(sz.X, sz.Y)
		}
	}
	if w.Frame == w.CloseAt {
		w.shouldClose = true
	}
	w.Frame++
	return !w.shouldClose
}

func (w *Window) Swap() {
	w.Swaps++
}

func (w *Window) ShouldClose() bool {
	return w.shouldClose
}

func (w *Window) SetShouldClose(close bool) {
	w.shouldClose = close
}

func (w *Window) BackingSize() (width, height int) {
	return w.Width, w.Height
}

func (w *Window) GetKeyState(key window.Key) window.KeyState {
	for _, k := range w.KeysDown[w.Frame] {
		if k == key {
			return window.KeyStateDown
		}
	}
	return window.KeyStateUp
}

func (w *Window) SetResizeHandler(fn func(width, height int)) {
	w.onResize = fn
}
