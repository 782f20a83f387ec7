package window

import (
	"fmt"

	"github.com/tinyrange/hellotriangle/internal/gowin/gl"
)

// Window is a platform window owning one GL context.
type Window interface {
	// GL loads the GL function table for this window's context.
	GL() (gl.OpenGL, error)
	Close()
	// Poll processes pending window events and reports whether the window is
	// still open.
	Poll() bool
	Swap()
	ShouldClose() bool
	SetShouldClose(close bool)
	BackingSize() (width, height int)
	GetKeyState(key Key) KeyState
	// SetResizeHandler installs fn as the framebuffer size callback. Events
	// are delivered from Poll on the calling thread.
	SetResizeHandler(fn func(width, height int))
}

// Config describes the window and context to create.
type Config struct {
	Title  string
	Width  int
	Height int

	GLMajor int
	GLMinor int
	// CoreProfile requests a core (rather than compatibility) context.
	CoreProfile bool
	// SwapInterval is passed to the buffer swap; 1 waits for vsync.
	SwapInterval int
}

// ContextCreationError reports that the window or its GL context could not be
// created.
type ContextCreationError struct {
	Op  string
	Err error
}

func (e *ContextCreationError) Error() string {
	return fmt.Sprintf("window: %s: %v", e.Op, e.Err)
}

func (e *ContextCreationError) Unwrap() error {
	return e.Err
}
