package window

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/tinyrange/hellotriangle/internal/gowin/gl"
)

type glfwWindow struct {
	cfg Config
	win *glfw.Window
}

// New initializes GLFW and creates a window with a current GL context. It must
// be called from the main thread, which must stay locked for the lifetime of
// the window.
func New(cfg Config) (Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, &ContextCreationError{Op: "init", Err: err}
	}

	for hint, value := range contextHints(cfg, runtime.GOOS) {
		glfw.WindowHint(hint, value)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &ContextCreationError{Op: "create window", Err: err}
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(cfg.SwapInterval)

	return &glfwWindow{cfg: cfg, win: win}, nil
}

// contextHints returns the window hints for cfg. Core contexts on darwin must
// also be forward-compatible.
func contextHints(cfg Config, goos string) map[glfw.Hint]int {
	hints := map[glfw.Hint]int{
		glfw.ContextVersionMajor: cfg.GLMajor,
		glfw.ContextVersionMinor: cfg.GLMinor,
		glfw.Resizable:           glfw.True,
		glfw.DoubleBuffer:        glfw.True,
	}
	if cfg.CoreProfile {
		hints[glfw.OpenGLProfile] = glfw.OpenGLCoreProfile
		if goos == "darwin" {
			hints[glfw.OpenGLForwardCompatible] = glfw.True
		}
	} else {
		hints[glfw.OpenGLProfile] = glfw.OpenGLAnyProfile
	}
	return hints
}

func (w *glfwWindow) GL() (gl.OpenGL, error) {
	g, err := gl.Load(glfw.GetProcAddress)
	if err != nil {
		return nil, err
	}
	if err := gl.RequireVersion(g, w.cfg.GLMajor, w.cfg.GLMinor); err != nil {
		return nil, err
	}
	return g, nil
}

func (w *glfwWindow) Close() {
	if w.win == nil {
		return
	}
	w.win.Destroy()
	w.win = nil
	glfw.Terminate()
}

func (w *glfwWindow) Poll() bool {
	glfw.PollEvents()
	return !w.win.ShouldClose()
}

func (w *glfwWindow) Swap() {
	w.win.SwapBuffers()
}

func (w *glfwWindow) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *glfwWindow) SetShouldClose(close bool) {
	w.win.SetShouldClose(close)
}

func (w *glfwWindow) BackingSize() (width, height int) {
	return w.win.GetFramebufferSize()
}

func (w *glfwWindow) GetKeyState(key Key) KeyState {
	k, ok := glfwKeys[key]
	if !ok {
		return KeyStateUp
	}
	return keyStateFromAction(w.win.GetKey(k))
}

func (w *glfwWindow) SetResizeHandler(fn func(width, height int)) {
	if fn == nil {
		w.win.SetFramebufferSizeCallback(nil)
		return
	}
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		fn(width, height)
	})
}

var glfwKeys = map[Key]glfw.Key{
	KeyEscape: glfw.KeyEscape,
	KeyEnter:  glfw.KeyEnter,
	KeySpace:  glfw.KeySpace,
	KeyQ:      glfw.KeyQ,
	KeyUp:     glfw.KeyUp,
	KeyDown:   glfw.KeyDown,
	KeyLeft:   glfw.KeyLeft,
	KeyRight:  glfw.KeyRight,
}

func keyStateFromAction(a glfw.Action) KeyState {
	switch a {
	case glfw.Press:
		return KeyStateDown
	case glfw.Repeat:
		return KeyStateRepeated
	default:
		return KeyStateUp
	}
}
