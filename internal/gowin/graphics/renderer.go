package graphics

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"time"

	glpkg "github.com/tinyrange/hellotriangle/internal/gowin/gl"
	"github.com/tinyrange/hellotriangle/internal/gowin/window"
)

// LoopState is the render loop's state.
type LoopState int

const (
	Running LoopState = iota
	Terminating
)

func (s LoopState) String() string {
	switch s {
	case Running:
		return "running"
	case Terminating:
		return "terminating"
	default:
		return fmt.Sprintf("LoopState(%d)", int(s))
	}
}

// Options configures a Renderer. The zero value uses the built-in shaders,
// the default background and Escape as the exit key.
type Options struct {
	Sources    *Sources
	Background *[4]float32
	ExitKey    window.Key

	// ScreenshotPath, when set, receives a PNG of the scene when the loop
	// exits.
	ScreenshotPath string
}

// Frame is passed to the per-frame step after both triangles are drawn and
// before the frame is presented.
type Frame struct {
	Index   int
	State   LoopState
	Surface *Surface
}

// Renderer draws the two triangles into a window until it is closed.
type Renderer struct {
	platform window.Window
	gl       glpkg.OpenGL

	surface  *Surface
	pipeline *Pipeline
	geometry *Geometry

	exitKey        window.Key
	screenshotPath string

	state  LoopState
	frames int
}

// New loads the window's GL context, builds the shader pipeline and uploads
// the triangle geometry.
//
// Only context and loader failures are returned as errors. Shader compile and
// link failures are logged and the renderer carries on with whatever programs
// resulted; they remain available from ShaderErrors.
func New(win window.Window, opts Options) (*Renderer, error) {
	gl, err := win.GL()
	if err != nil {
		return nil, err
	}
	slog.Info("OpenGL context ready",
		"vendor", gl.GetString(glpkg.Vendor),
		"renderer", gl.GetString(glpkg.Renderer),
		"version", gl.GetString(glpkg.Version))

	r := &Renderer{
		platform:       win,
		gl:             gl,
		exitKey:        opts.ExitKey,
		screenshotPath: opts.ScreenshotPath,
	}
	if r.exitKey == window.KeyUnknown {
		r.exitKey = window.KeyEscape
	}

	bw, bh := win.BackingSize()
	r.surface = NewSurface(gl, bw, bh)
	if opts.Background != nil {
		r.surface.Background = *opts.Background
	}
	win.SetResizeHandler(r.surface.Resize)

	src := DefaultSources()
	if opts.Sources != nil {
		src = *opts.Sources
	}
	r.pipeline, err = BuildPipeline(gl, src)
	if err != nil {
		logShaderErrors(r.pipeline.Errors)
	}

	r.geometry, err = UploadGeometry(gl, TriangleVertices[:], PositionLayout)
	if err != nil {
		r.pipeline.Release()
		return nil, fmt.Errorf("upload geometry: %w", err)
	}

	return r, nil
}

func logShaderErrors(errs []error) {
	for _, err := range errs {
		var cerr *CompileError
		var lerr *LinkError
		switch {
		case errors.As(err, &cerr):
			slog.Error("shader compilation failed", "stage", cerr.Kind.String(), "shader", cerr.Name, "log", cerr.Log)
		case errors.As(err, &lerr):
			slog.Error("program linking failed", "program", lerr.Program, "log", lerr.Log)
		default:
			slog.Error("shader pipeline error", "error", err)
		}
	}
}

// Surface returns the viewport tracked for the window.
func (r *Renderer) Surface() *Surface { return r.surface }

// Pipeline returns the shader programs.
func (r *Renderer) Pipeline() *Pipeline { return r.pipeline }

// Geometry returns the uploaded vertex buffer.
func (r *Renderer) Geometry() *Geometry { return r.geometry }

// ShaderErrors returns the compile and link failures from New.
func (r *Renderer) ShaderErrors() []error { return r.pipeline.Errors }

// State returns the loop state.
func (r *Renderer) State() LoopState { return r.state }

// Frames returns the number of frames presented.
func (r *Renderer) Frames() int { return r.frames }

// Run draws frames until the window is closed, the exit key is pressed or ctx
// is cancelled. Without a step there is nothing that can fail mid-loop.
func (r *Renderer) Run(ctx context.Context) {
	_ = r.Loop(ctx, nil)
}

// Loop draws frames like Run, calling step (if non-nil) once per frame before
// it is presented. An error from step stops the loop and is returned. GPU
// resources are released when Loop returns; the window is left open.
func (r *Renderer) Loop(ctx context.Context, step func(f Frame) error) error {
	start := time.Now()
	defer r.Release()

	var stepErr error
	for !r.platform.ShouldClose() {
		if ctx.Err() != nil {
			r.terminate()
			break
		}

		r.processInput()
		r.Draw()

		if step != nil {
			if stepErr = step(Frame{Index: r.frames, State: r.state, Surface: r.surface}); stepErr != nil {
				r.terminate()
				break
			}
		}

		r.platform.Swap()
		r.frames++
		r.platform.Poll()
	}
	r.state = Terminating

	slog.Debug("render loop finished", "frames", r.frames, "elapsed", time.Since(start))

	if r.screenshotPath != "" && stepErr == nil {
		if err := r.saveScreenshot(r.screenshotPath); err != nil {
			slog.Error("failed to save screenshot", "path", r.screenshotPath, "error", err)
		} else {
			slog.Info("saved screenshot", "path", r.screenshotPath)
		}
	}

	return stepErr
}

// processInput requests termination when the exit key is down. The frame in
// progress still completes; the flag is seen at the next loop head.
func (r *Renderer) processInput() {
	if r.platform.GetKeyState(r.exitKey).IsDown() {
		r.terminate()
	}
}

func (r *Renderer) terminate() {
	r.state = Terminating
	r.platform.SetShouldClose(true)
}

// Draw clears the surface and draws each program's triangle out of the shared
// vertex buffer: the first program draws vertices [0,3), the second [3,6).
func (r *Renderer) Draw() {
	r.surface.Clear()
	r.geometry.Bind()
	for i, prog := range r.pipeline.Programs() {
		prog.Use()
		r.geometry.Draw(i*3, 3)
	}
}

// saveScreenshot redraws the scene into the back buffer and writes it as PNG.
func (r *Renderer) saveScreenshot(path string) error {
	r.Draw()
	img, err := r.surface.Screenshot()
	if err != nil {
		return err
	}
	return writePNG(path, img)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Release deletes the programs, vertex array and buffer. It is safe to call
// more than once.
func (r *Renderer) Release() {
	if r.pipeline != nil {
		r.pipeline.Release()
	}
	if r.geometry != nil {
		r.geometry.Release()
	}
}
