// Command hellotriangle opens an 800x600 window and draws an orange and a
// yellow triangle until the window is closed or Escape is pressed.
//
// Settings come from the YAML file named by $HELLOTRIANGLE_CONFIG, if set.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/tinyrange/hellotriangle/internal/config"
	"github.com/tinyrange/hellotriangle/internal/gowin/graphics"
	"github.com/tinyrange/hellotriangle/internal/gowin/window"
	"golang.org/x/term"
)

// exitFailure is the status for context, loader and config failures.
const exitFailure = -1

func init() {
	// GLFW and the GL context are bound to the main thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadFromEnv()
	if err == nil {
		err = configureLogging(os.Stdout, cfg)
	} else {
		setupLogging(os.Stdout, slog.LevelInfo)
	}
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return exitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runApp(ctx, cfg, window.New)
}

// runApp creates the window, builds the renderer and runs it. It returns the
// process exit status.
func runApp(ctx context.Context, cfg config.Config, newWindow func(window.Config) (window.Window, error)) int {
	win, err := newWindow(windowConfig(cfg))
	if err != nil {
		slog.Error("failed to create window", "error", err)
		return exitFailure
	}
	defer win.Close()

	r, err := graphics.New(win, graphics.Options{
		Background:     &cfg.Background,
		ScreenshotPath: cfg.Screenshot,
	})
	if err != nil {
		slog.Error("failed to load OpenGL", "error", err)
		return exitFailure
	}

	r.Run(ctx)
	return 0
}

func windowConfig(cfg config.Config) window.Config {
	return window.Config{
		Title:        cfg.Title,
		Width:        cfg.Width,
		Height:       cfg.Height,
		GLMajor:      cfg.GLMajor,
		GLMinor:      cfg.GLMinor,
		CoreProfile:  true,
		SwapInterval: cfg.SwapInterval,
	}
}

// configureLogging installs the default logger at the configured level. An
// unknown level is reported after falling back to info.
func configureLogging(w *os.File, cfg config.Config) error {
	level, err := cfg.Level()
	setupLogging(w, level)
	return err
}

func setupLogging(w *os.File, level slog.Level) {
	slog.SetDefault(slog.New(newLogHandler(w, term.IsTerminal(int(w.Fd())), level)))
}

// newLogHandler returns a text handler for terminals and a JSON handler
// otherwise.
func newLogHandler(w io.Writer, terminal bool, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if terminal {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
