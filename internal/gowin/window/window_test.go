package window

import (
	"errors"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestContextHints(t *testing.T) {
	cfg := Config{GLMajor: 3, GLMinor: 3, CoreProfile: true}

	tests := []struct {
		goos           string
		wantForwardCmp bool
	}{
		{goos: "linux"},
		{goos: "windows"},
		{goos: "darwin", wantForwardCmp: true},
	}
	for _, tt := range tests {
		hints := contextHints(cfg, tt.goos)
		if hints[glfw.ContextVersionMajor] != 3 || hints[glfw.ContextVersionMinor] != 3 {
			t.Fatalf("%s: version hints = %d.%d, want 3.3", tt.goos, hints[glfw.ContextVersionMajor], hints[glfw.ContextVersionMinor])
		}
		if hints[glfw.OpenGLProfile] != glfw.OpenGLCoreProfile {
			t.Fatalf("%s: profile hint = %#x, want core", tt.goos, hints[glfw.OpenGLProfile])
		}
		_, fwd := hints[glfw.OpenGLForwardCompatible]
		if fwd != tt.wantForwardCmp {
			t.Fatalf("%s: forward-compatible hint present = %v, want %v", tt.goos, fwd, tt.wantForwardCmp)
		}
	}

	compat := contextHints(Config{GLMajor: 2, GLMinor: 1}, "darwin")
	if compat[glfw.OpenGLProfile] != glfw.OpenGLAnyProfile {
		t.Fatalf("compatibility profile hint = %#x, want any", compat[glfw.OpenGLProfile])
	}
}

func TestKeyStateFromAction(t *testing.T) {
	tests := []struct {
		action glfw.Action
		want   KeyState
	}{
		{glfw.Press, KeyStateDown},
		{glfw.Repeat, KeyStateRepeated},
		{glfw.Release, KeyStateUp},
	}
	for _, tt := range tests {
		got := keyStateFromAction(tt.action)
		if got != tt.want {
			t.Fatalf("keyStateFromAction(%v) = %v, want %v", tt.action, got, tt.want)
		}
		if got.IsDown() != (tt.action != glfw.Release) {
			t.Fatalf("IsDown for %v = %v", tt.action, got.IsDown())
		}
	}
}

func TestEveryKeyMapped(t *testing.T) {
	for k := KeyEscape; k <= KeyRight; k++ {
		if _, ok := glfwKeys[k]; !ok {
			t.Fatalf("%s has no GLFW key", k)
		}
	}
}

func TestContextCreationErrorUnwrap(t *testing.T) {
	cause := errors.New("no display")
	err := error(&ContextCreationError{Op: "create window", Err: cause})
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is did not find cause through %v", err)
	}
	if got, want := err.Error(), "window: create window: no display"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
