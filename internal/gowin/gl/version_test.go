package gl_test

import (
	"errors"
	"testing"

	"github.com/tinyrange/hellotriangle/internal/gowin/gl"
	"github.com/tinyrange/hellotriangle/internal/gowin/gl/gltest"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in           string
		major, minor int
		wantErr      bool
	}{
		{in: "3.3.0 NVIDIA 535.54.03", major: 3, minor: 3},
		{in: "4.6 (Core Profile) Mesa 23.1.4", major: 4, minor: 6},
		{in: "OpenGL ES 3.2 Mesa 23.1", major: 3, minor: 2},
		{in: "2.1", major: 2, minor: 1},
		{in: "", wantErr: true},
		{in: "garbage", wantErr: true},
	}
	for _, tt := range tests {
		major, minor, err := gl.ParseVersion(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseVersion(%q): expected error, got %d.%d", tt.in, major, minor)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseVersion(%q): %v", tt.in, err)
		}
		if major != tt.major || minor != tt.minor {
			t.Fatalf("ParseVersion(%q) = %d.%d, want %d.%d", tt.in, major, minor, tt.major, tt.minor)
		}
	}
}

func TestRequireVersion(t *testing.T) {
	g := gltest.New()
	if err := gl.RequireVersion(g, 3, 3); err != nil {
		t.Fatalf("RequireVersion(3.3) on 3.3 context: %v", err)
	}

	g.VersionString = "3.1 Mesa"
	err := gl.RequireVersion(g, 3, 3)
	var lerr *gl.LoaderError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected *LoaderError, got %T (%v)", err, err)
	}

	g.VersionString = "4.1 Metal"
	if err := gl.RequireVersion(g, 3, 3); err != nil {
		t.Fatalf("RequireVersion(3.3) on 4.1 context: %v", err)
	}
}
