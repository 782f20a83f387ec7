package gl

import (
	"fmt"
	"strings"
)

// LoaderError reports that the GL function table could not be bound to the
// current context.
type LoaderError struct {
	// Missing lists entry points the context did not provide.
	Missing []string
	Err     error
}

func (e *LoaderError) Error() string {
	switch {
	case len(e.Missing) > 0:
		return fmt.Sprintf("gl: failed to load %d entry points: %s", len(e.Missing), strings.Join(e.Missing, ", "))
	case e.Err != nil:
		return "gl: " + e.Err.Error()
	default:
		return "gl: failed to load"
	}
}

func (e *LoaderError) Unwrap() error {
	return e.Err
}

// ParseVersion extracts the major and minor numbers from a GL_VERSION string
// such as "3.3.0 NVIDIA 535.54" or "OpenGL ES 3.2 Mesa 23.1".
func ParseVersion(s string) (major, minor int, err error) {
	s = strings.TrimPrefix(s, "OpenGL ES ")
	if _, err := fmt.Sscanf(s, "%d.%d", &major, &minor); err != nil {
		return 0, 0, fmt.Errorf("parse GL version %q: %w", s, err)
	}
	return major, minor, nil
}

// RequireVersion checks the context's GL_VERSION against the requested one.
func RequireVersion(g OpenGL, major, minor int) error {
	versionStr := g.GetString(Version)
	gotMajor, gotMinor, err := ParseVersion(versionStr)
	if err != nil {
		return &LoaderError{Err: err}
	}
	if gotMajor < major || (gotMajor == major && gotMinor < minor) {
		return &LoaderError{Err: fmt.Errorf("OpenGL %d.%d+ required, got version: %s", major, minor, versionStr)}
	}
	return nil
}
