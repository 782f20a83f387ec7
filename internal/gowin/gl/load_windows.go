package gl

import "errors"

// Load is not available on windows: purego cannot pass the float arguments
// glClearColor needs through the stdcall trampoline.
func Load(getProcAddress ProcAddressFunc) (OpenGL, error) {
	return nil, &LoaderError{Err: errors.New("GL loader is not supported on windows")}
}
