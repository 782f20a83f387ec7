//go:build !windows

package gl

import (
	"testing"

	"golang.org/x/sys/unix"
)

func TestCString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "#version 330 core\n", want: "#version 330 core\n"},
		{in: "void main() {}\x00trailing", want: "void main() {}"},
	}
	for _, tt := range tests {
		p := cString(tt.in)
		if p == nil {
			t.Fatalf("cString(%q) = nil", tt.in)
		}
		if got := unix.BytePtrToString(p); got != tt.want {
			t.Fatalf("cString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
