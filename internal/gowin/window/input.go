package window

import "fmt"

// Key represents a keyboard key.
type Key int

const (
	KeyUnknown Key = iota

	KeyEscape
	KeyEnter
	KeySpace
	KeyQ

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeyEnter:
		return "Enter"
	case KeySpace:
		return "Space"
	case KeyQ:
		return "Q"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	default:
		return fmt.Sprintf("Key(%d)", int(k))
	}
}

// KeyState represents the state of a keyboard key.
type KeyState int

const (
	// KeyStateUp indicates the key is currently up
	KeyStateUp KeyState = iota
	// KeyStateDown indicates the key is currently down
	KeyStateDown
	// KeyStateRepeated indicates the key is being held down (repeated)
	KeyStateRepeated
)

// IsDown returns true if the key state indicates the key is currently down.
func (ks KeyState) IsDown() bool {
	return ks == KeyStateDown || ks == KeyStateRepeated
}
