package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyR     = 82  // R key (ASCII)
	KeyP     = 80  // P key (ASCII)
	KeySpace = 32  // Spacebar (ASCII)
	KeyEnter = 257 // Enter key (GLFW)
	KeyEsc   = 256 // Escape key (GLFW)
)

// MouseButtons is a bitmask of the pointer buttons held during a motion event.
type MouseButtons uint8

// Pointer button bits. Bit positions follow the GLFW button numbering.
const (
	MouseButtonLeft MouseButtons = 1 << iota
	MouseButtonRight
	MouseButtonMiddle
)

// Has reports whether every button in mask is held.
func (b MouseButtons) Has(mask MouseButtons) bool {
	return b&mask == mask
}
