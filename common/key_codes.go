package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyR          = 82  // R key (ASCII)
	KeyEsc        = 256 // Escape key (GLFW)
	KeyLeftShift  = 340 // Left Shift (GLFW)
	KeyRightShift = 344 // Right Shift (GLFW)
)

// Mouse button codes, matching GLFW mouse button numbering.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#MouseButton
const (
	MouseButtonLeft   = 0
	MouseButtonRight  = 1
	MouseButtonMiddle = 2
)

// Button slot indices of the desktop mouse device the platform layer feeds.
// Slots 0-2 follow the physical mouse buttons; slot 3 is bound to KeyR and slot 4 to either shift key.
const (
	MouseSlotLeft   = 0
	MouseSlotMiddle = 1
	MouseSlotRight  = 2
	MouseSlotKeyR   = 3
	MouseSlotShift  = 4

	MouseSlotCount = 5
)

// MouseValuatorWheel is the valuator slot fed by the scroll wheel.
const MouseValuatorWheel = 0
