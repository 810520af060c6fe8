// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Eye selects one of a viewer's eyes.
type Eye int

const (
	// EyeMono is the cyclopean eye used for monoscopic rendering and head position.
	EyeMono Eye = iota
	// EyeLeft is the left stereo eye.
	EyeLeft
	// EyeRight is the right stereo eye.
	EyeRight
)

// String returns the eye's name.
func (e Eye) String() string {
	switch e {
	case EyeMono:
		return "mono"
	case EyeLeft:
		return "left"
	case EyeRight:
		return "right"
	}
	return "unknown"
}

// Channel indices of a stereo window.
const (
	ChannelLeft  = 0
	ChannelRight = 1
)

// Color is a linear RGBA color.
type Color [4]float32

// Inverse returns the color with its RGB components inverted and alpha kept.
func (c Color) Inverse() Color {
	return Color{1 - c[0], 1 - c[1], 1 - c[2], c[3]}
}
