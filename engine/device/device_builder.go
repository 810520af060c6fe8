package device

import (
	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/go-gl/mathgl/mgl64"
)

// InputDeviceBuilderOption is a functional option for configuring an InputDevice.
type InputDeviceBuilderOption func(*inputDeviceImpl)

// WithTransformation sets the device's initial pose in physical space.
//
// Parameters:
//   - t: the initial pose
//
// Returns:
//   - InputDeviceBuilderOption: functional option to set the pose
func WithTransformation(t common.ONTransform) InputDeviceBuilderOption {
	return func(d *inputDeviceImpl) {
		d.transformation = t
	}
}

// WithRayDirection sets the device-space pointing direction.
//
// Parameters:
//   - direction: the pointing direction
//
// Returns:
//   - InputDeviceBuilderOption: functional option to set the ray direction
func WithRayDirection(direction mgl64.Vec3) InputDeviceBuilderOption {
	return func(d *inputDeviceImpl) {
		d.rayDirection = direction
	}
}

// WithButtons sets the number of buttons on the device.
//
// Parameters:
//   - n: button count
//
// Returns:
//   - InputDeviceBuilderOption: functional option to set the button count
func WithButtons(n int) InputDeviceBuilderOption {
	return func(d *inputDeviceImpl) {
		d.buttons = make([]bool, max(n, 0))
	}
}

// WithValuators sets the number of valuators on the device.
//
// Parameters:
//   - n: valuator count
//
// Returns:
//   - InputDeviceBuilderOption: functional option to set the valuator count
func WithValuators(n int) InputDeviceBuilderOption {
	return func(d *inputDeviceImpl) {
		d.valuators = make([]float64, max(n, 0))
	}
}
