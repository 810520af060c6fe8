package platform

import "github.com/Carmen-Shannon/oxy-vr/engine/device"

// HostBuilderOption is a functional option for configuring a Host.
type HostBuilderOption func(h *glfwHost)

// WithMouse drives an existing device instead of creating one. The device needs
// common.MouseSlotCount buttons and one valuator.
//
// Parameters:
//   - d: the device to drive
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithMouse(d device.InputDevice) HostBuilderOption {
	return func(h *glfwHost) {
		h.mouse = d
	}
}

// WithWheelScale scales scroll offsets before they reach the wheel valuator. The device clamps
// the result to [-1, 1].
//
// Parameters:
//   - scale: multiplier for scroll offsets (default 1)
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithWheelScale(scale float64) HostBuilderOption {
	return func(h *glfwHost) {
		h.wheelScale = scale
	}
}
