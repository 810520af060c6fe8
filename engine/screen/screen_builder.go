package screen

import (
	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/device"
)

// ScreenBuilderOption is a functional option for configuring a Screen.
type ScreenBuilderOption func(*screenImpl)

// WithTransform sets the screen's initial device-space transformation.
//
// Parameters:
//   - t: screen space to device (or physical) space
//
// Returns:
//   - ScreenBuilderOption: functional option to set the transformation
func WithTransform(t common.ONTransform) ScreenBuilderOption {
	return func(s *screenImpl) {
		s.transform = t
	}
}

// WithDevice attaches the screen to a tracking device at construction.
//
// Parameters:
//   - d: the tracking device
//
// Returns:
//   - ScreenBuilderOption: functional option to attach the device
func WithDevice(d device.InputDevice) ScreenBuilderOption {
	return func(s *screenImpl) {
		s.device = d
	}
}
