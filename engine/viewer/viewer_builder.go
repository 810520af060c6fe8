package viewer

import (
	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/device"
	"github.com/go-gl/mathgl/mgl64"
)

// ViewerBuilderOption is a functional option for configuring a Viewer.
type ViewerBuilderOption func(*viewerImpl)

// WithHeadTransform sets the head's device-space (or physical, if detached) transformation.
//
// Parameters:
//   - t: head space to device space
//
// Returns:
//   - ViewerBuilderOption: functional option to set the head transformation
func WithHeadTransform(t common.ONTransform) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.headDeviceTransform = t
	}
}

// WithDevice attaches the viewer to a head tracking device at construction.
//
// Parameters:
//   - d: the head tracking device
//
// Returns:
//   - ViewerBuilderOption: functional option to attach the device
func WithDevice(d device.InputDevice) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.device = d
	}
}

// WithViewDirection sets the head-space view direction.
//
// Parameters:
//   - dir: the view direction
//
// Returns:
//   - ViewerBuilderOption: functional option to set the view direction
func WithViewDirection(dir mgl64.Vec3) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.viewDirection = dir
	}
}

// WithEyes sets the head-space mono, left, and right eye positions.
//
// Parameters:
//   - mono, left, right: head-space eye positions
//
// Returns:
//   - ViewerBuilderOption: functional option to set the eye positions
func WithEyes(mono, left, right mgl64.Vec3) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.eyes[common.EyeMono] = mono
		v.eyes[common.EyeLeft] = left
		v.eyes[common.EyeRight] = right
	}
}
