package camera

import (
	"github.com/Carmen-Shannon/oxy-vr/common"
)

type CameraBuilderOption func(*cameraImpl)

// WithEye selects which of the viewer's eyes the camera follows.
//
// Parameters:
//   - eye: the eye to use (EyeMono by default)
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's eye
func WithEye(eye common.Eye) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.eye = eye
	}
}

// WithPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the clipping planes
func WithPlanes(near, far float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}
