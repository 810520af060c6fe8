package environment

import (
	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/device"
	"github.com/Carmen-Shannon/oxy-vr/engine/viewer"
	"github.com/Carmen-Shannon/oxy-vr/engine/window"
	"github.com/go-gl/mathgl/mgl64"
)

// EnvironmentBuilderOption is a functional option for configuring an Environment.
type EnvironmentBuilderOption func(*environment)

// WithWindow adds a window. Windows are indexed in the order they are added.
//
// Parameters:
//   - w: the window to add
//
// Returns:
//   - EnvironmentBuilderOption: option function to apply
func WithWindow(w window.Window) EnvironmentBuilderOption {
	return func(e *environment) {
		e.windows = append(e.windows, w)
	}
}

// WithDevice registers an input device.
func WithDevice(d device.InputDevice) EnvironmentBuilderOption {
	return func(e *environment) {
		e.devices = append(e.devices, d)
	}
}

// WithMainViewer sets the main viewer. Defaults to the left channel viewer of window 0.
func WithMainViewer(v viewer.Viewer) EnvironmentBuilderOption {
	return func(e *environment) {
		e.mainViewer = v
	}
}

// WithFrame sets the physical-space up and forward directions. Both are normalized.
//
// Parameters:
//   - up: the up direction
//   - forward: the forward direction (must not be parallel to up)
//
// Returns:
//   - EnvironmentBuilderOption: option function to apply
func WithFrame(up, forward mgl64.Vec3) EnvironmentBuilderOption {
	return func(e *environment) {
		e.up = up
		e.forward = forward
	}
}

// WithUISize sets the base UI element size.
func WithUISize(size float64) EnvironmentBuilderOption {
	return func(e *environment) {
		e.uiSize = size
	}
}

// WithDisplaySize sets the display area radius.
func WithDisplaySize(size float64) EnvironmentBuilderOption {
	return func(e *environment) {
		e.displaySize = size
	}
}

// WithPlaneDistances sets the front and back clipping plane distances.
//
// Parameters:
//   - front: front plane distance (must be > 0)
//   - back: back plane distance (must be > front)
//
// Returns:
//   - EnvironmentBuilderOption: option function to apply
func WithPlaneDistances(front, back float64) EnvironmentBuilderOption {
	return func(e *environment) {
		e.frontPlaneDist = front
		e.backPlaneDist = back
	}
}

// WithColors sets the default foreground and background colors.
func WithColors(foreground, background common.Color) EnvironmentBuilderOption {
	return func(e *environment) {
		e.foreground = foreground
		e.background = background
	}
}
