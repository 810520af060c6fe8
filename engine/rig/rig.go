// Package rig takes exclusive control of a window's screen/viewer pair. Acquiring a rig cuts the
// pair loose from its tracking devices and pins it where it is; releasing it restores the
// attachments and geometry exactly as they were.
package rig

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/device"
	"github.com/Carmen-Shannon/oxy-vr/engine/environment"
	"github.com/Carmen-Shannon/oxy-vr/engine/screen"
	"github.com/Carmen-Shannon/oxy-vr/engine/viewer"
	"github.com/Carmen-Shannon/oxy-vr/engine/window"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"
)

var (
	// ErrInvalidWindowIndex is returned when the requested window does not exist.
	ErrInvalidWindowIndex = errors.New("rig: invalid window index")

	// ErrMultipleScreens is returned when the window's stereo channels render different screens.
	ErrMultipleScreens = errors.New("rig: window has multiple screens")

	// ErrMultipleViewers is returned when the window's stereo channels render different viewers.
	ErrMultipleViewers = errors.New("rig: window has multiple viewers")

	// ErrRigInUse is returned when another lease already controls the window.
	ErrRigInUse = errors.New("rig: window is already controlled")
)

// ScreenBinding is the screen state captured at acquisition.
type ScreenBinding struct {
	// Device is the tracking device the screen was attached to, or nil.
	Device device.InputDevice

	// DeviceTransform is the screen's transform relative to Device (physical space if Device is nil).
	DeviceTransform common.ONTransform

	// Transform is the screen's physical-space transform at acquisition.
	Transform common.ONTransform

	Width  float64
	Height float64
}

// ViewerBinding is the viewer state captured at acquisition.
type ViewerBinding struct {
	// Device is the head tracking device the viewer was attached to, or nil.
	Device device.InputDevice

	// HeadDeviceTransform is head space to device space (physical space if Device is nil).
	HeadDeviceTransform common.ONTransform

	// HeadTransform is head space to physical space at acquisition.
	HeadTransform common.ONTransform

	// Eyes holds the head-space eye positions, indexed by common.Eye.
	Eyes [3]mgl64.Vec3
}

// Binding is everything Release needs to put a screen/viewer pair back.
type Binding struct {
	Screen ScreenBinding
	Viewer ViewerBinding
}

// Lease is exclusive control of one window's screen/viewer pair.
type Lease struct {
	mu       *sync.Mutex
	released bool

	windowIndex int
	window      window.Window
	screen      screen.Screen
	viewer      viewer.Viewer
	binding     Binding
}

// Acquire validates the window, checks it out, and detaches its screen and viewer from their
// tracking devices. Nothing is modified unless every check passes.
//
// Parameters:
//   - env: the environment holding the window
//   - windowIndex: the index of the window to control
//
// Returns:
//   - *Lease: the lease, to be released with Release
//   - error: ErrInvalidWindowIndex, ErrMultipleScreens, ErrMultipleViewers or ErrRigInUse (wrapped)
func Acquire(env environment.Environment, windowIndex int) (*Lease, error) {
	w := env.Window(windowIndex)
	if w == nil {
		return nil, fmt.Errorf("window %d: %w", windowIndex, ErrInvalidWindowIndex)
	}
	scr := w.Screen(common.ChannelLeft)
	if scr != w.Screen(common.ChannelRight) {
		return nil, fmt.Errorf("window %d: %w", windowIndex, ErrMultipleScreens)
	}
	v := w.Viewer(common.ChannelLeft)
	if v != w.Viewer(common.ChannelRight) {
		return nil, fmt.Errorf("window %d: %w", windowIndex, ErrMultipleViewers)
	}
	if !w.TryCheckout() {
		return nil, fmt.Errorf("window %d: %w", windowIndex, ErrRigInUse)
	}

	l := &Lease{
		mu:          &sync.Mutex{},
		windowIndex: windowIndex,
		window:      w,
		screen:      scr,
		viewer:      v,
	}

	sb := &l.binding.Screen
	sb.DeviceTransform = scr.Transform()
	sb.Transform = scr.ScreenTransformation()
	sb.Width, sb.Height = scr.Size()
	sb.Device = scr.AttachToDevice(nil)
	scr.SetTransform(sb.Transform)

	vb := &l.binding.Viewer
	vb.HeadDeviceTransform = v.HeadDeviceTransformation()
	vb.HeadTransform = v.HeadTransformation()
	for _, eye := range []common.Eye{common.EyeMono, common.EyeLeft, common.EyeRight} {
		vb.Eyes[eye] = v.DeviceEyePosition(eye)
	}
	vb.Device = v.AttachToDevice(nil)
	v.DetachFromDevice(vb.HeadTransform)

	log.Debug().
		Int("window", windowIndex).
		Str("screen", scr.Name()).
		Str("viewer", v.Name()).
		Bool("screenTracked", sb.Device != nil).
		Bool("viewerTracked", vb.Device != nil).
		Msg("rig acquired")
	return l, nil
}

// WindowIndex returns the index of the controlled window.
func (l *Lease) WindowIndex() int {
	return l.windowIndex
}

// Window returns the controlled window.
func (l *Lease) Window() window.Window {
	return l.window
}

// Screen returns the controlled screen.
func (l *Lease) Screen() screen.Screen {
	return l.screen
}

// Viewer returns the controlled viewer.
func (l *Lease) Viewer() viewer.Viewer {
	return l.viewer
}

// Binding returns the state captured at acquisition.
func (l *Lease) Binding() Binding {
	return l.binding
}

// Released reports whether Release has been called.
func (l *Lease) Released() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.released
}

// Release reattaches the screen and viewer to their previous devices, restores the captured
// geometry verbatim, and returns the window. Calls after the first are no-ops.
func (l *Lease) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.released {
		return
	}
	l.released = true

	sb := l.binding.Screen
	l.screen.AttachToDevice(sb.Device)
	l.screen.SetTransform(sb.DeviceTransform)
	l.screen.SetSize(sb.Width, sb.Height)

	vb := l.binding.Viewer
	l.viewer.DetachFromDevice(vb.HeadDeviceTransform)
	if vb.Device != nil {
		l.viewer.AttachToDevice(vb.Device)
	}
	l.viewer.SetDeviceEyePositions(vb.Eyes[common.EyeMono], vb.Eyes[common.EyeLeft], vb.Eyes[common.EyeRight])

	l.window.Return()
	log.Debug().Int("window", l.windowIndex).Msg("rig released")
}
