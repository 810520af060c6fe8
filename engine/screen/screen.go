package screen

import (
	"cmp"
	"sync"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/device"
	"github.com/go-gl/mathgl/mgl64"
)

type screenImpl struct {
	mu *sync.Mutex

	name string

	// transform maps screen space to device space, or to physical space when no device is attached.
	transform common.ONTransform
	device    device.InputDevice

	width  float64
	height float64
}

// Screen is a virtual rectangular display surface positioned in physical space.
// Screen space has its origin at the lower-left corner, x along the width, y along the height,
// and z pointing out of the screen towards the viewer.
type Screen interface {
	// Name returns the screen's identifier.
	Name() string

	// Transform returns the screen's device-space transformation, which is its physical-space
	// transformation while the screen is not attached to a device.
	//
	// Returns:
	//   - common.ONTransform: screen space to device (or physical) space
	Transform() common.ONTransform

	// SetTransform replaces the screen's device-space transformation.
	//
	// Parameters:
	//   - t: screen space to device (or physical) space
	SetTransform(t common.ONTransform)

	// ScreenTransformation returns the screen's physical-space transformation, composing the
	// attached device's pose when there is one.
	//
	// Returns:
	//   - common.ONTransform: screen space to physical space
	ScreenTransformation() common.ONTransform

	// Device returns the tracking device the screen is attached to, or nil.
	Device() device.InputDevice

	// AttachToDevice attaches the screen to a tracking device, or detaches it when d is nil.
	// The device-space transformation is not modified.
	//
	// Parameters:
	//   - d: the new tracking device, or nil
	//
	// Returns:
	//   - device.InputDevice: the previously attached device, or nil
	AttachToDevice(d device.InputDevice) device.InputDevice

	// Size returns the screen's physical width and height.
	Size() (width, height float64)

	// Width returns the screen's physical width.
	Width() float64

	// Height returns the screen's physical height.
	Height() float64

	// SetSize changes the screen's physical size.
	//
	// Parameters:
	//   - width, height: the new size in physical units
	SetSize(width, height float64)

	// Center returns the screen's center point in physical space.
	Center() mgl64.Vec3
}

var _ Screen = &screenImpl{}

// NewScreen creates a new unattached screen with identity transformation.
//
// Parameters:
//   - name: the screen identifier
//   - width, height: physical size of the screen
//   - options: functional options to configure the screen
//
// Returns:
//   - Screen: the newly created screen
func NewScreen(name string, width, height float64, options ...ScreenBuilderOption) Screen {
	s := &screenImpl{
		mu:        &sync.Mutex{},
		name:      cmp.Or(name, "screen"),
		transform: common.IdentityTransform(),
		width:     width,
		height:    height,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *screenImpl) Name() string {
	return s.name
}

func (s *screenImpl) Transform() common.ONTransform {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transform
}

func (s *screenImpl) SetTransform(t common.ONTransform) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transform = t
}

func (s *screenImpl) ScreenTransformation() common.ONTransform {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screenTransformation()
}

func (s *screenImpl) Device() device.InputDevice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.device
}

func (s *screenImpl) AttachToDevice(d device.InputDevice) device.InputDevice {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.device
	s.device = d
	return prev
}

func (s *screenImpl) Size() (width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *screenImpl) Width() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width
}

func (s *screenImpl) Height() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height
}

func (s *screenImpl) SetSize(width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *screenImpl) Center() mgl64.Vec3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screenTransformation().TransformPoint(mgl64.Vec3{s.width * 0.5, s.height * 0.5, 0})
}

// screenTransformation composes the device pose with the device-space transformation.
// Caller must hold the mutex.
func (s *screenImpl) screenTransformation() common.ONTransform {
	if s.device == nil {
		return s.transform
	}
	return s.device.Transformation().Mul(s.transform).Renormalize()
}
