package viewer

import (
	"cmp"
	"sync"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/device"
	"github.com/go-gl/mathgl/mgl64"
)

type viewerImpl struct {
	mu *sync.Mutex

	name string

	// headDeviceTransform maps head space to device space, or to physical space when detached.
	headDeviceTransform common.ONTransform
	device              device.InputDevice

	viewDirection mgl64.Vec3
	eyes          [3]mgl64.Vec3 // indexed by common.Eye, head space
}

// Viewer is a virtual observer with mono, left, and right eye positions, placed in physical
// space either by a tracking device (head tracking) or by a fixed detached transformation.
type Viewer interface {
	// Name returns the viewer's identifier.
	Name() string

	// Device returns the tracking device the viewer is attached to, or nil.
	Device() device.InputDevice

	// AttachToDevice attaches the viewer to a head tracking device, or detaches it when d is nil.
	// The head's device-space transformation is kept as is.
	//
	// Parameters:
	//   - d: the new tracking device, or nil
	//
	// Returns:
	//   - device.InputDevice: the previously attached device, or nil
	AttachToDevice(d device.InputDevice) device.InputDevice

	// DetachFromDevice detaches the viewer and fixes its head at the given physical-space transformation.
	//
	// Parameters:
	//   - t: head space to physical space
	DetachFromDevice(t common.ONTransform)

	// HeadDeviceTransformation returns head space to device (or physical, if detached) space.
	HeadDeviceTransformation() common.ONTransform

	// HeadTransformation returns the viewer's head transformation in physical space.
	//
	// Returns:
	//   - common.ONTransform: head space to physical space
	HeadTransformation() common.ONTransform

	// HeadPosition returns the mono eye position in physical space.
	HeadPosition() mgl64.Vec3

	// ViewDirection returns the viewing direction in physical space.
	ViewDirection() mgl64.Vec3

	// DeviceViewDirection returns the viewing direction in head space.
	DeviceViewDirection() mgl64.Vec3

	// DeviceEyePosition returns an eye position in head space.
	//
	// Parameters:
	//   - eye: which eye
	//
	// Returns:
	//   - mgl64.Vec3: the head-space eye position
	DeviceEyePosition(eye common.Eye) mgl64.Vec3

	// EyePosition returns an eye position in physical space.
	//
	// Parameters:
	//   - eye: which eye
	//
	// Returns:
	//   - mgl64.Vec3: the physical-space eye position
	EyePosition(eye common.Eye) mgl64.Vec3

	// SetEyes sets the view direction and derives the stereo eyes from a mono eye and a half
	// eye offset: left = mono - offset, right = mono + offset.
	//
	// Parameters:
	//   - viewDirection: head-space view direction
	//   - mono: head-space mono eye position
	//   - eyeOffset: half the vector from the left to the right eye
	SetEyes(viewDirection, mono, eyeOffset mgl64.Vec3)

	// SetDeviceEyePositions sets all three head-space eye positions verbatim.
	//
	// Parameters:
	//   - mono, left, right: head-space eye positions
	SetDeviceEyePositions(mono, left, right mgl64.Vec3)
}

var _ Viewer = &viewerImpl{}

// NewViewer creates a detached viewer at the physical-space origin looking along +y,
// with eyes 6.5 cm apart.
//
// Parameters:
//   - name: the viewer identifier
//   - options: functional options to configure the viewer
//
// Returns:
//   - Viewer: the newly created viewer
func NewViewer(name string, options ...ViewerBuilderOption) Viewer {
	v := &viewerImpl{
		mu:                  &sync.Mutex{},
		name:                cmp.Or(name, "viewer"),
		headDeviceTransform: common.IdentityTransform(),
		viewDirection:       mgl64.Vec3{0, 1, 0},
	}
	v.eyes[common.EyeLeft] = mgl64.Vec3{-0.0325, 0, 0}
	v.eyes[common.EyeRight] = mgl64.Vec3{0.0325, 0, 0}
	for _, option := range options {
		option(v)
	}
	return v
}

func (v *viewerImpl) Name() string {
	return v.name
}

func (v *viewerImpl) Device() device.InputDevice {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.device
}

func (v *viewerImpl) AttachToDevice(d device.InputDevice) device.InputDevice {
	v.mu.Lock()
	defer v.mu.Unlock()
	prev := v.device
	v.device = d
	return prev
}

func (v *viewerImpl) DetachFromDevice(t common.ONTransform) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.device = nil
	v.headDeviceTransform = t
}

func (v *viewerImpl) HeadDeviceTransformation() common.ONTransform {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.headDeviceTransform
}

func (v *viewerImpl) HeadTransformation() common.ONTransform {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.headTransformation()
}

func (v *viewerImpl) HeadPosition() mgl64.Vec3 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.headTransformation().TransformPoint(v.eyes[common.EyeMono])
}

func (v *viewerImpl) ViewDirection() mgl64.Vec3 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.headTransformation().TransformVector(v.viewDirection)
}

func (v *viewerImpl) DeviceViewDirection() mgl64.Vec3 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewDirection
}

func (v *viewerImpl) DeviceEyePosition(eye common.Eye) mgl64.Vec3 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.eyes[eye]
}

func (v *viewerImpl) EyePosition(eye common.Eye) mgl64.Vec3 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.headTransformation().TransformPoint(v.eyes[eye])
}

func (v *viewerImpl) SetEyes(viewDirection, mono, eyeOffset mgl64.Vec3) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.viewDirection = viewDirection
	v.eyes[common.EyeMono] = mono
	v.eyes[common.EyeLeft] = mono.Sub(eyeOffset)
	v.eyes[common.EyeRight] = mono.Add(eyeOffset)
}

func (v *viewerImpl) SetDeviceEyePositions(mono, left, right mgl64.Vec3) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.eyes[common.EyeMono] = mono
	v.eyes[common.EyeLeft] = left
	v.eyes[common.EyeRight] = right
}

// headTransformation composes the device pose with the head's device-space transformation.
// Caller must hold the mutex.
func (v *viewerImpl) headTransformation() common.ONTransform {
	if v.device == nil {
		return v.headDeviceTransform
	}
	return v.device.Transformation().Mul(v.headDeviceTransform).Renormalize()
}
