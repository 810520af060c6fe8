package device

import (
	"cmp"
	"sync"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/go-gl/mathgl/mgl64"
)

type inputDeviceImpl struct {
	mu *sync.Mutex

	name string

	transformation common.ONTransform
	rayDirection   mgl64.Vec3
	rayStart       float64

	buttons   []bool
	valuators []float64
}

// InputDevice is a tracked input device: a 6-DOF pose in physical space plus a set of buttons
// and valuators. Devices are referenced by screens, viewers, and tools, never owned by them.
type InputDevice interface {
	// Name returns the device's identifier.
	//
	// Returns:
	//   - string: the device name
	Name() string

	// Transformation returns the device's current tracked pose in physical space.
	//
	// Returns:
	//   - common.ONTransform: the device transformation
	Transformation() common.ONTransform

	// SetTransformation updates the device's tracked pose.
	//
	// Parameters:
	//   - t: the new pose in physical space
	SetTransformation(t common.ONTransform)

	// Position returns the origin of the device in physical space.
	//
	// Returns:
	//   - mgl64.Vec3: the device position
	Position() mgl64.Vec3

	// DeviceRayDirection returns the pointing direction in device space.
	//
	// Returns:
	//   - mgl64.Vec3: the device-space ray direction
	DeviceRayDirection() mgl64.Vec3

	// SetDeviceRay sets the pointing direction in device space and the ray start parameter.
	//
	// Parameters:
	//   - direction: device-space pointing direction
	//   - start: ray parameter at which the pointing ray begins
	SetDeviceRay(direction mgl64.Vec3, start float64)

	// Ray returns the device's pointing ray in physical space.
	//
	// Returns:
	//   - common.Ray: the pointing ray, starting rayStart units along the direction
	Ray() common.Ray

	// NumButtons returns the number of buttons on the device.
	NumButtons() int

	// NumValuators returns the number of valuators on the device.
	NumValuators() int

	// ButtonState returns the current state of a button. Out-of-range indices report false.
	//
	// Parameters:
	//   - index: the button index
	//
	// Returns:
	//   - bool: true if the button is pressed
	ButtonState(index int) bool

	// SetButtonState records a new button state.
	//
	// Parameters:
	//   - index: the button index
	//   - pressed: the new state
	//
	// Returns:
	//   - bool: true if the state changed; false for out-of-range indices or no change
	SetButtonState(index int, pressed bool) bool

	// ValuatorValue returns the current value of a valuator. Out-of-range indices report 0.
	//
	// Parameters:
	//   - index: the valuator index
	//
	// Returns:
	//   - float64: the valuator value in [-1, 1]
	ValuatorValue(index int) float64

	// SetValuatorValue records a new valuator value, clamped to [-1, 1].
	//
	// Parameters:
	//   - index: the valuator index
	//   - value: the new value
	//
	// Returns:
	//   - bool: true if the value changed; false for out-of-range indices or no change
	SetValuatorValue(index int, value float64) bool
}

var _ InputDevice = &inputDeviceImpl{}

// NewInputDevice creates a new device at the physical-space origin, pointing along +y.
//
// Parameters:
//   - name: the device identifier
//   - options: functional options to configure the device
//
// Returns:
//   - InputDevice: the newly created device
func NewInputDevice(name string, options ...InputDeviceBuilderOption) InputDevice {
	d := &inputDeviceImpl{
		mu:             &sync.Mutex{},
		name:           cmp.Or(name, "device"),
		transformation: common.IdentityTransform(),
		rayDirection:   mgl64.Vec3{0, 1, 0},
	}
	for _, option := range options {
		option(d)
	}
	return d
}

func (d *inputDeviceImpl) Name() string {
	return d.name
}

func (d *inputDeviceImpl) Transformation() common.ONTransform {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.transformation
}

func (d *inputDeviceImpl) SetTransformation(t common.ONTransform) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.transformation = t
}

func (d *inputDeviceImpl) Position() mgl64.Vec3 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.transformation.Origin()
}

func (d *inputDeviceImpl) DeviceRayDirection() mgl64.Vec3 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rayDirection
}

func (d *inputDeviceImpl) SetDeviceRay(direction mgl64.Vec3, start float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rayDirection = direction
	d.rayStart = start
}

func (d *inputDeviceImpl) Ray() common.Ray {
	d.mu.Lock()
	defer d.mu.Unlock()
	r := common.Ray{Origin: mgl64.Vec3{}, Direction: d.rayDirection}.Transform(d.transformation)
	r.Origin = r.At(d.rayStart)
	return r
}

func (d *inputDeviceImpl) NumButtons() int {
	return len(d.buttons)
}

func (d *inputDeviceImpl) NumValuators() int {
	return len(d.valuators)
}

func (d *inputDeviceImpl) ButtonState(index int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 0 || index >= len(d.buttons) {
		return false
	}
	return d.buttons[index]
}

func (d *inputDeviceImpl) SetButtonState(index int, pressed bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 0 || index >= len(d.buttons) || d.buttons[index] == pressed {
		return false
	}
	d.buttons[index] = pressed
	return true
}

func (d *inputDeviceImpl) ValuatorValue(index int) float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 0 || index >= len(d.valuators) {
		return 0
	}
	return d.valuators[index]
}

func (d *inputDeviceImpl) SetValuatorValue(index int, value float64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 0 || index >= len(d.valuators) {
		return false
	}
	value = mgl64.Clamp(value, -1, 1)
	if d.valuators[index] == value {
		return false
	}
	d.valuators[index] = value
	return true
}
