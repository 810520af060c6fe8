package engine

import (
	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/device"
	"github.com/go-gl/mathgl/mgl64"
)

// Event is an input change posted to the engine and applied at the start of the next Step.
type Event interface {
	isEvent()
}

// ButtonEvent sets a device button.
type ButtonEvent struct {
	Device  device.InputDevice
	Index   int
	Pressed bool
}

// ValuatorEvent sets a device valuator. Values are clamped to [-1, 1] by the device.
type ValuatorEvent struct {
	Device device.InputDevice
	Index  int
	Value  float64
}

// PoseEvent moves a device.
type PoseEvent struct {
	Device    device.InputDevice
	Transform common.ONTransform
}

// RayEvent re-aims a device's pointing ray, in device coordinates.
type RayEvent struct {
	Device    device.InputDevice
	Direction mgl64.Vec3
	Start     float64
}

func (ButtonEvent) isEvent()   {}
func (ValuatorEvent) isEvent() {}
func (PoseEvent) isEvent()     {}
func (RayEvent) isEvent()      {}
