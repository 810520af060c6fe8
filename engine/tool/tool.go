// Package tool defines the interaction tool framework: tools bound to device button and valuator
// slots, the factories that create them, and the manager that dispatches input events and frame
// callbacks to them.
package tool

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/config"
	"github.com/Carmen-Shannon/oxy-vr/engine/device"
	"github.com/Carmen-Shannon/oxy-vr/engine/overlay"
)

// ErrBadAssignment is returned when an input assignment does not match a factory's layout.
var ErrBadAssignment = errors.New("tool: input assignment does not match layout")

// Slot is one button or valuator of one input device.
type Slot struct {
	Device device.InputDevice
	Index  int
}

// Layout is the number of button and valuator slots a tool class needs.
type Layout struct {
	NumButtons   int
	NumValuators int
}

// InputAssignment binds a tool's button and valuator slots to device slots.
type InputAssignment struct {
	Buttons   []Slot
	Valuators []Slot
}

// Validate checks that the assignment fills layout with non-nil devices.
//
// Parameters:
//   - layout: the layout to check against
//
// Returns:
//   - error: ErrBadAssignment (wrapped) if the assignment does not fit
func (a InputAssignment) Validate(layout Layout) error {
	if len(a.Buttons) != layout.NumButtons || len(a.Valuators) != layout.NumValuators {
		return fmt.Errorf("%w: have %d buttons/%d valuators, need %d/%d", ErrBadAssignment,
			len(a.Buttons), len(a.Valuators), layout.NumButtons, layout.NumValuators)
	}
	for i, s := range a.Buttons {
		if s.Device == nil {
			return fmt.Errorf("%w: button slot %d has no device", ErrBadAssignment, i)
		}
	}
	for i, s := range a.Valuators {
		if s.Device == nil {
			return fmt.Errorf("%w: valuator slot %d has no device", ErrBadAssignment, i)
		}
	}
	return nil
}

// ButtonDevice returns the device bound to a button slot.
func (a InputAssignment) ButtonDevice(slot int) device.InputDevice {
	return a.Buttons[slot].Device
}

// ButtonDeviceRay returns the physical-space pointing ray of the device bound to a button slot.
func (a InputAssignment) ButtonDeviceRay(slot int) common.Ray {
	return a.Buttons[slot].Device.Ray()
}

func (a InputAssignment) findButton(d device.InputDevice, index int) int {
	for i, s := range a.Buttons {
		if s.Device == d && s.Index == index {
			return i
		}
	}
	return -1
}

func (a InputAssignment) findValuator(d device.InputDevice, index int) int {
	for i, s := range a.Valuators {
		if s.Device == d && s.Index == index {
			return i
		}
	}
	return -1
}

// DisplayContext is passed to tools while rendering one window.
type DisplayContext struct {
	// WindowIndex is the index of the window being rendered.
	WindowIndex int

	// Lines collects the physical-space overlay geometry of this window.
	Lines *overlay.Lines
}

// Tool is an interaction tool bound to device slots.
type Tool interface {
	// Factory returns the factory that created the tool.
	//
	// Returns:
	//   - Factory: the tool's class
	Factory() Factory

	// Assignment returns the device slots the tool is bound to.
	//
	// Returns:
	//   - InputAssignment: the tool's input assignment
	Assignment() InputAssignment

	// Initialize is called once when the tool is added to a manager.
	// A tool whose Initialize fails is not added and holds no resources.
	//
	// Returns:
	//   - error: error if the tool cannot be activated
	Initialize() error

	// Deinitialize is called once when the tool is removed from its manager.
	Deinitialize()

	// ButtonCallback is called when the state of an assigned button changes.
	//
	// Parameters:
	//   - slot: the tool's button slot index
	//   - pressed: the new button state
	ButtonCallback(slot int, pressed bool)

	// ValuatorCallback is called when the value of an assigned valuator changes.
	//
	// Parameters:
	//   - slot: the tool's valuator slot index
	//   - value: the new valuator value in [-1, 1]
	ValuatorCallback(slot int, value float64)

	// Frame is called once per frame after all input events have been dispatched.
	Frame()

	// Display is called once per window per frame after Frame.
	//
	// Parameters:
	//   - ctx: the window being rendered and its overlay
	Display(ctx *DisplayContext)
}

// Factory describes and creates the tools of one class.
type Factory interface {
	// ClassName returns the class identifier, also used as its configuration section name.
	ClassName() string

	// Name returns the human-readable class name.
	Name() string

	// Layout returns the class's button and valuator slot counts.
	Layout() Layout

	// ButtonFunction returns the description of a button slot.
	//
	// Parameters:
	//   - slot: the button slot index
	//
	// Returns:
	//   - string: the slot's function, or "" for an invalid slot
	ButtonFunction(slot int) string

	// ValuatorFunction returns the description of a valuator slot.
	//
	// Parameters:
	//   - slot: the valuator slot index
	//
	// Returns:
	//   - string: the slot's function, or "" for an invalid slot
	ValuatorFunction(slot int) string

	// CreateTool creates a tool bound to assignment. The tool is not initialized.
	//
	// Parameters:
	//   - assignment: the device slots to bind
	//   - instance: optional per-instance configuration overriding the class settings (may be nil)
	//
	// Returns:
	//   - Tool: the new tool
	//   - error: error if the assignment does not fit the layout
	CreateTool(assignment InputAssignment, instance *config.Section) (Tool, error)
}
