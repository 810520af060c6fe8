// Package mousecamera implements the mouse camera tool: it drives a window's screen/viewer pair
// like a desktop 3D camera, with rotate, pan and zoom/dolly controls on a pointing device.
package mousecamera

import (
	"github.com/Carmen-Shannon/oxy-vr/engine/config"
	"github.com/Carmen-Shannon/oxy-vr/engine/tool"
)

// ClassName is the tool class identifier and its configuration section name.
const ClassName = "MouseCameraTool"

var buttonFunctions = [...]string{"Rotate", "Pan", "Zoom/Dolly Switch", "Reset Camera"}

var valuatorFunctions = [...]string{"Quick Zoom/Dolly"}

// factory implements tool.Factory for mouse camera tools.
type factory struct {
	manager tool.Manager
	config  Configuration
}

var _ tool.Factory = &factory{}

// NewFactory creates the mouse camera tool class, loading its settings from the manager's
// "tools.MouseCameraTool" section over the built-in defaults.
//
// Parameters:
//   - m: the tool manager the tools will run in
//
// Returns:
//   - tool.Factory: the tool class
func NewFactory(m tool.Manager) tool.Factory {
	if m == nil {
		panic("mousecamera: NewFactory requires a non-nil Manager")
	}
	env := m.Environment()
	spinThreshold := 0.0
	if env.DisplaySize() > 0 {
		spinThreshold = env.UISize() / env.DisplaySize()
	}
	f := &factory{
		manager: m,
		config:  DefaultConfiguration(spinThreshold),
	}
	f.config.Read(m.ClassSection(ClassName))
	return f
}

func (f *factory) ClassName() string {
	return ClassName
}

func (f *factory) Name() string {
	return "Mouse Camera Control"
}

func (f *factory) Layout() tool.Layout {
	return tool.Layout{NumButtons: len(buttonFunctions), NumValuators: len(valuatorFunctions)}
}

func (f *factory) ButtonFunction(slot int) string {
	if slot < 0 || slot >= len(buttonFunctions) {
		return ""
	}
	return buttonFunctions[slot]
}

func (f *factory) ValuatorFunction(slot int) string {
	if slot < 0 || slot >= len(valuatorFunctions) {
		return ""
	}
	return valuatorFunctions[slot]
}

func (f *factory) CreateTool(assignment tool.InputAssignment, instance *config.Section) (tool.Tool, error) {
	if err := assignment.Validate(f.Layout()); err != nil {
		return nil, err
	}
	cfg := f.config
	if instance != nil {
		cfg.Read(*instance)
	}
	return newTool(f, assignment, cfg), nil
}
