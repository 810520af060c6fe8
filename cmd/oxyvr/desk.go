package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine"
	"github.com/Carmen-Shannon/oxy-vr/engine/config"
	"github.com/Carmen-Shannon/oxy-vr/engine/device"
	"github.com/Carmen-Shannon/oxy-vr/engine/environment"
	"github.com/Carmen-Shannon/oxy-vr/engine/tool"
	"github.com/Carmen-Shannon/oxy-vr/engine/tool/mousecamera"
)

// desk is a configured environment with a mouse camera tool running on its first window.
type desk struct {
	env    environment.Environment
	engine engine.Engine
	mouse  device.InputDevice
	camera mousecamera.Tool
}

// newDesk builds the environment from the "environment" section, adds a mouse device and
// activates a mouse camera tool configured from "tools.MouseCameraTool".
func newDesk(settings *config.File, options ...engine.EngineBuilderOption) (*desk, error) {
	mouse := device.NewInputDevice("mouse",
		device.WithButtons(common.MouseSlotCount),
		device.WithValuators(1))

	env, err := environment.FromConfig(settings.Section("environment"), environment.WithDevice(mouse))
	if err != nil {
		return nil, err
	}

	eng := engine.NewEngine(env, append([]engine.EngineBuilderOption{engine.WithSettings(settings)}, options...)...)
	eng.Tools().RegisterFactory(mousecamera.NewFactory(eng.Tools()))

	created, err := eng.Tools().CreateTool(mousecamera.ClassName, mouseAssignment(mouse), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start mouse camera: %w", err)
	}
	return &desk{env: env, engine: eng, mouse: mouse, camera: created.(mousecamera.Tool)}, nil
}

// mouseAssignment binds the tool's rotate, pan, zoom/dolly switch and reset slots to the left
// and right buttons, shift and R, and its quick zoom valuator to the wheel.
func mouseAssignment(mouse device.InputDevice) tool.InputAssignment {
	return tool.InputAssignment{
		Buttons: []tool.Slot{
			{Device: mouse, Index: common.MouseSlotLeft},
			{Device: mouse, Index: common.MouseSlotRight},
			{Device: mouse, Index: common.MouseSlotShift},
			{Device: mouse, Index: common.MouseSlotKeyR},
		},
		Valuators: []tool.Slot{{Device: mouse, Index: common.MouseValuatorWheel}},
	}
}
