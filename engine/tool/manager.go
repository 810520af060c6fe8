package tool

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-vr/engine/config"
	"github.com/Carmen-Shannon/oxy-vr/engine/device"
	"github.com/Carmen-Shannon/oxy-vr/engine/environment"
	"github.com/Carmen-Shannon/oxy-vr/engine/overlay"
	"github.com/rs/zerolog/log"
)

// manager implements the Manager interface.
type manager struct {
	mu *sync.Mutex

	env      environment.Environment
	settings *config.File

	factories map[string]Factory
	tools     []Tool
}

// Manager owns the tool factories and the active tools of an environment, and routes input
// events, frame and display callbacks to the tools.
type Manager interface {
	// Environment returns the environment the tools operate in.
	Environment() environment.Environment

	// ClassSection returns the configuration section of a tool class.
	//
	// Parameters:
	//   - className: the factory class name
	//
	// Returns:
	//   - config.Section: the section "tools.<className>"
	ClassSection(className string) config.Section

	// RegisterFactory makes a tool class available to CreateTool.
	//
	// Parameters:
	//   - f: the factory to register; replaces an existing factory of the same class
	RegisterFactory(f Factory)

	// Factory returns the registered factory of a class, or nil.
	Factory(className string) Factory

	// CreateTool creates a tool of a registered class and adds it.
	//
	// Parameters:
	//   - className: the factory class name
	//   - assignment: the device slots to bind
	//   - instance: optional per-instance configuration (may be nil)
	//
	// Returns:
	//   - Tool: the initialized tool
	//   - error: error if the class is unknown, the assignment is invalid, or Initialize fails
	CreateTool(className string, assignment InputAssignment, instance *config.Section) (Tool, error)

	// AddTool initializes a tool and adds it to the dispatch list.
	// The tool is not added if Initialize fails.
	//
	// Parameters:
	//   - t: the tool to add
	//
	// Returns:
	//   - error: the Initialize error, if any
	AddTool(t Tool) error

	// RemoveTool deinitializes a tool and removes it. Unknown tools are ignored.
	//
	// Parameters:
	//   - t: the tool to remove
	RemoveTool(t Tool)

	// Tools returns a copy of the active tools in creation order.
	Tools() []Tool

	// ButtonChanged dispatches a device button change to every tool bound to that button.
	//
	// Parameters:
	//   - d: the device
	//   - index: the device button index
	//   - pressed: the new button state
	ButtonChanged(d device.InputDevice, index int, pressed bool)

	// ValuatorChanged dispatches a device valuator change to every tool bound to that valuator.
	//
	// Parameters:
	//   - d: the device
	//   - index: the device valuator index
	//   - value: the new value
	ValuatorChanged(d device.InputDevice, index int, value float64)

	// Frame calls Frame on every tool.
	Frame()

	// Display calls Display on every tool for one window.
	//
	// Parameters:
	//   - windowIndex: the window being rendered
	//   - lines: the window's overlay, appended to by the tools
	Display(windowIndex int, lines *overlay.Lines)

	// Shutdown removes every tool in reverse creation order.
	Shutdown()
}

var _ Manager = &manager{}

// NewManager creates a tool manager for env reading tool class settings from settings.
// Panics if env is nil. A nil settings store is replaced by an empty one.
//
// Parameters:
//   - env: the environment the tools operate in
//   - settings: the configuration store holding the "tools" sections
//
// Returns:
//   - Manager: the new manager
func NewManager(env environment.Environment, settings *config.File) Manager {
	if env == nil {
		panic("tool: NewManager requires a non-nil Environment")
	}
	if settings == nil {
		settings = config.NewFile()
	}
	return &manager{
		mu:        &sync.Mutex{},
		env:       env,
		settings:  settings,
		factories: make(map[string]Factory),
	}
}

func (m *manager) Environment() environment.Environment {
	return m.env
}

func (m *manager) ClassSection(className string) config.Section {
	return m.settings.Section("tools").Sub(className)
}

func (m *manager) RegisterFactory(f Factory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.factories[f.ClassName()] = f
	log.Debug().Str("class", f.ClassName()).Str("name", f.Name()).Msg("tool class registered")
}

func (m *manager) Factory(className string) Factory {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.factories[className]
}

func (m *manager) CreateTool(className string, assignment InputAssignment, instance *config.Section) (Tool, error) {
	f := m.Factory(className)
	if f == nil {
		return nil, fmt.Errorf("tool: unknown tool class %q", className)
	}
	t, err := f.CreateTool(assignment, instance)
	if err != nil {
		return nil, err
	}
	if err := m.AddTool(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (m *manager) AddTool(t Tool) error {
	if err := t.Initialize(); err != nil {
		log.Warn().Err(err).Str("class", t.Factory().ClassName()).Msg("tool initialization failed")
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tools = append(m.tools, t)
	return nil
}

func (m *manager) RemoveTool(t Tool) {
	m.mu.Lock()
	found := false
	for i, existing := range m.tools {
		if existing == t {
			m.tools = append(m.tools[:i], m.tools[i+1:]...)
			found = true
			break
		}
	}
	m.mu.Unlock()
	if found {
		t.Deinitialize()
	}
}

func (m *manager) Tools() []Tool {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Tool, len(m.tools))
	copy(out, m.tools)
	return out
}

func (m *manager) ButtonChanged(d device.InputDevice, index int, pressed bool) {
	for _, t := range m.Tools() {
		if slot := t.Assignment().findButton(d, index); slot >= 0 {
			t.ButtonCallback(slot, pressed)
		}
	}
}

func (m *manager) ValuatorChanged(d device.InputDevice, index int, value float64) {
	for _, t := range m.Tools() {
		if slot := t.Assignment().findValuator(d, index); slot >= 0 {
			t.ValuatorCallback(slot, value)
		}
	}
}

func (m *manager) Frame() {
	for _, t := range m.Tools() {
		t.Frame()
	}
}

func (m *manager) Display(windowIndex int, lines *overlay.Lines) {
	ctx := &DisplayContext{WindowIndex: windowIndex, Lines: lines}
	for _, t := range m.Tools() {
		t.Display(ctx)
	}
}

func (m *manager) Shutdown() {
	tools := m.Tools()
	for i := len(tools) - 1; i >= 0; i-- {
		m.RemoveTool(tools[i])
	}
}
