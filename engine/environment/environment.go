package environment

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/device"
	"github.com/Carmen-Shannon/oxy-vr/engine/viewer"
	"github.com/Carmen-Shannon/oxy-vr/engine/window"
	"github.com/go-gl/mathgl/mgl64"
)

// environment implements the Environment interface.
type environment struct {
	mu *sync.Mutex

	windows []window.Window
	devices []device.InputDevice

	mainViewer viewer.Viewer

	up      mgl64.Vec3
	forward mgl64.Vec3

	uiSize      float64
	displaySize float64

	frontPlaneDist float64
	backPlaneDist  float64

	foreground common.Color
	background common.Color
}

// Environment is the physical VR environment: the windows rendering it, its tracked input devices,
// and the global physical-space conventions (up direction, forward direction, UI scale, clip planes).
type Environment interface {
	// Window returns the window with the given index.
	//
	// Parameters:
	//   - index: the window index
	//
	// Returns:
	//   - window.Window: the window, or nil if index is out of range
	Window(index int) window.Window

	// NumWindows returns the number of windows.
	NumWindows() int

	// AddWindow appends a window and returns its index.
	//
	// Parameters:
	//   - w: the window to add
	//
	// Returns:
	//   - int: the new window's index
	AddWindow(w window.Window) int

	// Devices returns a copy of the registered input devices.
	Devices() []device.InputDevice

	// AddDevice registers an input device.
	//
	// Parameters:
	//   - d: the device to register
	AddDevice(d device.InputDevice)

	// MainViewer returns the environment's main viewer, or nil if none is set.
	MainViewer() viewer.Viewer

	// Up returns the physical-space up direction (unit length).
	Up() mgl64.Vec3

	// Forward returns the physical-space forward direction (unit length).
	Forward() mgl64.Vec3

	// UISize returns the base size of UI elements in physical units.
	UISize() float64

	// DisplaySize returns the radius of the display area in physical units.
	DisplaySize() float64

	// FrontPlaneDist returns the distance from the eye to the front clipping plane.
	FrontPlaneDist() float64

	// BackPlaneDist returns the distance from the eye to the back clipping plane.
	BackPlaneDist() float64

	// ForegroundColor returns the default foreground color.
	ForegroundColor() common.Color

	// BackgroundColor returns the default background color.
	BackgroundColor() common.Color
}

var _ Environment = &environment{}

// NewEnvironment creates an empty environment with z-up, y-forward conventions.
//
// Parameters:
//   - options: functional options to configure the environment
//
// Returns:
//   - Environment: the newly created environment
func NewEnvironment(options ...EnvironmentBuilderOption) Environment {
	e := &environment{
		mu:             &sync.Mutex{},
		up:             mgl64.Vec3{0, 0, 1},
		forward:        mgl64.Vec3{0, 1, 0},
		uiSize:         0.25,
		displaySize:    12.0,
		frontPlaneDist: 0.1,
		backPlaneDist:  100.0,
		foreground:     common.Color{1, 1, 1, 1},
		background:     common.Color{0, 0, 0, 1},
	}
	for _, opt := range options {
		opt(e)
	}
	e.up = e.up.Normalize()
	e.forward = e.forward.Normalize()
	return e
}

func (e *environment) Window(index int) window.Window {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.windows) {
		return nil
	}
	return e.windows[index]
}

func (e *environment) NumWindows() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.windows)
}

func (e *environment) AddWindow(w window.Window) int {
	if w == nil {
		panic("environment: AddWindow requires a non-nil Window")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.windows = append(e.windows, w)
	return len(e.windows) - 1
}

func (e *environment) Devices() []device.InputDevice {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]device.InputDevice, len(e.devices))
	copy(out, e.devices)
	return out
}

func (e *environment) AddDevice(d device.InputDevice) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.devices = append(e.devices, d)
}

func (e *environment) MainViewer() viewer.Viewer {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mainViewer == nil && len(e.windows) > 0 {
		return e.windows[0].Viewer(common.ChannelLeft)
	}
	return e.mainViewer
}

func (e *environment) Up() mgl64.Vec3          { return e.up }
func (e *environment) Forward() mgl64.Vec3     { return e.forward }
func (e *environment) UISize() float64         { return e.uiSize }
func (e *environment) DisplaySize() float64    { return e.displaySize }
func (e *environment) FrontPlaneDist() float64 { return e.frontPlaneDist }
func (e *environment) BackPlaneDist() float64  { return e.backPlaneDist }

func (e *environment) ForegroundColor() common.Color { return e.foreground }
func (e *environment) BackgroundColor() common.Color { return e.background }
