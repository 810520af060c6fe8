package platform

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine"
	"github.com/Carmen-Shannon/oxy-vr/engine/device"
	"github.com/Carmen-Shannon/oxy-vr/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog/log"
)

// EventPoster receives the input events a host translates from the window system.
// engine.Engine satisfies it.
type EventPoster = engine.EventPoster

// Host is a desktop window showing one VR window, with the system mouse and keyboard mapped
// onto a mouse input device.
// All methods must be called from the thread that created the host.
type Host interface {
	// Mouse returns the device driven by the system mouse and keyboard.
	//
	// Returns:
	//   - device.InputDevice: the mouse device
	Mouse() device.InputDevice

	// SurfaceDescriptor returns the descriptor a renderer uses to create its surface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the descriptor, or nil once closed
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// FramebufferSize returns the drawable size in pixels.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	FramebufferSize() (int, int)

	// SetResizeCallback registers the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving the new size in pixels
	SetResizeCallback(callback func(width, height int))

	// Poll processes pending window system events without blocking, then re-aims the mouse
	// through the current screen at the last cursor position. Suitable as an engine poll
	// callback.
	//
	// Returns:
	//   - bool: false once the window has been asked to close
	Poll() bool

	// Close destroys the window and terminates GLFW.
	//
	// Returns:
	//   - error: error if the host is already closed
	Close() error
}

// glfwHost holds the GLFW-specific window state.
type glfwHost struct {
	window *glfw.Window
	poster EventPoster
	mouse  device.InputDevice
	cursor engine.Cursor

	// held tracks pressed keys per mouse slot, so a slot shared by two keys stays pressed
	// until both are up.
	held map[int]map[int]bool

	running      bool
	wheelPending bool
	wheelScale   float64

	onResize func(width, height int)
}

var _ Host = &glfwHost{}

// NewHost opens a GLFW window for target and routes its input to poster through the mouse
// device. Tools only see the mouse once the caller adds it to the environment.
// Locks the calling goroutine to its OS thread.
//
// Parameters:
//   - target: the VR window to show
//   - poster: the receiver of translated input events
//   - options: functional options for the host
//
// Returns:
//   - Host: the open host
//   - error: error if GLFW or the window could not be initialized
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
func NewHost(target window.Window, poster EventPoster, options ...HostBuilderOption) (Host, error) {
	if target == nil || poster == nil {
		panic("platform: NewHost requires a non-nil Window and EventPoster")
	}
	h := &glfwHost{
		poster:     poster,
		held:       make(map[int]map[int]bool),
		running:    true,
		wheelScale: 1,
	}
	for _, opt := range options {
		opt(h)
	}
	if h.mouse == nil {
		h.mouse = device.NewInputDevice("mouse",
			device.WithButtons(common.MouseSlotCount),
			device.WithValuators(1))
	}
	h.cursor = engine.NewCursor(h.mouse, target)

	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(target.Width(), target.Height(), target.Title(), nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	h.window = win

	win.SetKeyCallback(h.keyCallback)
	win.SetMouseButtonCallback(h.mouseButtonCallback)
	win.SetScrollCallback(h.scrollCallback)
	win.SetCursorPosCallback(h.cursorCallback)

	// Framebuffer size differs from window size on high-DPI displays. The renderer needs pixels.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		target.SetSize(width, height)
		if h.onResize != nil {
			h.onResize(width, height)
		}
	})

	fbWidth, fbHeight := win.GetFramebufferSize()
	target.SetSize(fbWidth, fbHeight)

	x, y := win.GetCursorPos()
	h.cursorCallback(win, x, y)
	h.cursor.Sync(h.poster)

	log.Debug().Str("title", target.Title()).Int("width", fbWidth).Int("height", fbHeight).Msg("platform window opened")
	return h, nil
}

func (h *glfwHost) Mouse() device.InputDevice {
	return h.mouse
}

// SurfaceDescriptor uses the wgpuglfw bridge, which has per-platform implementations.
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func (h *glfwHost) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if h.window == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(h.window)
}

func (h *glfwHost) FramebufferSize() (int, int) {
	if h.window == nil {
		return 0, 0
	}
	return h.window.GetFramebufferSize()
}

func (h *glfwHost) SetResizeCallback(callback func(width, height int)) {
	h.onResize = callback
}

// Poll ends the previous wheel pulse before collecting new events, so a wheel value is seen
// by exactly one engine step. The cursor is synced every call: the tools move the screen under
// a still cursor.
func (h *glfwHost) Poll() bool {
	if h.window == nil {
		return false
	}
	if h.wheelPending {
		h.wheelPending = false
		h.poster.Post(engine.ValuatorEvent{Device: h.mouse, Index: common.MouseValuatorWheel, Value: 0})
	}
	glfw.PollEvents()
	h.cursor.Sync(h.poster)
	return h.running && !h.window.ShouldClose()
}

func (h *glfwHost) Close() error {
	if h.window == nil {
		return fmt.Errorf("window is not initialized")
	}
	h.running = false
	h.window.SetShouldClose(true)
	h.window.Destroy()
	h.window = nil
	glfw.Terminate()
	return nil
}

// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
func (h *glfwHost) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == common.KeyEsc && action == glfw.Press {
		h.running = false
		w.SetShouldClose(true)
		return
	}
	if action == glfw.Repeat {
		return
	}
	slot, pressed, ok := h.setKey(int(key), action == glfw.Press)
	if !ok {
		return
	}
	h.poster.Post(engine.ButtonEvent{Device: h.mouse, Index: slot, Pressed: pressed})
}

// setKey records a key change and returns the state of the slot the key maps to.
// The slot is pressed while any of its keys is held.
func (h *glfwHost) setKey(key int, pressed bool) (int, bool, bool) {
	slot, ok := keySlot(key)
	if !ok {
		return 0, false, false
	}
	keys := h.held[slot]
	if keys == nil {
		keys = make(map[int]bool)
		h.held[slot] = keys
	}
	if pressed {
		keys[key] = true
	} else {
		delete(keys, key)
	}
	return slot, len(keys) > 0, true
}

// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
func (h *glfwHost) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	slot, ok := mouseButtonSlot(int(button))
	if !ok {
		return
	}
	h.poster.Post(engine.ButtonEvent{Device: h.mouse, Index: slot, Pressed: action == glfw.Press})
}

// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
func (h *glfwHost) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	if yoff == 0 {
		return
	}
	h.wheelPending = true
	h.poster.Post(engine.ValuatorEvent{Device: h.mouse, Index: common.MouseValuatorWheel, Value: yoff * h.wheelScale})
}

// cursorCallback only records the position; Poll turns it into a pose.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
func (h *glfwHost) cursorCallback(w *glfw.Window, xpos, ypos float64) {
	width, height := w.GetSize()
	h.cursor.Move(xpos, ypos, width, height)
}

// keySlot maps keyboard key codes onto mouse device buttons.
func keySlot(key int) (int, bool) {
	switch key {
	case common.KeyR:
		return common.MouseSlotKeyR, true
	case common.KeyLeftShift, common.KeyRightShift:
		return common.MouseSlotShift, true
	}
	return 0, false
}

func mouseButtonSlot(button int) (int, bool) {
	switch button {
	case common.MouseButtonLeft:
		return common.MouseSlotLeft, true
	case common.MouseButtonMiddle:
		return common.MouseSlotMiddle, true
	case common.MouseButtonRight:
		return common.MouseSlotRight, true
	}
	return 0, false
}
