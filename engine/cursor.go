package engine

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/device"
	"github.com/Carmen-Shannon/oxy-vr/engine/screen"
	"github.com/Carmen-Shannon/oxy-vr/engine/window"
	"github.com/go-gl/mathgl/mgl64"
)

// EventPoster receives input events. Engine satisfies it.
type EventPoster interface {
	Post(ev Event) bool
}

// cursor implements the Cursor interface.
type cursor struct {
	mu *sync.Mutex

	device device.InputDevice
	window window.Window

	x, y          float64
	width, height int
}

// Cursor is a desktop pointer shown in a window. It keeps the last window-system cursor
// position and turns it into a device pose and ray against the window's current screen and
// viewer. The screen and viewer move under a still cursor, so the pose must be re-derived every
// frame, not only when the window system reports motion.
type Cursor interface {
	// Device returns the device the cursor drives.
	Device() device.InputDevice

	// Move records a new cursor position. Nothing is posted until the next Sync.
	//
	// Parameters:
	//   - x, y: the cursor position in window coordinates (origin top-left, y down)
	//   - width, height: the window size in the same units as x and y
	Move(x, y float64, width, height int)

	// Position returns the last recorded cursor position.
	//
	// Returns:
	//   - float64: x in window coordinates
	//   - float64: y in window coordinates
	Position() (float64, float64)

	// Sync posts the device pose and ray for the recorded position, aimed through the window's
	// current screen from the viewer's current head position.
	//
	// Parameters:
	//   - poster: the receiver of the pose and ray events
	//
	// Returns:
	//   - bool: false if either event was dropped
	Sync(poster EventPoster) bool
}

var _ Cursor = &cursor{}

// NewCursor creates a cursor driving d in w. The initial position is the window center.
// Panics if d or w is nil.
//
// Parameters:
//   - d: the device to drive
//   - w: the window the cursor moves in
//
// Returns:
//   - Cursor: the new cursor
func NewCursor(d device.InputDevice, w window.Window) Cursor {
	if d == nil || w == nil {
		panic("engine: NewCursor requires a non-nil InputDevice and Window")
	}
	return &cursor{
		mu:     &sync.Mutex{},
		device: d,
		window: w,
	}
}

func (c *cursor) Device() device.InputDevice {
	return c.device
}

func (c *cursor) Move(x, y float64, width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.x, c.y = x, y
	c.width, c.height = width, height
}

func (c *cursor) Position() (float64, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.x, c.y
}

func (c *cursor) Sync(poster EventPoster) bool {
	c.mu.Lock()
	x, y, width, height := c.x, c.y, c.width, c.height
	c.mu.Unlock()

	scr := c.window.Screen(common.ChannelLeft)
	head := c.window.Viewer(common.ChannelLeft).HeadPosition()
	pose, dir := CursorPose(scr, head, x, y, width, height)
	posed := poster.Post(PoseEvent{Device: c.device, Transform: pose})
	aimed := poster.Post(RayEvent{Device: c.device, Direction: dir})
	return posed && aimed
}

// CursorScreenPoint maps a cursor position in window coordinates (origin top-left, y down) to
// screen space (origin lower-left, y up, z = 0).
//
// Parameters:
//   - scr: the screen the window shows
//   - x, y: the cursor position
//   - width, height: the window size in the same units as x and y
//
// Returns:
//   - mgl64.Vec3: the point on the screen rectangle
func CursorScreenPoint(scr screen.Screen, x, y float64, width, height int) mgl64.Vec3 {
	w, h := scr.Size()
	if width <= 0 || height <= 0 {
		return mgl64.Vec3{w * 0.5, h * 0.5, 0}
	}
	return mgl64.Vec3{x / float64(width) * w, (1 - y/float64(height)) * h, 0}
}

// CursorPose places the mouse at the viewer's head and aims it through the cursor's point on
// the screen, so the mouse ray always passes through what the cursor covers.
//
// Parameters:
//   - scr: the screen the window shows
//   - head: the viewer's head position in physical space
//   - x, y: the cursor position in window coordinates
//   - width, height: the window size
//
// Returns:
//   - common.ONTransform: the mouse transformation (translation only)
//   - mgl64.Vec3: the ray direction in device coordinates
func CursorPose(scr screen.Screen, head mgl64.Vec3, x, y float64, width, height int) (common.ONTransform, mgl64.Vec3) {
	target := scr.ScreenTransformation().TransformPoint(CursorScreenPoint(scr, x, y, width, height))
	return common.TranslateFromOriginTo(head), target.Sub(head)
}
