package engine

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/screen"
	"github.com/Carmen-Shannon/oxy-vr/engine/tool/mousecamera"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deskScreen() screen.Screen {
	return screen.NewScreen("desk", 0.4, 0.3, screen.WithTransform(
		common.NewONTransform(mgl64.Vec3{-0.2, 0, 0}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0}))))
}

func TestCursorScreenPointFlipsY(t *testing.T) {
	scr := deskScreen()

	assert.True(t, common.VecNear(CursorScreenPoint(scr, 0, 0, 800, 600), mgl64.Vec3{0, 0.3, 0}, 1e-12))
	assert.True(t, common.VecNear(CursorScreenPoint(scr, 800, 600, 800, 600), mgl64.Vec3{0.4, 0, 0}, 1e-12))
	assert.True(t, common.VecNear(CursorScreenPoint(scr, 400, 300, 800, 600), mgl64.Vec3{0.2, 0.15, 0}, 1e-12))
}

func TestCursorScreenPointWithoutSize(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{0.2, 0.15, 0}, CursorScreenPoint(deskScreen(), 10, 10, 0, 0))
}

func TestCursorPoseAimsThroughCursor(t *testing.T) {
	scr := deskScreen()
	head := mgl64.Vec3{0, -0.6, 0.15}

	pose, dir := CursorPose(scr, head, 400, 300, 800, 600)
	assert.Equal(t, head, pose.Origin())
	assert.True(t, common.VecNear(dir, mgl64.Vec3{0, 0.6, 0}, 1e-12))

	// the top-left corner in window coordinates is the upper-left screen corner
	_, dir = CursorPose(scr, head, 0, 0, 800, 600)
	hit := head.Add(dir)
	assert.True(t, common.VecNear(hit, mgl64.Vec3{-0.2, 0, 0.3}, 1e-12))
}

func TestNewCursorRequiresDeviceAndWindow(t *testing.T) {
	e, mouse, _ := newDesk(t)
	assert.Panics(t, func() { NewCursor(nil, e.Environment().Window(0)) })
	assert.Panics(t, func() { NewCursor(mouse, nil) })
}

func TestCursorSyncPostsPoseAndRay(t *testing.T) {
	e, mouse, _ := newDesk(t)
	c := NewCursor(mouse, e.Environment().Window(0))
	assert.Equal(t, mouse, c.Device())

	c.Move(0, 0, 800, 600)
	x, y := c.Position()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
	assert.Equal(t, mgl64.Vec3{0, -0.6, 0.15}, mouse.Position(), "nothing moves before Sync")

	require.True(t, c.Sync(e))
	e.Step(0)
	// the ray runs from the head through the upper-left screen corner
	assert.True(t, common.VecNear(mouse.Ray().At(1), mgl64.Vec3{-0.2, 0, 0.3}, 1e-12))
}

func TestCursorSyncReportsDroppedEvents(t *testing.T) {
	e, mouse, _ := newDesk(t, WithEventBuffer(1))
	c := NewCursor(mouse, e.Environment().Window(0))

	assert.False(t, c.Sync(e), "the ray does not fit behind the pose")
	assert.Equal(t, uint64(1), e.Dropped())
}

// holdCursor drags with one button from the window center to (x, 300), then keeps the
// cursor still for a few steps, syncing before every step the way a host poll does.
// It returns the tool state right after the drag and after the still steps.
func holdCursor(t *testing.T, slot int, x float64) (mousecamera.RigState, mousecamera.RigState) {
	t.Helper()
	e, mouse, mc := newDesk(t)
	c := NewCursor(mouse, e.Environment().Window(0))
	step := func() {
		require.True(t, c.Sync(e))
		e.Step(1.0 / 60)
	}

	c.Move(400, 300, 800, 600)
	step()
	e.Post(ButtonEvent{Device: mouse, Index: slot, Pressed: true})
	step()
	c.Move(x, 300, 800, 600)
	step()
	dragged := mc.State()

	for range 5 {
		step()
	}
	return dragged, mc.State()
}

func TestStillCursorStopsPanning(t *testing.T) {
	dragged, held := holdCursor(t, common.MouseSlotRight, 200)

	// dragging left moves the camera right, once
	assert.True(t, common.VecNear(dragged.ScreenCenter, mgl64.Vec3{0.1, 0, 0.15}, 1e-9), "center %v", dragged.ScreenCenter)
	assert.True(t, common.VecNear(held.ScreenCenter, dragged.ScreenCenter, 1e-9), "center %v", held.ScreenCenter)
}

func TestStillCursorStopsRotating(t *testing.T) {
	dragged, held := holdCursor(t, common.MouseSlotLeft, 500)

	assert.Less(t, dragged.Azimuth, 0.0)
	assert.InDelta(t, dragged.Azimuth, held.Azimuth, 1e-9)
	assert.InDelta(t, dragged.Elevation, held.Elevation, 1e-9)
}
