package engine

import (
	"context"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/device"
	"github.com/Carmen-Shannon/oxy-vr/engine/environment"
	"github.com/Carmen-Shannon/oxy-vr/engine/overlay"
	"github.com/Carmen-Shannon/oxy-vr/engine/screen"
	"github.com/Carmen-Shannon/oxy-vr/engine/tool"
	"github.com/Carmen-Shannon/oxy-vr/engine/tool/mousecamera"
	"github.com/Carmen-Shannon/oxy-vr/engine/viewer"
	"github.com/Carmen-Shannon/oxy-vr/engine/window"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDesk(t *testing.T, options ...EngineBuilderOption) (Engine, device.InputDevice, mousecamera.Tool) {
	t.Helper()
	head := mgl64.Vec3{0, -0.6, 0.15}
	scr := screen.NewScreen("desk", 0.4, 0.3, screen.WithTransform(
		common.NewONTransform(mgl64.Vec3{-0.2, 0, 0}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0}))))
	v := viewer.NewViewer("user", viewer.WithHeadTransform(common.TranslateFromOriginTo(head)))
	mouse := device.NewInputDevice("mouse",
		device.WithButtons(common.MouseSlotCount), device.WithValuators(1),
		device.WithTransformation(common.TranslateFromOriginTo(head)))
	env := environment.NewEnvironment(
		environment.WithWindow(window.NewWindow(scr, v)),
		environment.WithDevice(mouse))

	e := NewEngine(env, options...)
	e.Tools().RegisterFactory(mousecamera.NewFactory(e.Tools()))
	created, err := e.Tools().CreateTool(mousecamera.ClassName, tool.InputAssignment{
		Buttons: []tool.Slot{
			{Device: mouse, Index: common.MouseSlotLeft},
			{Device: mouse, Index: common.MouseSlotRight},
			{Device: mouse, Index: common.MouseSlotShift},
			{Device: mouse, Index: common.MouseSlotKeyR},
		},
		Valuators: []tool.Slot{{Device: mouse, Index: common.MouseValuatorWheel}},
	}, nil)
	require.NoError(t, err)
	return e, mouse, created.(mousecamera.Tool)
}

func TestNewEngineRequiresEnvironment(t *testing.T) {
	assert.Panics(t, func() { NewEngine(nil) })
}

func TestStepAppliesPostedWheelPulse(t *testing.T) {
	e, mouse, mc := newDesk(t)

	require.True(t, e.Post(ValuatorEvent{Device: mouse, Index: common.MouseValuatorWheel, Value: 0.5}))
	assert.Equal(t, mousecamera.ModeIdle, mc.Mode().Kind(), "events wait for the next step")

	e.Step(1.0 / 60)
	want := math.Pow(0.5, -0.5)
	assert.InDelta(t, want, mc.State().Scale, 1e-12)
	assert.Equal(t, 0.5, mouse.ValuatorValue(common.MouseValuatorWheel))

	require.True(t, e.Post(ValuatorEvent{Device: mouse, Index: common.MouseValuatorWheel, Value: 0}))
	e.Step(1.0 / 60)
	assert.Equal(t, mousecamera.ModeIdle, mc.Mode().Kind())
	assert.InDelta(t, want, mc.State().Scale, 1e-12)
	assert.Equal(t, uint64(2), e.Steps())
}

func TestStepForwardsOnlyChangedButtons(t *testing.T) {
	e, mouse, mc := newDesk(t)

	e.Post(ButtonEvent{Device: mouse, Index: common.MouseSlotShift, Pressed: true})
	e.Step(0)
	require.True(t, mc.Dolly())

	// a repeated press is not a change and must not toggle twice
	e.Post(ButtonEvent{Device: mouse, Index: common.MouseSlotShift, Pressed: true})
	e.Step(0)
	assert.True(t, mc.Dolly())

	e.Post(ButtonEvent{Device: mouse, Index: common.MouseSlotShift, Pressed: false})
	e.Step(0)
	assert.False(t, mc.Dolly())
}

func TestPoseAndRayEventsMoveDevice(t *testing.T) {
	e, mouse, _ := newDesk(t)

	e.Post(PoseEvent{Device: mouse, Transform: common.TranslateFromOriginTo(mgl64.Vec3{1, 2, 3})})
	e.Post(RayEvent{Device: mouse, Direction: mgl64.Vec3{0, 0, -1}, Start: 0.5})
	e.Step(0)

	assert.Equal(t, mgl64.Vec3{1, 2, 3}, mouse.Position())
	assert.Equal(t, mgl64.Vec3{0, 0, -1}, mouse.DeviceRayDirection())
	assert.True(t, common.VecNear(mouse.Ray().Origin, mgl64.Vec3{1, 2, 2.5}, 1e-12))
}

func TestRenderCallbackReceivesEachWindowOverlay(t *testing.T) {
	var got []int
	var segments []int
	e, mouse, _ := newDesk(t, WithRenderCallback(func(windowIndex int, lines *overlay.Lines) {
		got = append(got, windowIndex)
		segments = append(segments, lines.Len())
	}))

	e.Step(0)
	// the mouse ray starts at the head and points at the screen center
	e.Post(ButtonEvent{Device: mouse, Index: common.MouseSlotLeft, Pressed: true})
	e.Step(0)
	e.Step(0)

	assert.Equal(t, []int{0, 0, 0}, got)
	assert.Equal(t, []int{0, 4, 4}, segments, "crosshair only while rotating, rebuilt every step")
	require.NotNil(t, e.Overlay(0))
	assert.Equal(t, 4, e.Overlay(0).Len())
	assert.Nil(t, e.Overlay(1))
}

func TestTickCallbackRunsAfterInput(t *testing.T) {
	var pressed bool
	var dt float32
	e, mouse, _ := newDesk(t)
	e.SetTickCallback(func(deltaTime float32) {
		dt = deltaTime
		pressed = mouse.ButtonState(common.MouseSlotLeft)
	})

	e.Post(ButtonEvent{Device: mouse, Index: common.MouseSlotLeft, Pressed: true})
	e.Step(0.25)
	assert.True(t, pressed)
	assert.Equal(t, float32(0.25), dt)
}

func TestPostDropsWhenQueueIsFull(t *testing.T) {
	e, mouse, _ := newDesk(t, WithEventBuffer(2))

	assert.True(t, e.Post(ButtonEvent{Device: mouse, Index: 0, Pressed: true}))
	assert.True(t, e.Post(ButtonEvent{Device: mouse, Index: 0, Pressed: false}))
	assert.False(t, e.Post(ButtonEvent{Device: mouse, Index: 0, Pressed: true}))
	assert.Equal(t, uint64(1), e.Dropped())

	e.Step(0)
	assert.True(t, e.Post(ButtonEvent{Device: mouse, Index: 0, Pressed: true}))
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e, _, mc := newDesk(t, WithTickRate(1000))
	e.SetTickCallback(func(float32) {
		if e.Steps() >= 2 {
			cancel()
		}
	})

	err := e.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, e.Steps(), uint64(2))
	assert.False(t, mc.Active())
	assert.Empty(t, e.Tools().Tools())
}

func TestRunStopsWhenPollFails(t *testing.T) {
	polls := 0
	e, _, mc := newDesk(t, WithTickRate(1000), WithPollCallback(func() bool {
		polls++
		return polls < 3
	}))

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, uint64(2), e.Steps())
	assert.False(t, mc.Active())

	// quitting an already stopped engine is harmless
	e.Quit()
}

func TestQuitStopsRun(t *testing.T) {
	e, _, _ := newDesk(t, WithTickRate(1000))
	e.SetTickCallback(func(float32) { e.Quit() })
	e.SetTickRate(500)

	require.NoError(t, e.Run(context.Background()))
	assert.GreaterOrEqual(t, e.Steps(), uint64(1))
}
