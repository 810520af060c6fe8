package mousecamera

import (
	"math"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/config"
	"github.com/Carmen-Shannon/oxy-vr/engine/device"
	"github.com/Carmen-Shannon/oxy-vr/engine/environment"
	"github.com/Carmen-Shannon/oxy-vr/engine/overlay"
	"github.com/Carmen-Shannon/oxy-vr/engine/rig"
	"github.com/Carmen-Shannon/oxy-vr/engine/screen"
	"github.com/Carmen-Shannon/oxy-vr/engine/tool"
	"github.com/Carmen-Shannon/oxy-vr/engine/viewer"
	"github.com/Carmen-Shannon/oxy-vr/engine/window"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deskRig is a 0.4 x 0.3 screen standing in the x-z plane facing -y, a viewer 0.6 in front of
// its center, and a mouse whose ray starts at the viewer's head.
type deskRig struct {
	env     environment.Environment
	manager tool.Manager
	screen  screen.Screen
	viewer  viewer.Viewer
	mouse   device.InputDevice
	head    mgl64.Vec3
}

func newDeskRig(t *testing.T, yaml string, screenOpts []screen.ScreenBuilderOption, viewerOpts ...viewer.ViewerBuilderOption) *deskRig {
	t.Helper()
	r := &deskRig{head: mgl64.Vec3{0, -0.6, 0.15}}
	opts := append([]screen.ScreenBuilderOption{screen.WithTransform(
		common.NewONTransform(mgl64.Vec3{-0.2, 0, 0}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0})))}, screenOpts...)
	r.screen = screen.NewScreen("desk", 0.4, 0.3, opts...)
	vopts := append([]viewer.ViewerBuilderOption{viewer.WithHeadTransform(common.TranslateFromOriginTo(r.head))}, viewerOpts...)
	r.viewer = viewer.NewViewer("user", vopts...)
	r.mouse = device.NewInputDevice("mouse",
		device.WithButtons(common.MouseSlotCount), device.WithValuators(1),
		device.WithTransformation(common.TranslateFromOriginTo(r.head)))
	r.env = environment.NewEnvironment(
		environment.WithWindow(window.NewWindow(r.screen, r.viewer)),
		environment.WithDevice(r.mouse))

	settings := config.NewFile()
	if yaml != "" {
		require.NoError(t, settings.LoadReader(strings.NewReader(yaml), "yaml"))
	}
	r.manager = tool.NewManager(r.env, settings)
	r.manager.RegisterFactory(NewFactory(r.manager))
	return r
}

func (r *deskRig) assignment() tool.InputAssignment {
	return tool.InputAssignment{
		Buttons: []tool.Slot{
			{Device: r.mouse, Index: common.MouseSlotLeft},
			{Device: r.mouse, Index: common.MouseSlotRight},
			{Device: r.mouse, Index: common.MouseSlotShift},
			{Device: r.mouse, Index: common.MouseSlotKeyR},
		},
		Valuators: []tool.Slot{{Device: r.mouse, Index: common.MouseValuatorWheel}},
	}
}

func (r *deskRig) create(t *testing.T, instance *config.Section) Tool {
	t.Helper()
	created, err := r.manager.CreateTool(ClassName, r.assignment(), instance)
	require.NoError(t, err)
	return created.(Tool)
}

// aim points the mouse ray at a screen-space point of the screen's current placement.
func (r *deskRig) aim(x, y float64) {
	target := r.screen.Transform().TransformPoint(mgl64.Vec3{x, y, 0})
	r.mouse.SetDeviceRay(target.Sub(r.head), 0)
}

func (r *deskRig) aimAway() {
	r.mouse.SetDeviceRay(mgl64.Vec3{0, -1, 0}, 0)
}

func (r *deskRig) button(slot int, pressed bool) {
	if r.mouse.SetButtonState(slot, pressed) {
		r.manager.ButtonChanged(r.mouse, slot, pressed)
	}
}

func (r *deskRig) wheel(v float64) {
	if r.mouse.SetValuatorValue(common.MouseValuatorWheel, v) {
		r.manager.ValuatorChanged(r.mouse, common.MouseValuatorWheel, v)
	}
}

func TestFactoryMetadata(t *testing.T) {
	r := newDeskRig(t, "", nil)
	f := r.manager.Factory(ClassName)
	require.NotNil(t, f)
	assert.Equal(t, "Mouse Camera Control", f.Name())
	assert.Equal(t, tool.Layout{NumButtons: 4, NumValuators: 1}, f.Layout())
	assert.Equal(t, "Rotate", f.ButtonFunction(0))
	assert.Equal(t, "Pan", f.ButtonFunction(1))
	assert.Equal(t, "Zoom/Dolly Switch", f.ButtonFunction(2))
	assert.Equal(t, "Reset Camera", f.ButtonFunction(3))
	assert.Equal(t, "", f.ButtonFunction(4))
	assert.Equal(t, "Quick Zoom/Dolly", f.ValuatorFunction(0))

	_, err := f.CreateTool(tool.InputAssignment{}, nil)
	assert.ErrorIs(t, err, tool.ErrBadAssignment)
}

func TestFactoryWithoutDisplaySize(t *testing.T) {
	env := environment.NewEnvironment(environment.WithDisplaySize(0))
	f := NewFactory(tool.NewManager(env, nil)).(*factory)

	assert.Equal(t, 0.0, f.config.SpinThreshold)
	assert.False(t, math.IsInf(f.config.SpinThreshold, 0))
}

func TestInitialRigState(t *testing.T) {
	r := newDeskRig(t, "", nil)
	mc := r.create(t, nil)

	require.True(t, mc.Active())
	s := mc.State()
	assert.InDelta(t, 0, s.Azimuth, 1e-12)
	assert.InDelta(t, 0, s.Elevation, 1e-12)
	assert.Equal(t, 1.0, s.Scale)
	assert.True(t, common.VecNear(s.ScreenCenter, mgl64.Vec3{0, 0, 0.15}, 1e-12))
	assert.Equal(t, [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, s.Base)
	assert.Equal(t, ModeIdle, mc.Mode().Kind())
	assert.False(t, mc.Dolly())
}

func TestInitialElevationAndAzimuth(t *testing.T) {
	r := newDeskRig(t, "", nil)
	// look up at the screen center from below and to the right
	r.viewer.DetachFromDevice(common.TranslateFromOriginTo(mgl64.Vec3{0.6, -0.6, -0.45}))
	mc := r.create(t, nil)

	viewDir := mgl64.Vec3{-0.6, 0.6, 0.6}.Normalize()
	s := mc.State()
	assert.InDelta(t, math.Asin(viewDir[2]), s.Elevation, 1e-12)
	assert.InDelta(t, math.Atan2(0.6, 0.6), s.Azimuth, 1e-12)
}

func TestInitialElevationStraightDown(t *testing.T) {
	r := newDeskRig(t, "", nil)
	r.viewer.DetachFromDevice(common.TranslateFromOriginTo(mgl64.Vec3{0, 0, 1.15}))
	mc := r.create(t, nil)

	s := mc.State()
	assert.Equal(t, -math.Pi/2, s.Elevation)
	assert.Equal(t, 0.0, s.Azimuth)
}

func TestActivateDeactivateRestoresBitIdentical(t *testing.T) {
	wall := device.NewInputDevice("wall", device.WithTransformation(
		common.NewONTransform(mgl64.Vec3{0.3, 0.1, 0}, mgl64.QuatRotate(0.3, mgl64.Vec3{0, 0, 1}))))
	headset := device.NewInputDevice("headset", device.WithTransformation(
		common.NewONTransform(mgl64.Vec3{0, -0.2, 0.1}, mgl64.QuatRotate(-0.1, mgl64.Vec3{1, 0, 0}))))
	r := newDeskRig(t, "", []screen.ScreenBuilderOption{screen.WithDevice(wall)},
		viewer.WithDevice(headset),
		viewer.WithEyes(mgl64.Vec3{0.001, 0.002, 0.003}, mgl64.Vec3{-0.0311, 0, 0.0007}, mgl64.Vec3{0.0339, 0, -0.0004}))

	transform := r.screen.Transform()
	w, h := r.screen.Size()
	headDevice := r.viewer.HeadDeviceTransformation()
	var eyes [3]mgl64.Vec3
	for _, e := range []common.Eye{common.EyeMono, common.EyeLeft, common.EyeRight} {
		eyes[e] = r.viewer.DeviceEyePosition(e)
	}

	mc := r.create(t, nil)
	r.manager.RemoveTool(mc)

	assert.False(t, mc.Active())
	assert.Equal(t, transform, r.screen.Transform())
	gw, gh := r.screen.Size()
	assert.Equal(t, w, gw)
	assert.Equal(t, h, gh)
	assert.Equal(t, wall, r.screen.Device())
	assert.Equal(t, headset, r.viewer.Device())
	assert.Equal(t, headDevice, r.viewer.HeadDeviceTransformation())
	for _, e := range []common.Eye{common.EyeMono, common.EyeLeft, common.EyeRight} {
		assert.Equal(t, eyes[e], r.viewer.DeviceEyePosition(e))
	}
}

func TestResetReappliesWithoutChangingState(t *testing.T) {
	r := newDeskRig(t, "", nil)
	screenBefore := r.screen.ScreenTransformation()
	headBefore := r.viewer.HeadTransformation()
	mc := r.create(t, nil)

	// the initial state reproduces the pre-activation pose
	r.button(common.MouseSlotKeyR, true)
	assert.True(t, r.screen.ScreenTransformation().ApproxEqual(screenBefore, 1e-12))
	assert.True(t, r.viewer.HeadTransformation().ApproxEqual(headBefore, 1e-12))
	r.button(common.MouseSlotKeyR, false)

	r.aim(0.2, 0.15)
	r.button(common.MouseSlotLeft, true)
	r.aim(0.25, 0.17)
	r.manager.Frame()
	state := mc.State()
	mode := mc.Mode()
	rotated := r.screen.Transform()

	r.screen.SetTransform(common.IdentityTransform())
	r.button(common.MouseSlotKeyR, true)
	assert.Equal(t, state, mc.State())
	assert.Equal(t, mode, mc.Mode())
	assert.True(t, r.screen.Transform().ApproxEqual(rotated, 1e-12))
}

func TestRotateDragAroundScreenCenter(t *testing.T) {
	r := newDeskRig(t, "", nil)
	mc := r.create(t, nil)

	r.aim(0.2, 0.15)
	r.button(common.MouseSlotLeft, true)
	require.Equal(t, ModeRotating, mc.Mode().Kind())

	r.aim(0.25, 0.15)
	r.manager.Frame()

	s := mc.State()
	assert.InDelta(t, -0.05*8/0.5, s.Azimuth, 1e-9)
	assert.InDelta(t, 0, s.Elevation, 1e-9)
	assert.True(t, common.VecNear(r.screen.Center(), mgl64.Vec3{0, 0, 0.15}, 1e-9))
	// the viewer keeps its distance to the center
	assert.InDelta(t, 0.6, r.viewer.HeadPosition().Sub(r.screen.Center()).Len(), 1e-9)

	r.button(common.MouseSlotLeft, false)
	assert.Equal(t, ModeIdle, mc.Mode().Kind())
}

func TestPanDragMovesCenter(t *testing.T) {
	r := newDeskRig(t, "", nil)
	mc := r.create(t, nil)

	r.aim(0.2, 0.15)
	r.button(common.MouseSlotRight, true)
	require.Equal(t, ModePanning, mc.Mode().Kind())
	r.aim(0.1, 0.15)
	r.manager.Frame()

	// dragging left moves the camera right
	assert.True(t, common.VecNear(mc.State().ScreenCenter, mgl64.Vec3{0.1, 0, 0.15}, 1e-9))
	assert.True(t, common.VecNear(r.screen.Center(), mgl64.Vec3{0.1, 0, 0.15}, 1e-9))
}

func TestWheelScalingScenario(t *testing.T) {
	r := newDeskRig(t, "", nil)
	mc := r.create(t, nil)

	r.wheel(0.5)
	require.Equal(t, ScalingWheel{Value: 0.5}, mc.Mode())
	r.manager.Frame()
	want := math.Pow(0.5, -0.5)
	assert.InDelta(t, want, mc.State().Scale, 1e-12)

	r.wheel(0)
	assert.Equal(t, ModeIdle, mc.Mode().Kind())
	r.manager.Frame()
	assert.InDelta(t, want, mc.State().Scale, 1e-12)
}

func TestWheelDollyMovesTowardViewer(t *testing.T) {
	r := newDeskRig(t, "", nil)
	mc := r.create(t, nil)

	r.button(common.MouseSlotShift, true)
	require.True(t, mc.Dolly())
	r.wheel(1)
	require.Equal(t, ModeDollyingWheel, mc.Mode().Kind())
	r.manager.Frame()

	// center += (center - head) * -0.5
	assert.True(t, common.VecNear(mc.State().ScreenCenter, mgl64.Vec3{0, -0.3, 0.15}, 1e-12))
}

func TestDollySwitchScenario(t *testing.T) {
	r := newDeskRig(t, "", nil)
	mc := r.create(t, nil)
	r.aim(0.2, 0.15)

	r.button(common.MouseSlotRight, true)
	r.button(common.MouseSlotLeft, true)
	require.Equal(t, ModeScaling, mc.Mode().Kind())
	before := mc.State()

	r.button(common.MouseSlotShift, true)
	assert.Equal(t, ModeDollying, mc.Mode().Kind())
	r.button(common.MouseSlotShift, false)
	assert.Equal(t, ModeScaling, mc.Mode().Kind())
	assert.False(t, mc.Dolly())
	assert.Equal(t, before, mc.State())
}

func TestInvertDollyFromInstanceSection(t *testing.T) {
	r := newDeskRig(t, "", nil)
	instance := config.NewFile().Section("instance")
	instance.StoreBool("invertDolly", true)
	mc := r.create(t, &instance)

	assert.True(t, mc.Dolly())
	r.wheel(-0.25)
	assert.Equal(t, DollyingWheel{Value: -0.25}, mc.Mode())

	// holding the switch turns dolly off
	r.button(common.MouseSlotShift, true)
	assert.Equal(t, ScalingWheel{Value: -0.25}, mc.Mode())
}

func TestInvalidSamplesWhileRotating(t *testing.T) {
	r := newDeskRig(t, "", nil)
	mc := r.create(t, nil)

	r.aim(0.2, 0.15)
	r.button(common.MouseSlotLeft, true)

	r.aimAway()
	r.manager.Frame()
	r.manager.Frame()
	assert.Zero(t, mc.State().Azimuth)
	assert.Zero(t, mc.State().Elevation)

	r.aim(0.3, 0.15)
	r.manager.Frame()
	assert.Zero(t, mc.State().Azimuth)

	r.aim(0.32, 0.15)
	r.manager.Frame()
	assert.InDelta(t, -0.02*8/0.5, mc.State().Azimuth, 1e-9)
}

func TestInitializeFailuresLeaveNoTrace(t *testing.T) {
	r := newDeskRig(t, "tools:\n  MouseCameraTool:\n    windowIndex: 2\n", nil)
	_, err := r.manager.CreateTool(ClassName, r.assignment(), nil)
	assert.ErrorIs(t, err, rig.ErrInvalidWindowIndex)
	assert.Empty(t, r.manager.Tools())
	assert.False(t, r.env.Window(0).CheckedOut())
}

func TestSecondToolOnSameWindowIsRejected(t *testing.T) {
	r := newDeskRig(t, "", nil)
	first := r.create(t, nil)

	_, err := r.manager.CreateTool(ClassName, r.assignment(), nil)
	assert.ErrorIs(t, err, rig.ErrRigInUse)
	assert.Len(t, r.manager.Tools(), 1)

	r.manager.RemoveTool(first)
	second := r.create(t, nil)
	assert.True(t, second.Active())
}

func TestDisplayOverlay(t *testing.T) {
	r := newDeskRig(t, "", nil)
	r.create(t, nil)

	var own, other overlay.Lines
	r.manager.Display(0, &own)
	assert.Equal(t, 0, own.Len(), "no crosshair while idle")

	r.aim(0.2, 0.15)
	r.button(common.MouseSlotLeft, true)
	r.manager.Display(0, &own)
	require.Equal(t, 4, own.Len())
	assert.Equal(t, float32(3), own.Segments()[0].Width)
	assert.Equal(t, r.env.BackgroundColor(), own.Segments()[0].Color)
	assert.Equal(t, r.env.ForegroundColor(), own.Segments()[3].Color)

	r.manager.Display(1, &other)
	require.Equal(t, 17, other.Len())
	// the last segment runs from the eye through the screen center
	center := other.Segments()[16]
	assert.True(t, common.VecNear(center.From, r.head, 1e-9))
	dir := center.To.Sub(center.From).Normalize()
	assert.True(t, common.VecNear(dir, mgl64.Vec3{0, 1, 0}, 1e-9))
}

func TestDisplayFollowsControlledWindowAfterReconfigure(t *testing.T) {
	r := newDeskRig(t, "", nil)
	mc := r.create(t, nil)

	s := config.NewFile().Section("retarget")
	s.StoreInt("windowIndex", 1)
	mc.Configure(s)
	require.Equal(t, 1, mc.Configuration().WindowIndex)

	r.aim(0.2, 0.15)
	r.button(common.MouseSlotLeft, true)

	// window 0 stays the controlled one until the next activation
	var own, other overlay.Lines
	r.manager.Display(0, &own)
	r.manager.Display(1, &other)
	assert.Equal(t, 4, own.Len(), "crosshair on the controlled window")
	assert.Equal(t, 17, other.Len(), "frustum on the other windows")
}

func TestDisplayToggles(t *testing.T) {
	r := newDeskRig(t, "tools:\n  MouseCameraTool:\n    showFrustum: false\n    showScreenCenter: false\n", nil)
	r.create(t, nil)
	r.aim(0.2, 0.15)
	r.button(common.MouseSlotLeft, true)

	var lines overlay.Lines
	r.manager.Display(0, &lines)
	r.manager.Display(1, &lines)
	assert.Equal(t, 0, lines.Len())
}

func TestConfigurationRoundTrip(t *testing.T) {
	yaml := `
tools:
  MouseCameraTool:
    rotateFactor: 4
    invertDolly: true
    dollyingDirection: "(0, 0, 1)"
    wheelScaleFactor: 0.25
    showFrustum: false
    unknownKey: 12
`
	r := newDeskRig(t, yaml, nil)
	mc := r.create(t, nil)

	cfg := mc.Configuration()
	assert.Equal(t, 4.0, cfg.RotateFactor)
	assert.True(t, cfg.InvertDolly)
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, cfg.DollyingDirection)
	assert.Equal(t, 0.25, cfg.WheelScaleFactor)
	assert.False(t, cfg.ShowFrustum)
	// untouched defaults
	assert.Equal(t, 8.0, cfg.ScaleFactor)
	assert.Equal(t, mgl64.Vec3{0, -1, 0}, cfg.ScalingDirection)
	assert.InDelta(t, r.env.UISize()/r.env.DisplaySize(), cfg.SpinThreshold, 1e-15)

	out := config.NewFile().Section("saved")
	mc.StoreState(out)
	reread := DefaultConfiguration(0)
	reread.Read(out)
	assert.Equal(t, cfg, reread)
}

func TestNonPositiveWheelScaleFactorIsRejected(t *testing.T) {
	s := config.NewFile().Section("bad")
	s.StoreFloat("wheelScaleFactor", -2)
	cfg := DefaultConfiguration(0)
	cfg.Read(s)
	assert.Equal(t, 0.5, cfg.WheelScaleFactor)
}

func TestApplyScaleResizesRig(t *testing.T) {
	r := newDeskRig(t, "tools:\n  MouseCameraTool:\n    applyScale: true\n", nil)
	mc := r.create(t, nil)
	eyeLeft := r.viewer.DeviceEyePosition(common.EyeLeft)

	r.wheel(1)
	r.manager.Frame()
	require.InDelta(t, 2.0, mc.State().Scale, 1e-12)

	w, h := r.screen.Size()
	assert.InDelta(t, 0.8, w, 1e-12)
	assert.InDelta(t, 0.6, h, 1e-12)
	assert.True(t, common.VecNear(r.screen.Center(), mgl64.Vec3{0, 0, 0.15}, 1e-9))
	assert.True(t, common.VecNear(r.viewer.HeadPosition(), mgl64.Vec3{0, -1.2, 0.15}, 1e-9))
	assert.True(t, common.VecNear(r.viewer.DeviceEyePosition(common.EyeLeft), eyeLeft.Mul(2), 1e-12))

	r.manager.RemoveTool(mc)
	w, h = r.screen.Size()
	assert.Equal(t, 0.4, w)
	assert.Equal(t, 0.3, h)
	assert.Equal(t, eyeLeft, r.viewer.DeviceEyePosition(common.EyeLeft))
}
