package mousecamera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/rig"
	"github.com/Carmen-Shannon/oxy-vr/engine/screen"
	"github.com/Carmen-Shannon/oxy-vr/engine/viewer"
	"github.com/go-gl/mathgl/mgl64"
)

// composer turns a RigState into screen and viewer transforms.
type composer struct {
	screen screen.Screen
	viewer viewer.Viewer

	base [3]mgl64.Vec3

	// norm maps the rig's pre-activation pose to a frame centered on the initial screen center
	// with zero azimuth and elevation.
	norm common.ONTransform

	screenTransform common.ONTransform
	viewerTransform common.ONTransform
	screenSize      [2]float64
	eyes            [3]mgl64.Vec3

	applyScale bool
}

// newComposer derives the initial rig state from the pair held by lease and builds the
// normalization that makes that state reproduce the pair's current pose.
func newComposer(lease *rig.Lease, up, forward mgl64.Vec3, applyScale bool) (*composer, RigState) {
	b := lease.Binding()
	c := &composer{
		screen:          lease.Screen(),
		viewer:          lease.Viewer(),
		screenTransform: b.Screen.Transform,
		viewerTransform: b.Viewer.HeadTransform,
		screenSize:      [2]float64{b.Screen.Width, b.Screen.Height},
		eyes:            b.Viewer.Eyes,
		applyScale:      applyScale,
	}
	c.base[2] = up.Normalize()
	c.base[0] = forward.Cross(c.base[2]).Normalize()
	c.base[1] = c.base[2].Cross(c.base[0]).Normalize()

	s := RigState{Scale: 1, Base: c.base}
	s.ScreenCenter = c.screenTransform.TransformPoint(mgl64.Vec3{c.screenSize[0] * 0.5, c.screenSize[1] * 0.5, 0})
	viewDir := s.ScreenCenter.Sub(c.viewerTransform.TransformPoint(c.eyes[common.EyeMono])).Normalize()

	el := viewDir.Dot(c.base[2])
	switch {
	case el >= 1:
		s.Elevation = math.Pi / 2
	case el <= -1:
		s.Elevation = -math.Pi / 2
	default:
		s.Elevation = math.Asin(el)
		s.Azimuth = math.Atan2(-viewDir.Dot(c.base[0]), viewDir.Dot(c.base[1]))
	}

	c.norm = common.RotateAxis(c.base[0], -s.Elevation).
		Mul(common.RotateAxis(c.base[2], -s.Azimuth)).
		Mul(common.TranslateToOriginFrom(s.ScreenCenter))
	return c, s
}

// diagonal returns the length of the initial screen diagonal.
func (c *composer) diagonal() float64 {
	return math.Hypot(c.screenSize[0], c.screenSize[1])
}

// cameraTransform builds translate(center) * rotate(up, azimuth) * rotate(right, elevation).
func (c *composer) cameraTransform(s RigState) common.ONTransform {
	return common.TranslateFromOriginTo(s.ScreenCenter).
		Mul(common.RotateAxis(c.base[2], s.Azimuth)).
		Mul(common.RotateAxis(c.base[0], s.Elevation))
}

// apply writes the screen and viewer transforms for s.
func (c *composer) apply(s RigState) {
	camera := c.cameraTransform(s)
	screenLocal := c.norm.Mul(c.screenTransform)
	viewerLocal := c.norm.Mul(c.viewerTransform)
	if c.applyScale {
		// the normalized frame is centered on the screen center, so scaling offsets scales about it
		screenLocal.Translation = screenLocal.Translation.Mul(s.Scale)
		viewerLocal.Translation = viewerLocal.Translation.Mul(s.Scale)
		c.screen.SetSize(c.screenSize[0]*s.Scale, c.screenSize[1]*s.Scale)
		c.viewer.SetDeviceEyePositions(
			c.eyes[common.EyeMono].Mul(s.Scale),
			c.eyes[common.EyeLeft].Mul(s.Scale),
			c.eyes[common.EyeRight].Mul(s.Scale),
		)
	}
	c.screen.SetTransform(camera.Mul(screenLocal).Renormalize())
	c.viewer.DetachFromDevice(camera.Mul(viewerLocal).Renormalize())
}
