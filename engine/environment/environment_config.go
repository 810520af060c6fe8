package environment

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/config"
	"github.com/Carmen-Shannon/oxy-vr/engine/screen"
	"github.com/Carmen-Shannon/oxy-vr/engine/viewer"
	"github.com/Carmen-Shannon/oxy-vr/engine/window"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"
)

// Default desktop rig: a 40 x 30 cm monitor standing upright on the x-z plane facing -y,
// viewed from 60 cm in front of its center.
var (
	defaultScreenOrigin = mgl64.Vec3{-0.2, 0, 0}
	defaultScreenAxis   = mgl64.Vec3{1, 0, 0}
	defaultHead         = mgl64.Vec3{0, -0.6, 0.15}
)

const (
	defaultScreenWidth   = 0.4
	defaultScreenHeight  = 0.3
	defaultScreenAngle   = 90.0
	defaultEyeSeparation = 0.065
)

// FromConfig builds a single-window desktop environment from a configuration section.
//
// Recognized keys (all optional):
//
//	up, forward, uiSize, displaySize, frontPlaneDist, backPlaneDist, foregroundColor, backgroundColor
//	window.title, window.width, window.height
//	screen.width, screen.height, screen.origin, screen.axis, screen.angle (degrees)
//	viewer.head, viewer.eyeSeparation
//
// Parameters:
//   - s: the environment section
//   - options: extra options applied after the configured ones (e.g. WithDevice)
//
// Returns:
//   - Environment: the configured environment
//   - error: an error if a configured size or distance is out of range
func FromConfig(s config.Section, options ...EnvironmentBuilderOption) (Environment, error) {
	sc := s.Sub("screen")
	sw := sc.RetrieveFloat("./width", defaultScreenWidth)
	sh := sc.RetrieveFloat("./height", defaultScreenHeight)
	if sw <= 0 || sh <= 0 {
		return nil, fmt.Errorf("environment: screen size %gx%g must be positive", sw, sh)
	}
	axis := sc.RetrieveVector("./axis", defaultScreenAxis)
	if axis.Len() == 0 {
		return nil, fmt.Errorf("environment: screen axis must be non-zero")
	}
	scr := screen.NewScreen("main", sw, sh, screen.WithTransform(common.NewONTransform(
		sc.RetrieveVector("./origin", defaultScreenOrigin),
		mgl64.QuatRotate(mgl64.DegToRad(sc.RetrieveFloat("./angle", defaultScreenAngle)), axis.Normalize()),
	)))

	vc := s.Sub("viewer")
	sep := vc.RetrieveFloat("./eyeSeparation", defaultEyeSeparation)
	if sep < 0 {
		return nil, fmt.Errorf("environment: eye separation %g must not be negative", sep)
	}
	v := viewer.NewViewer("main",
		viewer.WithHeadTransform(common.TranslateFromOriginTo(vc.RetrieveVector("./head", defaultHead))),
		viewer.WithEyes(mgl64.Vec3{}, mgl64.Vec3{-sep / 2, 0, 0}, mgl64.Vec3{sep / 2, 0, 0}),
	)

	wc := s.Sub("window")
	w := window.NewWindow(scr, v,
		window.WithTitle(wc.RetrieveString("./title", "oxy-vr")),
		window.WithWidth(wc.RetrieveInt("./width", 1280)),
		window.WithHeight(wc.RetrieveInt("./height", 720)),
	)

	front := s.RetrieveFloat("./frontPlaneDist", 0.1)
	back := s.RetrieveFloat("./backPlaneDist", 100)
	if front <= 0 || back <= front {
		return nil, fmt.Errorf("environment: plane distances %g/%g must satisfy 0 < front < back", front, back)
	}
	uiSize := s.RetrieveFloat("./uiSize", 0.25)
	displaySize := s.RetrieveFloat("./displaySize", 12)
	if uiSize <= 0 || displaySize <= 0 {
		return nil, fmt.Errorf("environment: uiSize %g and displaySize %g must be positive", uiSize, displaySize)
	}
	up := s.RetrieveVector("./up", mgl64.Vec3{0, 0, 1})
	forward := s.RetrieveVector("./forward", mgl64.Vec3{0, 1, 0})
	if up.Cross(forward).Len() < 1e-9 {
		return nil, fmt.Errorf("environment: up %v and forward %v must not be parallel", up, forward)
	}

	opts := []EnvironmentBuilderOption{
		WithWindow(w),
		WithFrame(up, forward),
		WithUISize(uiSize),
		WithDisplaySize(displaySize),
		WithPlaneDistances(front, back),
		WithColors(
			rgb(s.RetrieveVector("./foregroundColor", mgl64.Vec3{1, 1, 1})),
			rgb(s.RetrieveVector("./backgroundColor", mgl64.Vec3{0, 0, 0})),
		),
	}
	env := NewEnvironment(append(opts, options...)...)
	log.Debug().Str("window", w.Title()).Float64("screenWidth", sw).Float64("screenHeight", sh).Msg("environment loaded")
	return env, nil
}

func rgb(c mgl64.Vec3) common.Color {
	return common.Color{float32(c[0]), float32(c[1]), float32(c[2]), 1}
}
