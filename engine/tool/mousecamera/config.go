package mousecamera

import (
	"github.com/Carmen-Shannon/oxy-vr/engine/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"
)

// Configuration keys, relative to the tool class or instance section.
const (
	keyWindowIndex       = "./windowIndex"
	keyRotateFactor      = "./rotateFactor"
	keyInvertDolly       = "./invertDolly"
	keyDollyCenter       = "./dollyCenter"
	keyScaleCenter       = "./scaleCenter"
	keyDollyingDirection = "./dollyingDirection"
	keyScalingDirection  = "./scalingDirection"
	keyDollyFactor       = "./dollyFactor"
	keyScaleFactor       = "./scaleFactor"
	keyWheelDollyFactor  = "./wheelDollyFactor"
	keyWheelScaleFactor  = "./wheelScaleFactor"
	keySpinThreshold     = "./spinThreshold"
	keyShowScreenCenter  = "./showScreenCenter"
	keyShowFrustum       = "./showFrustum"
	keyApplyScale        = "./applyScale"
)

// Configuration holds the settings of a mouse camera tool. Factories load one from the class
// section; each tool copies it and may override it from its instance section.
type Configuration struct {
	// WindowIndex selects the window whose screen/viewer pair the tool controls.
	WindowIndex int

	// RotateFactor is the rotation in radians per screen diagonal of pointer travel.
	RotateFactor float64

	// InvertDolly inverts the zoom/dolly switch: dolly is on while the switch is released.
	InvertDolly bool

	// DollyCenter and ScaleCenter are stored and written back but do not affect the camera.
	DollyCenter bool
	ScaleCenter bool

	// DollyingDirection is the screen-space pointer direction that dollies toward the scene.
	DollyingDirection mgl64.Vec3

	// ScalingDirection is the screen-space pointer direction that shrinks the rig.
	ScalingDirection mgl64.Vec3

	DollyFactor float64
	ScaleFactor float64

	// WheelDollyFactor is the fraction of the head to screen center distance moved per wheel unit.
	WheelDollyFactor float64

	// WheelScaleFactor is the scale change per wheel unit. Must be > 0.
	WheelScaleFactor float64

	// SpinThreshold is the pointer speed that would start spinning. Stored only.
	SpinThreshold float64

	ShowScreenCenter bool
	ShowFrustum      bool

	// ApplyScale resizes the screen and spreads the viewer's eyes with the rig scale
	// instead of keeping scale as rig state only.
	ApplyScale bool
}

// DefaultConfiguration returns the built-in settings.
//
// Parameters:
//   - spinThreshold: the spin threshold, normally the UI size divided by the display size
//
// Returns:
//   - Configuration: the default settings
func DefaultConfiguration(spinThreshold float64) Configuration {
	return Configuration{
		WindowIndex:       0,
		RotateFactor:      8,
		InvertDolly:       false,
		DollyCenter:       true,
		ScaleCenter:       true,
		DollyingDirection: mgl64.Vec3{0, -1, 0},
		ScalingDirection:  mgl64.Vec3{0, -1, 0},
		DollyFactor:       1,
		ScaleFactor:       8,
		WheelDollyFactor:  -0.5,
		WheelScaleFactor:  0.5,
		SpinThreshold:     spinThreshold,
		ShowScreenCenter:  true,
		ShowFrustum:       true,
		ApplyScale:        false,
	}
}

// Read overrides the settings present in s. Missing keys keep their current values.
//
// Parameters:
//   - s: the configuration section to read
func (c *Configuration) Read(s config.Section) {
	c.WindowIndex = s.RetrieveInt(keyWindowIndex, c.WindowIndex)
	c.RotateFactor = s.RetrieveFloat(keyRotateFactor, c.RotateFactor)
	c.InvertDolly = s.RetrieveBool(keyInvertDolly, c.InvertDolly)
	c.DollyCenter = s.RetrieveBool(keyDollyCenter, c.DollyCenter)
	c.ScaleCenter = s.RetrieveBool(keyScaleCenter, c.ScaleCenter)
	c.DollyingDirection = s.RetrieveVector(keyDollyingDirection, c.DollyingDirection)
	c.ScalingDirection = s.RetrieveVector(keyScalingDirection, c.ScalingDirection)
	c.DollyFactor = s.RetrieveFloat(keyDollyFactor, c.DollyFactor)
	c.ScaleFactor = s.RetrieveFloat(keyScaleFactor, c.ScaleFactor)
	c.WheelDollyFactor = s.RetrieveFloat(keyWheelDollyFactor, c.WheelDollyFactor)
	if f := s.RetrieveFloat(keyWheelScaleFactor, c.WheelScaleFactor); f > 0 {
		c.WheelScaleFactor = f
	} else {
		log.Warn().Str("section", s.Path()).Float64("wheelScaleFactor", f).Msg("wheelScaleFactor must be positive, keeping previous value")
	}
	c.SpinThreshold = s.RetrieveFloat(keySpinThreshold, c.SpinThreshold)
	c.ShowScreenCenter = s.RetrieveBool(keyShowScreenCenter, c.ShowScreenCenter)
	c.ShowFrustum = s.RetrieveBool(keyShowFrustum, c.ShowFrustum)
	c.ApplyScale = s.RetrieveBool(keyApplyScale, c.ApplyScale)
}

// Write stores every setting into s.
//
// Parameters:
//   - s: the configuration section to write
func (c Configuration) Write(s config.Section) {
	s.StoreInt(keyWindowIndex, c.WindowIndex)
	s.StoreFloat(keyRotateFactor, c.RotateFactor)
	s.StoreBool(keyInvertDolly, c.InvertDolly)
	s.StoreBool(keyDollyCenter, c.DollyCenter)
	s.StoreBool(keyScaleCenter, c.ScaleCenter)
	s.StoreVector(keyDollyingDirection, c.DollyingDirection)
	s.StoreVector(keyScalingDirection, c.ScalingDirection)
	s.StoreFloat(keyDollyFactor, c.DollyFactor)
	s.StoreFloat(keyScaleFactor, c.ScaleFactor)
	s.StoreFloat(keyWheelDollyFactor, c.WheelDollyFactor)
	s.StoreFloat(keyWheelScaleFactor, c.WheelScaleFactor)
	s.StoreFloat(keySpinThreshold, c.SpinThreshold)
	s.StoreBool(keyShowScreenCenter, c.ShowScreenCenter)
	s.StoreBool(keyShowFrustum, c.ShowFrustum)
	s.StoreBool(keyApplyScale, c.ApplyScale)
}
