package mousecamera

import "github.com/go-gl/mathgl/mgl64"

// ModeKind identifies an interaction mode.
type ModeKind int

const (
	ModeIdle ModeKind = iota
	ModeRotating
	ModePanning
	ModeDollying
	ModeScaling
	ModeDollyingWheel
	ModeScalingWheel
	ModeSpinning
)

// String returns the mode's name.
func (k ModeKind) String() string {
	switch k {
	case ModeIdle:
		return "idle"
	case ModeRotating:
		return "rotating"
	case ModePanning:
		return "panning"
	case ModeDollying:
		return "dollying"
	case ModeScaling:
		return "scaling"
	case ModeDollyingWheel:
		return "dollying-wheel"
	case ModeScalingWheel:
		return "scaling-wheel"
	case ModeSpinning:
		return "spinning"
	}
	return "unknown"
}

// Sample is the point where the tool's pointing ray hits the controlled screen, in screen space.
// Pos is meaningful only if Valid is set.
type Sample struct {
	Valid bool
	Pos   mgl64.Vec3
}

// Mode is the tool's interaction state. It is one of Idle, Rotating, Panning, Dollying, Scaling,
// DollyingWheel, ScalingWheel or Spinning, each carrying only the data its frame update needs.
type Mode interface {
	// Kind returns the mode's identifier.
	Kind() ModeKind

	isMode()
}

// Idle does nothing.
type Idle struct{}

// Spinning is reserved for continued rotation after a release. Its frame update is a no-op.
type Spinning struct{}

// Rotating turns the rig around the screen center by pointer displacement.
type Rotating struct{ Last Sample }

// Panning drags the screen center along the screen plane.
type Panning struct{ Last Sample }

// Dollying moves the screen center toward or away from the viewer by pointer displacement.
type Dollying struct{ Last Sample }

// Scaling changes the rig scale by pointer displacement.
type Scaling struct{ Last Sample }

// DollyingWheel moves the screen center every frame by the retained valuator value.
type DollyingWheel struct{ Value float64 }

// ScalingWheel changes the rig scale every frame by the retained valuator value.
type ScalingWheel struct{ Value float64 }

func (Idle) Kind() ModeKind          { return ModeIdle }
func (Spinning) Kind() ModeKind      { return ModeSpinning }
func (Rotating) Kind() ModeKind      { return ModeRotating }
func (Panning) Kind() ModeKind       { return ModePanning }
func (Dollying) Kind() ModeKind      { return ModeDollying }
func (Scaling) Kind() ModeKind       { return ModeScaling }
func (DollyingWheel) Kind() ModeKind { return ModeDollyingWheel }
func (ScalingWheel) Kind() ModeKind  { return ModeScalingWheel }

func (Idle) isMode()          {}
func (Spinning) isMode()      {}
func (Rotating) isMode()      {}
func (Panning) isMode()       {}
func (Dollying) isMode()      {}
func (Scaling) isMode()       {}
func (DollyingWheel) isMode() {}
func (ScalingWheel) isMode()  {}

// tracksPointer reports whether m is driven by pointer displacement and needs a fresh sample
// every frame.
func tracksPointer(m Mode) bool {
	switch m.(type) {
	case Rotating, Panning, Dollying, Scaling:
		return true
	}
	return false
}
