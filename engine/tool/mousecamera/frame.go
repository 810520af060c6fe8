package mousecamera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/go-gl/mathgl/mgl64"
)

// RigState is the accumulated camera state of an active tool.
type RigState struct {
	// Azimuth is the rotation around Base[2] in radians, in [-π, π).
	Azimuth float64

	// Elevation is the rotation around Base[0] in radians, in [-π/2, π/2].
	Elevation float64

	// Scale is the rig scale factor. Always > 0.
	Scale float64

	// ScreenCenter is the physical-space point the rig rotates about.
	ScreenCenter mgl64.Vec3

	// Base is the orthonormal environment frame: right, forward, up. Fixed after activation.
	Base [3]mgl64.Vec3
}

// FrameInput is what a frame update reads from the environment.
type FrameInput struct {
	// Sample is the current interaction sample. Only pointer-driven modes read it.
	Sample Sample

	// Head is the controlled viewer's head position in physical space.
	Head mgl64.Vec3

	// ScreenTransform maps screen space to physical space.
	ScreenTransform common.ONTransform

	// ScreenDiagonal normalizes pointer displacements.
	ScreenDiagonal float64
}

// Step advances m by one frame, updating s.
//
// Parameters:
//   - m: the current mode
//   - s: the rig state to update
//   - in: the frame's environment input
//   - cfg: the tool settings
//
// Returns:
//   - Mode: the mode for the next frame (pointer-driven modes carry in.Sample as their last sample)
//   - bool: true if s changed and the camera must be re-applied
func Step(m Mode, s *RigState, in FrameInput, cfg Configuration) (Mode, bool) {
	switch mm := m.(type) {
	case DollyingWheel:
		s.ScreenCenter = s.ScreenCenter.Add(s.ScreenCenter.Sub(in.Head).Mul(cfg.WheelDollyFactor * mm.Value))
		return m, true

	case ScalingWheel:
		s.Scale *= math.Pow(cfg.WheelScaleFactor, -mm.Value)
		return m, true

	case Rotating:
		if !bothValid(mm.Last, in.Sample) {
			return Rotating{Last: in.Sample}, false
		}
		d := in.Sample.Pos.Sub(mm.Last.Pos)
		s.Azimuth = common.WrapAngle(s.Azimuth - d[0]*cfg.RotateFactor/in.ScreenDiagonal)
		s.Elevation = common.ClampElevation(s.Elevation + d[1]*cfg.RotateFactor/in.ScreenDiagonal)
		return Rotating{Last: in.Sample}, true

	case Panning:
		if !bothValid(mm.Last, in.Sample) {
			return Panning{Last: in.Sample}, false
		}
		s.ScreenCenter = s.ScreenCenter.Add(in.ScreenTransform.TransformVector(mm.Last.Pos.Sub(in.Sample.Pos)))
		return Panning{Last: in.Sample}, true

	case Dollying:
		if !bothValid(mm.Last, in.Sample) {
			return Dollying{Last: in.Sample}, false
		}
		dist := in.Sample.Pos.Sub(mm.Last.Pos).Dot(cfg.DollyingDirection) * cfg.DollyFactor / in.ScreenDiagonal
		s.ScreenCenter = s.ScreenCenter.Add(s.ScreenCenter.Sub(in.Head).Mul(dist))
		return Dollying{Last: in.Sample}, true

	case Scaling:
		if !bothValid(mm.Last, in.Sample) {
			return Scaling{Last: in.Sample}, false
		}
		s.Scale *= math.Exp(mm.Last.Pos.Sub(in.Sample.Pos).Dot(cfg.ScalingDirection) * cfg.ScaleFactor / in.ScreenDiagonal)
		return Scaling{Last: in.Sample}, true
	}
	return m, false
}

func bothValid(last, current Sample) bool {
	return last.Valid && current.Valid
}

// InteractionSample intersects a physical-space pointing ray with the screen plane.
//
// Parameters:
//   - ray: the pointing ray in physical space
//   - screenTransform: screen space to physical space
//
// Returns:
//   - Sample: the screen-space hit point, invalid if the ray misses the front of the plane
func InteractionSample(ray common.Ray, screenTransform common.ONTransform) Sample {
	pos, ok := ray.InverseTransform(screenTransform).IntersectZPlane()
	return Sample{Valid: ok, Pos: pos}
}
