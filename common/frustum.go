package common

import "github.com/go-gl/mathgl/mgl64"

// ScreenFrustum is the viewing frustum of an eye looking through a screen rectangle.
// All points are in screen space: the screen spans [0, width] x [0, height] in the z = 0 plane
// and the eye sits in front of it at positive z.
type ScreenFrustum struct {
	Eye    mgl64.Vec3
	Screen [4]mgl64.Vec3 // lower-left, lower-right, upper-right, upper-left
	Front  [4]mgl64.Vec3
	Back   [4]mgl64.Vec3
	Center mgl64.Vec3 // screen center projected onto the back plane
}

// Frustum corner indices for clarity
const (
	FrustumLowerLeft  = 0
	FrustumLowerRight = 1
	FrustumUpperRight = 2
	FrustumUpperLeft  = 3
)

// NewScreenFrustum builds the frustum of eye through a width x height screen.
// The front and back planes are placed at frontDist and backDist from the eye, measured
// along the screen normal, and scaled by the eye's distance to the screen plane.
//
// Parameters:
//   - eye: eye position in screen space (eye[2] must be > 0)
//   - width, height: screen size in physical units
//   - frontDist, backDist: front and back plane distances in physical units
//
// Returns:
//   - ScreenFrustum: the frustum corners
func NewScreenFrustum(eye mgl64.Vec3, width, height, frontDist, backDist float64) ScreenFrustum {
	f := ScreenFrustum{Eye: eye}
	f.Screen[FrustumLowerLeft] = mgl64.Vec3{0, 0, 0}
	f.Screen[FrustumLowerRight] = mgl64.Vec3{width, 0, 0}
	f.Screen[FrustumUpperRight] = mgl64.Vec3{width, height, 0}
	f.Screen[FrustumUpperLeft] = mgl64.Vec3{0, height, 0}

	fp := frontDist / eye[2]
	bp := backDist / eye[2]
	for i := range f.Screen {
		f.Front[i] = AffineCombination(eye, f.Screen[i], fp)
		f.Back[i] = AffineCombination(eye, f.Screen[i], bp)
	}
	f.Center = AffineCombination(eye, mgl64.Vec3{width * 0.5, height * 0.5, 0}, bp)
	return f
}
