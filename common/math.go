package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OffAxisFrustum creates an asymmetric perspective projection from near-plane extents.
// Uses the WebGPU clip space depth range [0, 1], unlike mgl64.Frustum which targets OpenGL's
// [-1, 1]. This is the projection of an eye looking through a fixed screen rectangle rather
// than a symmetric field-of-view projection.
//
// Parameters:
//   - left, right, bottom, top: near-plane extents in eye space
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl64.Mat4: the column-major projection matrix
func OffAxisFrustum(left, right, bottom, top, near, far float64) mgl64.Mat4 {
	var m mgl64.Mat4
	m[0] = 2 * near / (right - left)
	m[5] = 2 * near / (top - bottom)
	m[8] = (right + left) / (right - left)
	m[9] = (top + bottom) / (top - bottom)
	m[10] = far / (near - far)
	m[11] = -1
	m[14] = near * far / (near - far)
	return m
}

// Mat4f narrows a double precision matrix to the float32 layout uploaded to the GPU.
func Mat4f(m mgl64.Mat4) [16]float32 {
	var out [16]float32
	for i := range 16 {
		out[i] = float32(m[i])
	}
	return out
}

// WrapAngle folds an angle into [-π, π) by adding or subtracting whole turns.
//
// Parameters:
//   - angle: angle in radians
//
// Returns:
//   - float64: the wrapped angle
func WrapAngle(angle float64) float64 {
	if math.IsInf(angle, 0) || math.IsNaN(angle) {
		return angle
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	for angle >= math.Pi {
		angle -= 2 * math.Pi
	}
	return angle
}

// ClampElevation saturates an elevation angle to [-π/2, π/2].
func ClampElevation(elevation float64) float64 {
	return mgl64.Clamp(elevation, -math.Pi/2, math.Pi/2)
}

// AffineCombination returns a + (b - a) * w.
func AffineCombination(a, b mgl64.Vec3, w float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(w))
}

// VecNear reports whether every component of a and b differs by at most tolerance.
// Unlike mgl64's ApproxEqualThreshold the tolerance is absolute, so values near zero compare
// the same as any other.
//
// Parameters:
//   - a, b: the vectors to compare
//   - tolerance: the largest allowed per-component difference
//
// Returns:
//   - bool: true if the vectors are within tolerance
func VecNear(a, b mgl64.Vec3, tolerance float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}
	return true
}

// Mat4Near is VecNear for matrices.
func Mat4Near(a, b mgl64.Mat4, tolerance float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}
	return true
}

func quatNear(a, b mgl64.Quat, tolerance float64) bool {
	return math.Abs(a.W-b.W) <= tolerance && VecNear(a.V, b.V, tolerance)
}

// ToVec3f converts a double precision vector to the float32 layout used by GPU types.
func ToVec3f(v mgl64.Vec3) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}
