package common

import "github.com/go-gl/mathgl/mgl64"

// Ray is a half-line with an origin and a (not necessarily unit) direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point origin + direction*lambda.
func (r Ray) At(lambda float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(lambda))
}

// Transform maps the ray through t.
func (r Ray) Transform(t ONTransform) Ray {
	return Ray{Origin: t.TransformPoint(r.Origin), Direction: t.TransformVector(r.Direction)}
}

// InverseTransform maps the ray through the inverse of t.
func (r Ray) InverseTransform(t ONTransform) Ray {
	return Ray{Origin: t.InverseTransformPoint(r.Origin), Direction: t.InverseTransformVector(r.Direction)}
}

// IntersectZPlane intersects the ray with the plane z = 0 from the front (positive z) side.
// The intersection is rejected when the origin lies on or behind the plane, or when the ray
// runs parallel to or away from it.
//
// Returns:
//   - mgl64.Vec3: the intersection point (zero vector if rejected)
//   - bool: true if the ray hits the plane from the front
func (r Ray) IntersectZPlane() (mgl64.Vec3, bool) {
	if r.Origin[2] <= 0 || r.Direction[2] >= 0 {
		return mgl64.Vec3{}, false
	}
	lambda := (0 - r.Origin[2]) / r.Direction[2]
	return r.At(lambda), true
}
