package common

import (
	"github.com/go-gl/mathgl/mgl64"
)

// ONTransform is an orthonormal (rigid body) transformation: a rotation followed by a translation.
// It is the transformation type used for devices, screens, and viewers in physical space.
// The zero value is not a valid transformation; use IdentityTransform.
type ONTransform struct {
	// Translation is applied after the rotation.
	Translation mgl64.Vec3

	// Rotation is a unit quaternion.
	Rotation mgl64.Quat
}

// IdentityTransform returns the identity transformation.
//
// Returns:
//   - ONTransform: the identity transformation
func IdentityTransform() ONTransform {
	return ONTransform{Rotation: mgl64.QuatIdent()}
}

// NewONTransform builds a transformation from a translation and a rotation.
//
// Parameters:
//   - translation: the translation applied after rotating
//   - rotation: the rotation (normalized before use)
//
// Returns:
//   - ONTransform: the combined transformation
func NewONTransform(translation mgl64.Vec3, rotation mgl64.Quat) ONTransform {
	return ONTransform{Translation: translation, Rotation: rotation.Normalize()}
}

// TranslateFromOriginTo returns a pure translation moving the origin to p.
//
// Parameters:
//   - p: the target point
//
// Returns:
//   - ONTransform: the translation
func TranslateFromOriginTo(p mgl64.Vec3) ONTransform {
	return ONTransform{Translation: p, Rotation: mgl64.QuatIdent()}
}

// TranslateToOriginFrom returns a pure translation moving p to the origin.
//
// Parameters:
//   - p: the point that ends up at the origin
//
// Returns:
//   - ONTransform: the translation
func TranslateToOriginFrom(p mgl64.Vec3) ONTransform {
	return ONTransform{Translation: p.Mul(-1), Rotation: mgl64.QuatIdent()}
}

// RotateAxis returns a pure rotation by angle radians around axis (right-handed).
// The axis does not need to be normalized.
//
// Parameters:
//   - axis: the rotation axis
//   - angle: the rotation angle in radians
//
// Returns:
//   - ONTransform: the rotation
func RotateAxis(axis mgl64.Vec3, angle float64) ONTransform {
	return ONTransform{Rotation: mgl64.QuatRotate(angle, axis.Normalize())}
}

// Mul composes two transformations. The result applies o first, then t.
//
// Parameters:
//   - o: the transformation applied first
//
// Returns:
//   - ONTransform: t ∘ o
func (t ONTransform) Mul(o ONTransform) ONTransform {
	return ONTransform{
		Translation: t.Translation.Add(t.Rotation.Rotate(o.Translation)),
		Rotation:    t.Rotation.Mul(o.Rotation),
	}
}

// Inverse returns the inverse transformation.
//
// Returns:
//   - ONTransform: the inverse of t
func (t ONTransform) Inverse() ONTransform {
	inv := t.Rotation.Conjugate()
	return ONTransform{
		Translation: inv.Rotate(t.Translation).Mul(-1),
		Rotation:    inv,
	}
}

// TransformPoint applies the transformation to a point.
func (t ONTransform) TransformPoint(p mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(p).Add(t.Translation)
}

// TransformVector applies the rotational part of the transformation to a direction vector.
func (t ONTransform) TransformVector(v mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Rotate(v)
}

// InverseTransformPoint applies the inverse transformation to a point.
func (t ONTransform) InverseTransformPoint(p mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Conjugate().Rotate(p.Sub(t.Translation))
}

// InverseTransformVector applies the inverse rotation to a direction vector.
func (t ONTransform) InverseTransformVector(v mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Conjugate().Rotate(v)
}

// Origin returns the image of the origin, i.e. the translation.
func (t ONTransform) Origin() mgl64.Vec3 {
	return t.Translation
}

// Renormalize re-normalizes the rotation to suppress accumulated floating-point drift.
// A rotation that is already of unit length (within mgl64's epsilon) is returned unchanged.
//
// Returns:
//   - ONTransform: the renormalized transformation
func (t ONTransform) Renormalize() ONTransform {
	return ONTransform{Translation: t.Translation, Rotation: t.Rotation.Normalize()}
}

// ApproxEqual reports whether the translations and rotations of two transformations agree
// component by component within an absolute threshold.
// Quaternions q and -q describe the same rotation and compare equal.
//
// Parameters:
//   - o: the transformation to compare against
//   - threshold: per-component tolerance
//
// Returns:
//   - bool: true if the transformations are approximately equal
func (t ONTransform) ApproxEqual(o ONTransform, threshold float64) bool {
	if !VecNear(t.Translation, o.Translation, threshold) {
		return false
	}
	if quatNear(t.Rotation, o.Rotation, threshold) {
		return true
	}
	return quatNear(t.Rotation.Scale(-1), o.Rotation, threshold)
}

// Mat4 converts the transformation to a column-major homogeneous matrix.
func (t ONTransform) Mat4() mgl64.Mat4 {
	return mgl64.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2]).Mul4(t.Rotation.Mat4())
}
