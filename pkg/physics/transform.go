// pkg/physics/transform.go
package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Up is the vertical axis of the scene.
var Up = mgl32.Vec3{0, 1, 0}

// Transform is the placement of an object in the scene.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       float32
}

// NewTransform returns a transform at position with no rotation and unit scale.
func NewTransform(position mgl32.Vec3) Transform {
	return Transform{
		Translation: position,
		Rotation:    mgl32.QuatIdent(),
		Scale:       1,
	}
}

// WithScale returns a copy of t scaled by s.
func (t Transform) WithScale(s float32) Transform {
	t.Scale = s
	return t
}

// RotateY applies a relative rotation of angle radians about the vertical axis.
func (t *Transform) RotateY(angle float32) {
	t.Rotation = mgl32.QuatRotate(angle, Up).Mul(t.Rotation).Normalize()
}

// LookAt orients the transform so that its forward axis (-Z) points at target.
// A target at the transform's own position leaves the rotation unchanged.
func (t *Transform) LookAt(target, up mgl32.Vec3) {
	dir := target.Sub(t.Translation)
	if dir.Len() == 0 {
		return
	}
	t.Rotation = lookRotation(dir, up)
}

// Forward returns the direction the transform faces.
func (t Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}

// LookingAt returns a transform at position facing target.
func LookingAt(position, target, up mgl32.Vec3) Transform {
	t := NewTransform(position)
	t.LookAt(target, up)
	return t
}

// lookRotation builds the rotation taking -Z to dir while keeping up as
// close to vertical as possible.
func lookRotation(dir, up mgl32.Vec3) mgl32.Quat {
	forward := dir.Normalize()
	right := forward.Cross(up)
	if right.Len() < 1e-6 {
		// Looking straight along up; pick any perpendicular right axis.
		right = forward.Cross(mgl32.Vec3{0, 0, -1})
		if right.Len() < 1e-6 {
			right = mgl32.Vec3{1, 0, 0}
		}
	}
	right = right.Normalize()
	trueUp := right.Cross(forward)

	m := mgl32.Mat3FromCols(right, trueUp, forward.Mul(-1))
	return mgl32.Mat4ToQuat(m.Mat4()).Normalize()
}
