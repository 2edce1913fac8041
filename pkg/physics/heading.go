// pkg/physics/heading.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Heading is a flight direction given as yaw about the vertical axis and
// pitch above the horizontal plane, in radians.
type Heading struct {
	Yaw   float32
	Pitch float32
}

// Direction returns the unit vector for the heading. A zero heading points
// along +X; positive yaw turns toward -Z.
func (h Heading) Direction() mgl32.Vec3 {
	cy, sy := math.Cos(float64(h.Yaw)), math.Sin(float64(h.Yaw))
	cp, sp := math.Cos(float64(h.Pitch)), math.Sin(float64(h.Pitch))
	return mgl32.Vec3{float32(cp * cy), float32(sp), float32(-cp * sy)}
}

// Turn returns the heading changed by the given yaw and pitch deltas.
func (h Heading) Turn(dYaw, dPitch float32) Heading {
	return Heading{Yaw: h.Yaw + dYaw, Pitch: h.Pitch + dPitch}
}

// Rotation returns the orientation that takes +X onto Direction().
func (h Heading) Rotation() mgl32.Quat {
	yaw := mgl32.QuatRotate(h.Yaw, Up)
	pitch := mgl32.QuatRotate(h.Pitch, mgl32.Vec3{0, 0, 1})
	return yaw.Mul(pitch).Normalize()
}

// Advance moves position along dir by speed*dt and returns the new position
// together with the distance covered.
func Advance(position, dir mgl32.Vec3, speed, dt float32) (mgl32.Vec3, float32) {
	step := speed * dt
	return position.Add(dir.Mul(step)), step
}
