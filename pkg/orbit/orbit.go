// Package orbit implements the circular orbit and spin kinematics of the
// orrery. Orbital position is a pure function of elapsed simulated time;
// spin is applied incrementally from the frame delta.
package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OneDaySeconds is the length of a day in seconds.
const OneDaySeconds = 24 * 60 * 60

// TimeScale maps one real second to simulated seconds: 10 real seconds are
// one simulated day.
const TimeScale = 24 * 60 * 6

// RingSegments is the default number of segments of an orbit ring.
const RingSegments = 128

// Kinematic is implemented by anything that orbits: a distance to its centre
// and two angular rates in radians per simulated second.
type Kinematic interface {
	Distance() float32
	OrbitalRate() float64
	RotationRate() float64
}

// SimTime converts elapsed wall-clock seconds to simulated seconds.
func SimTime(wallElapsed, timeScale float64) float64 {
	return wallElapsed * timeScale
}

// Angle returns the orbital phase in radians after simSeconds simulated
// seconds.
func Angle(body Kinematic, simSeconds float64) float64 {
	return simSeconds * body.OrbitalRate()
}

// Offset returns the position on a circle of the given radius in the XZ plane.
func Offset(distance float32, angle float64) mgl32.Vec3 {
	d := float64(distance)
	return mgl32.Vec3{float32(d * math.Cos(angle)), 0, float32(d * math.Sin(angle))}
}

// Position returns the body's position at simSeconds around center.
func Position(body Kinematic, simSeconds float64, center mgl32.Vec3) mgl32.Vec3 {
	return center.Add(Offset(body.Distance(), Angle(body, simSeconds)))
}

// SpinDelta returns the spin angle accumulated over dt real seconds.
func SpinDelta(body Kinematic, dt, timeScale float64) float32 {
	return float32(body.RotationRate() * timeScale * dt)
}

// Period returns the real seconds needed for one full orbit, or +Inf for a
// body that does not orbit.
func Period(body Kinematic, timeScale float64) float64 {
	rate := body.OrbitalRate() * timeScale
	if rate == 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / rate
}

// RateFromPeriod converts a period in days to radians per second.
// A zero period means the body does not move.
func RateFromPeriod(periodDays float64) float64 {
	if periodDays == 0 {
		return 0
	}
	return 2 * math.Pi / (periodDays * OneDaySeconds)
}

// NormalizeAngle maps a to [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Ring returns segments+1 points of the orbit circle around center, the last
// point closing the loop.
func Ring(center mgl32.Vec3, distance float32, segments int) []mgl32.Vec3 {
	if segments <= 0 {
		segments = RingSegments
	}
	points := make([]mgl32.Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		points = append(points, center.Add(Offset(distance, angle)))
	}
	return points
}
