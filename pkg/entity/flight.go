// pkg/entity/flight.go
package entity

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// AirplaneName is the name the airplane is tracked under
const AirplaneName = "Airplane"

// Airplane is the player-controlled flyer
type Airplane struct {
	BaseEntity
	Speed   float32
	Heading physics.Heading
}

// NewAirplane creates an airplane at position flying along +X
func NewAirplane(id ID, position mgl32.Vec3, speed float32) *Airplane {
	return &Airplane{
		BaseEntity: BaseEntity{
			ID:        id,
			Transform: physics.NewTransform(position),
			Active:    true,
		},
		Speed: speed,
	}
}

// Turn changes the heading and turns the airplane to face it
func (a *Airplane) Turn(dYaw, dPitch float32) {
	a.Heading = a.Heading.Turn(dYaw, dPitch)
	a.Transform.Rotation = a.Heading.Rotation()
}

// Update moves the airplane along its heading
func (a *Airplane) Update(deltaTime float32) {
	a.Transform.Translation, _ = physics.Advance(a.Transform.Translation, a.Heading.Direction(), a.Speed, deltaTime)
}

// Projectile is a shot fired by the airplane. It flies straight along the
// heading it was fired with until it has covered MaxDistance.
type Projectile struct {
	BaseEntity
	Speed            float32
	Heading          physics.Heading
	DistanceTraveled float32
	MaxDistance      float32
	SpawnFrame       uint64
}

// NewProjectile fires a projectile from the airplane's current transform.
// The heading is copied, later turns of the airplane do not affect it.
func NewProjectile(id ID, from *Airplane, speedBonus, maxDistance float32, frame uint64) *Projectile {
	return &Projectile{
		BaseEntity: BaseEntity{
			ID:        id,
			Transform: from.Transform,
			Active:    true,
		},
		Speed:       from.Speed + speedBonus,
		Heading:     from.Heading,
		MaxDistance: maxDistance,
		SpawnFrame:  frame,
	}
}

// Update advances the projectile and deactivates it once its range is used up
func (p *Projectile) Update(deltaTime float32) {
	if !p.Active {
		return
	}
	var step float32
	p.Transform.Translation, step = physics.Advance(p.Transform.Translation, p.Heading.Direction(), p.Speed, deltaTime)
	p.DistanceTraveled += step

	if p.DistanceTraveled >= p.MaxDistance {
		p.Active = false
	}
}
