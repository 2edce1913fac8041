// pkg/engine/state.go
package engine

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/opd-ai/go-orrery/pkg/entity"
)

// State is a snapshot of the simulation
type State struct {
	Frame       uint64
	WallElapsed float64
	SimSeconds  float64
	Focus       string
	Camera      CameraState
	Bodies      []BodyState
	Airplane    *AirplaneState
	Projectiles []ProjectileState
}

// CameraState represents a snapshot of the camera
type CameraState struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Zoom     float32
}

// BodyState represents a snapshot of a body
type BodyState struct {
	ID       entity.ID
	Name     string
	Parent   string
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Radius   float32
	Distance float32
	Color    string
}

// AirplaneState represents a snapshot of the airplane
type AirplaneState struct {
	ID        entity.ID
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Yaw       float32
	Pitch     float32
}

// ProjectileState represents a snapshot of a projectile
type ProjectileState struct {
	ID               entity.ID
	Position         mgl32.Vec3
	DistanceTraveled float32
}

// GetState returns a snapshot of the current state
func (s *Simulation) GetState() *State {
	return &State{
		Frame:       s.frame,
		WallElapsed: s.WallElapsed,
		SimSeconds:  s.SimSeconds(),
		Focus:       s.Focus.Target(),
		Camera: CameraState{
			Position: s.Camera.Transform.Translation,
			Target:   s.Camera.TargetFocus,
			Zoom:     s.Camera.Zoom,
		},
		Bodies:      s.getBodyStates(),
		Airplane:    s.getAirplaneState(),
		Projectiles: s.getProjectileStates(),
	}
}

func (s *Simulation) getBodyStates() []BodyState {
	states := make([]BodyState, 0, len(s.Bodies))
	for _, b := range s.Bodies {
		states = append(states, BodyState{
			ID:       b.ID,
			Name:     b.Name(),
			Parent:   b.Parent(),
			Position: b.Transform.Translation,
			Rotation: b.Transform.Rotation,
			Radius:   b.Radius(),
			Distance: b.Distance(),
			Color:    b.Color(),
		})
	}
	return states
}

func (s *Simulation) getAirplaneState() *AirplaneState {
	if s.Airplane == nil {
		return nil
	}
	return &AirplaneState{
		ID:        s.Airplane.ID,
		Position:  s.Airplane.Transform.Translation,
		Direction: s.Airplane.Heading.Direction(),
		Yaw:       s.Airplane.Heading.Yaw,
		Pitch:     s.Airplane.Heading.Pitch,
	}
}

func (s *Simulation) getProjectileStates() []ProjectileState {
	list := s.sortedProjectiles()
	states := make([]ProjectileState, 0, len(list))
	for _, p := range list {
		states = append(states, ProjectileState{
			ID:               p.ID,
			Position:         p.Transform.Translation,
			DistanceTraveled: p.DistanceTraveled,
		})
	}
	return states
}
