// pkg/engine/flight.go
package engine

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/opd-ai/go-orrery/pkg/camera"
	"github.com/opd-ai/go-orrery/pkg/entity"
	"github.com/opd-ai/go-orrery/pkg/event"
	"github.com/opd-ai/go-orrery/pkg/input"
)

// initAirplane spawns the airplane spawnOffset units beyond its spawn body's
// orbit, on +X.
func (s *Simulation) initAirplane() {
	ac := s.Config.Airplane
	if !ac.Enabled {
		return
	}

	x := ac.SpawnOffset
	if near, ok := s.byName[ac.SpawnNear]; ok {
		x += near.Distance()
	}
	s.Airplane = entity.NewAirplane(s.ids.Next(), mgl32.Vec3{x, 0, 0}, ac.Speed)
}

// handleInput applies the frame's events in order
func (s *Simulation) handleInput(frame input.Frame, result *StepResult) {
	for _, e := range frame {
		if tr, changed := s.Focus.Handle(e, s.Config.Camera.UniformWheel); changed {
			s.logger.Info(s.ctx, "camera focus changed", "from", tr.From, "to", tr.To, "cause", string(tr.Cause))
			s.EventBus.Publish(event.NewFocusEvent(s, tr.From, tr.To, string(tr.Cause)))
		}

		switch e.Kind {
		case input.Wheel:
			s.handleWheel(e)
		case input.KeyPressed:
			s.handleKey(e.Key, result)
		}
	}
}

// handleWheel zooms the free camera. Line-unit scrolling is reported when it
// does not reset the focus.
func (s *Simulation) handleWheel(e input.Event) {
	if e.Unit == input.WheelLine && !s.Config.Camera.UniformWheel {
		s.logger.Debug(s.ctx, "line wheel event", "delta", e.Delta, "focus", s.Focus.Target())
		s.EventBus.Publish(&event.BaseEvent{EventType: event.WheelIgnored, Source: s})
	}
	switch {
	case e.Delta > 0:
		s.zoom(s.Config.Camera.ZoomStep)
	case e.Delta < 0:
		s.zoom(1 / s.Config.Camera.ZoomStep)
	}
}

func (s *Simulation) zoom(factor float32) {
	cam := s.Config.Camera
	s.Camera.ZoomBy(factor, cam.MinZoom, cam.MaxZoom)
}

func (s *Simulation) handleKey(key input.Key, result *StepResult) {
	step := s.Config.Airplane.TurnStep
	switch key {
	case input.KeyLeft:
		s.turn(step, 0)
	case input.KeyRight:
		s.turn(-step, 0)
	case input.KeyUp:
		s.turn(0, step)
	case input.KeyDown:
		s.turn(0, -step)
	case input.KeyFire:
		if s.Fire() != nil {
			result.Fired++
		}
	case input.KeyZoomIn:
		s.zoom(s.Config.Camera.ZoomStep)
	case input.KeyZoomOut:
		s.zoom(1 / s.Config.Camera.ZoomStep)
	case input.KeyQuit:
		result.Quit = true
	default:
		s.logger.Debug(s.ctx, "unmapped key ignored", "key", key.String())
	}
}

func (s *Simulation) turn(dYaw, dPitch float32) {
	if s.Airplane == nil {
		s.logger.Debug(s.ctx, "heading change without airplane")
		return
	}
	s.Airplane.Turn(dYaw, dPitch)
	s.EventBus.Publish(event.NewHeadingEvent(s, s.Airplane.Heading.Yaw, s.Airplane.Heading.Pitch))
}

// Fire spawns one projectile from the airplane and returns it, or nil when
// there is no airplane. The projectile starts moving in the next step.
func (s *Simulation) Fire() *entity.Projectile {
	if s.Airplane == nil {
		s.logger.Debug(s.ctx, "fire without airplane")
		return nil
	}

	pc := s.Config.Projectile
	p := entity.NewProjectile(s.ids.Next(), s.Airplane, pc.SpeedBonus, pc.MaxDistance, s.frame)
	s.Projectiles[p.ID] = p

	s.logger.Debug(s.ctx, "projectile fired", "projectile", uint64(p.ID), "position", p.Transform.Translation)
	s.EventBus.Publish(event.NewProjectileEvent(event.ProjectileFired, s, uint64(p.ID), 0))
	return p
}

// FocusOn moves the camera focus to target outside of the input stream
func (s *Simulation) FocusOn(target string) {
	if tr, changed := s.Focus.Set(target, camera.CauseProgrammatic); changed {
		s.EventBus.Publish(event.NewFocusEvent(s, tr.From, tr.To, string(tr.Cause)))
	}
}

func (s *Simulation) sortedProjectiles() []*entity.Projectile {
	list := make([]*entity.Projectile, 0, len(s.Projectiles))
	for _, p := range s.Projectiles {
		list = append(list, p)
	}
	slices.SortFunc(list, func(a, b *entity.Projectile) int { return cmp.Compare(a.ID, b.ID) })
	return list
}
