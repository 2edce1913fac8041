// pkg/engine/simulation.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/opd-ai/go-orrery/pkg/camera"
	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/entity"
	"github.com/opd-ai/go-orrery/pkg/event"
	"github.com/opd-ai/go-orrery/pkg/input"
	"github.com/opd-ai/go-orrery/pkg/logging"
	"github.com/opd-ai/go-orrery/pkg/orbit"
)

var (
	// ErrUnknownParent is returned when a body orbits a body that does not exist
	ErrUnknownParent = errors.New("unknown parent body")
	// ErrDuplicateBody is returned when two bodies share a name, or a body
	// uses a reserved name
	ErrDuplicateBody = errors.New("duplicate body name")
	// ErrBodyNotFound is returned by RemoveBody for an unknown name
	ErrBodyNotFound = errors.New("body not found")
)

// Simulation holds the whole orrery state. It is stepped from a single
// goroutine; only Frames may be read concurrently.
type Simulation struct {
	Config      *config.Config
	Bodies      []*entity.Body
	Airplane    *entity.Airplane
	Projectiles map[entity.ID]*entity.Projectile
	Focus       *camera.Focus
	Camera      *camera.Camera
	EventBus    *event.Bus

	Running     bool
	StartTime   time.Time
	LastUpdate  time.Time
	WallElapsed float64 // seconds of (capped) wall time stepped so far

	byName     map[string]*entity.Body
	frame      uint64
	frames     atomic.Uint64
	ids        *entity.IDGenerator
	controller *camera.Controller
	logger     *logging.Logger
	ctx        context.Context
}

// StepResult summarises one simulation step
type StepResult struct {
	Frame       uint64
	CameraMoved bool
	Fired       int
	Expired     int
	Quit        bool
}

// NewSimulation creates a simulation from a validated configuration. Bodies
// are placed at their t=0 positions.
func NewSimulation(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*Simulation, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cam := cfg.Camera
	s := &Simulation{
		Config:      cfg,
		Projectiles: make(map[entity.ID]*entity.Projectile),
		Focus:       camera.NewFocus(),
		Camera:      camera.NewCamera(mgl32.Vec3(cam.InitialPosition), mgl32.Vec3{}, cam.Zoom),
		EventBus:    event.NewEventBus(),
		LastUpdate:  time.Now(),
		byName:      make(map[string]*entity.Body),
		ids:         entity.NewIDGenerator(),
		controller:  camera.NewController(mgl32.Vec3(cam.Offset), logger),
		logger:      logger,
		ctx:         ctx,
	}

	if err := s.initBodies(); err != nil {
		return nil, err
	}
	s.updateBodies(0)
	s.initAirplane()

	logger.Info(ctx, "simulation created",
		"system", cfg.System,
		"bodies", len(s.Bodies),
		"airplane", s.Airplane != nil,
		"time_scale", cfg.Simulation.TimeScale)
	return s, nil
}

// initBodies creates the bodies ordered so that every parent precedes its
// satellites.
func (s *Simulation) initBodies() error {
	specs := make(map[string]config.BodyConfig, len(s.Config.Bodies))
	for _, bc := range s.Config.Bodies {
		if bc.Name == camera.Global || bc.Name == entity.AirplaneName {
			return fmt.Errorf("%w: %q is reserved", ErrDuplicateBody, bc.Name)
		}
		if _, dup := specs[bc.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateBody, bc.Name)
		}
		specs[bc.Name] = bc
	}

	visiting := make(map[string]bool)
	var add func(bc config.BodyConfig) error
	add = func(bc config.BodyConfig) error {
		if _, done := s.byName[bc.Name]; done {
			return nil
		}
		if bc.Parent != "" {
			parent, ok := specs[bc.Parent]
			if !ok || visiting[bc.Name] {
				return fmt.Errorf("%w: %q orbits %q", ErrUnknownParent, bc.Name, bc.Parent)
			}
			visiting[bc.Name] = true
			if err := add(parent); err != nil {
				return err
			}
		}

		body, err := entity.NewBody(s.ids.Next(), bodySpec(bc, s.Config.Simulation))
		if err != nil {
			return logging.WrapError(err, "creating body %s", bc.Name)
		}
		s.Bodies = append(s.Bodies, body)
		s.byName[bc.Name] = body
		return nil
	}

	for _, bc := range s.Config.Bodies {
		if err := add(bc); err != nil {
			return err
		}
	}
	return nil
}

func bodySpec(bc config.BodyConfig, sim config.SimulationConfig) entity.BodySpec {
	return entity.BodySpec{
		Name:         bc.Name,
		Distance:     orbit.SceneDistance(bc.DistanceKm, bc.Parent != "", sim.DistanceScale, sim.SatelliteDistanceScale),
		Radius:       float32(bc.RadiusKm / sim.RadiusScale),
		RotationRate: orbit.RateFromPeriod(bc.RotationPeriodDays),
		OrbitalRate:  orbit.RateFromPeriod(bc.OrbitalPeriodDays),
		Parent:       bc.Parent,
		Model:        bc.Model,
		Color:        bc.Color,
		Scale:        bc.Scale,
	}
}

// Start marks the simulation as running and resets the wall clock
func (s *Simulation) Start() {
	s.Running = true
	s.StartTime = time.Now()
	s.LastUpdate = s.StartTime
	s.logger.Info(s.ctx, "simulation started")
}

// Stop halts the simulation
func (s *Simulation) Stop() {
	s.Running = false
	s.logger.Info(s.ctx, "simulation stopped", "frames", s.frame, "wall_elapsed", s.WallElapsed)
}

// Update steps the simulation by the wall time since the previous update
func (s *Simulation) Update(frame input.Frame) StepResult {
	return s.Step(frame, s.calculateDeltaTime())
}

// calculateDeltaTime calculates the time since the last update
func (s *Simulation) calculateDeltaTime() float64 {
	now := time.Now()
	deltaTime := now.Sub(s.LastUpdate).Seconds()
	s.LastUpdate = now
	return deltaTime
}

// Step advances the simulation by dt seconds (capped by
// simulation.maxDeltaSeconds), consuming the frame's input events first,
// then moving bodies, airplane and projectiles, then the camera.
func (s *Simulation) Step(frame input.Frame, dt float64) StepResult {
	if dt < 0 {
		dt = 0
	}
	if limit := s.Config.Simulation.MaxDeltaSeconds; dt > limit {
		dt = limit
	}

	result := StepResult{Frame: s.frame}
	s.handleInput(frame, &result)

	s.WallElapsed += dt
	s.updateBodies(dt)
	if s.Airplane != nil {
		s.Airplane.Update(float32(dt))
	}
	result.Expired = s.updateProjectiles(float32(dt))

	result.CameraMoved = s.controller.Update(s.ctx, s.Camera, s.Focus, s.Trackables())

	s.EventBus.Publish(event.NewFrameEvent(s, s.frame, dt, len(s.Projectiles), result.CameraMoved))
	s.frame++
	s.frames.Store(s.frame)
	return result
}

// updateBodies recomputes every body position from the elapsed simulated
// time and spins each body by dt. Moons use their parent's position of the
// same step.
func (s *Simulation) updateBodies(dt float64) {
	ts := s.Config.Simulation.TimeScale
	simSeconds := orbit.SimTime(s.WallElapsed, ts)

	orphans := 0
	for _, body := range s.Bodies {
		center := mgl32.Vec3{}
		if body.HasParent() {
			parent, ok := s.byName[body.Parent()]
			if !ok {
				orphans++
				continue
			}
			center = parent.Transform.Translation
		}
		body.Transform.Translation = orbit.Position(body, simSeconds, center)
		if dt > 0 {
			body.Transform.RotateY(orbit.SpinDelta(body, dt, ts))
		}
	}

	if orphans > 0 {
		s.logger.Warn(s.ctx, "satellites without parent keep their position", "count", orphans)
	}
}

// updateProjectiles moves projectiles fired in earlier frames and removes
// those that used up their range. It returns the number removed.
func (s *Simulation) updateProjectiles(dt float32) int {
	for _, p := range s.Projectiles {
		if p.SpawnFrame == s.frame {
			continue
		}
		p.Update(dt)
	}
	return s.cleanupInactiveEntities()
}

// cleanupInactiveEntities removes inactive projectiles
func (s *Simulation) cleanupInactiveEntities() int {
	removed := 0
	for id, p := range s.Projectiles {
		if !p.Active {
			delete(s.Projectiles, id)
			removed++
			s.EventBus.Publish(event.NewProjectileEvent(event.ProjectileExpired, s, uint64(id), p.DistanceTraveled))
		}
	}
	return removed
}

// Trackables returns every body followed by the airplane, if any
func (s *Simulation) Trackables() []camera.Trackable {
	trackables := make([]camera.Trackable, 0, len(s.Bodies)+1)
	for _, b := range s.Bodies {
		trackables = append(trackables, camera.Trackable{Name: b.Name(), Position: b.Transform.Translation})
	}
	if s.Airplane != nil {
		trackables = append(trackables, camera.Trackable{Name: entity.AirplaneName, Position: s.Airplane.Transform.Translation})
	}
	return trackables
}

// Body returns the body with the given name
func (s *Simulation) Body(name string) (*entity.Body, bool) {
	b, ok := s.byName[name]
	return b, ok
}

// RemoveBody removes a body. Its satellites stay where they are.
func (s *Simulation) RemoveBody(name string) error {
	if _, ok := s.byName[name]; !ok {
		return fmt.Errorf("%w: %q", ErrBodyNotFound, name)
	}
	delete(s.byName, name)
	for i, b := range s.Bodies {
		if b.Name() == name {
			s.Bodies = append(s.Bodies[:i], s.Bodies[i+1:]...)
			break
		}
	}
	s.logger.Info(s.ctx, "body removed", "body", name)
	return nil
}

// SimSeconds returns the simulated time elapsed
func (s *Simulation) SimSeconds() float64 {
	return orbit.SimTime(s.WallElapsed, s.Config.Simulation.TimeScale)
}

// CurrentFrame returns the index of the next frame to be stepped
func (s *Simulation) CurrentFrame() uint64 {
	return s.frame
}

// Frames returns the number of completed steps. Safe for concurrent use.
func (s *Simulation) Frames() uint64 {
	return s.frames.Load()
}

// Context returns the logging context of the simulation
func (s *Simulation) Context() context.Context {
	return s.ctx
}

// Logger returns the simulation logger
func (s *Simulation) Logger() *logging.Logger {
	return s.logger
}

// Render draws the current state with r
func (s *Simulation) Render(r entity.Renderer) {
	r.Clear()
	for _, b := range s.Bodies {
		b.Render(r)
	}
	if s.Airplane != nil {
		s.Airplane.Render(r)
	}
	for _, p := range s.sortedProjectiles() {
		p.Render(r)
	}
	r.Present()
}
