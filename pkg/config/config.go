// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/opd-ai/go-orrery/pkg/entity"
	"github.com/opd-ai/go-orrery/pkg/orbit"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config contains configuration for the orrery
type Config struct {
	System      string            `json:"system"`
	Simulation  SimulationConfig  `json:"simulation"`
	Bodies      []BodyConfig      `json:"bodies"`
	Airplane    AirplaneConfig    `json:"airplane"`
	Projectile  ProjectileConfig  `json:"projectile"`
	Camera      CameraConfig      `json:"camera"`
	Window      WindowConfig      `json:"window"`
	Audio       AudioConfig       `json:"audio"`
	Diagnostics DiagnosticsConfig `json:"diagnostics"`
}

// SimulationConfig contains the time and distance scaling
type SimulationConfig struct {
	TimeScale              float64 `json:"timeScale"`
	DistanceScale          float64 `json:"distanceScale"`
	SatelliteDistanceScale float64 `json:"satelliteDistanceScale"`
	RadiusScale            float64 `json:"radiusScale"`
	MaxDeltaSeconds        float64 `json:"maxDeltaSeconds"`
}

// BodyConfig contains configuration for a body. Lengths are in kilometres,
// periods in days; a zero period means no motion.
type BodyConfig struct {
	Name               string  `json:"name"`
	OrbitalPeriodDays  float64 `json:"orbitalPeriodDays"`
	RotationPeriodDays float64 `json:"rotationPeriodDays"`
	RadiusKm           float64 `json:"radiusKm"`
	DistanceKm         float64 `json:"distanceKm"`
	Parent             string  `json:"parent,omitempty"`
	Model              string  `json:"model"`
	Color              string  `json:"color"`
	Scale              float32 `json:"scale"`
	Button             bool    `json:"button"`
}

// AirplaneConfig contains configuration for the airplane
type AirplaneConfig struct {
	Enabled     bool    `json:"enabled"`
	Speed       float32 `json:"speed"`
	TurnStep    float32 `json:"turnStep"`
	SpawnNear   string  `json:"spawnNear"`
	SpawnOffset float32 `json:"spawnOffset"`
	Button      bool    `json:"button"`
}

// ProjectileConfig contains configuration for fired projectiles
type ProjectileConfig struct {
	SpeedBonus  float32 `json:"speedBonus"`
	MaxDistance float32 `json:"maxDistance"`
}

// CameraConfig contains configuration for the follow camera
type CameraConfig struct {
	Offset          [3]float32 `json:"offset"`
	InitialPosition [3]float32 `json:"initialPosition"`
	UniformWheel    bool       `json:"uniformWheel"`
	Zoom            float32    `json:"zoom"`
	MinZoom         float32    `json:"minZoom"`
	MaxZoom         float32    `json:"maxZoom"`
	ZoomStep        float32    `json:"zoomStep"`
}

// WindowConfig contains window configuration
type WindowConfig struct {
	Title      string `json:"title"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Fullscreen bool   `json:"fullscreen"`
	Background string `json:"background"`
	FPS        int    `json:"fps"`
}

// AudioConfig contains sound cue configuration
type AudioConfig struct {
	Enabled bool    `json:"enabled"`
	Volume  float64 `json:"volume"`
}

// DiagnosticsConfig contains the metrics and health endpoint configuration.
// An empty address disables the endpoint.
type DiagnosticsConfig struct {
	MetricsAddr string `json:"metricsAddr"`
}

// LoadConfig loads a configuration from a file. Missing fields keep their
// default values, except that a bodies list replaces the default bodies as
// a whole.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	defaults := config.Bodies
	// json decodes array elements over existing ones
	config.Bodies = nil
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Bodies == nil {
		config.Bodies = defaults
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the solar system configuration
func DefaultConfig() *Config {
	return &Config{
		System: "solar_system",
		Simulation: SimulationConfig{
			TimeScale:              orbit.TimeScale,
			DistanceScale:          orbit.PlanetDistanceScale,
			SatelliteDistanceScale: orbit.SatelliteDistanceScale,
			RadiusScale:            orbit.EarthRadiusKm,
			MaxDeltaSeconds:        0.1,
		},
		Bodies: bodiesFrom(orbit.SolarSystem(), "Earth", "Moon", "Uranus", "Neptune"),
		Airplane: AirplaneConfig{
			Enabled:     true,
			Speed:       5,
			TurnStep:    math.Pi / 4,
			SpawnNear:   "Earth",
			SpawnOffset: 100,
			Button:      true,
		},
		Projectile: ProjectileConfig{
			SpeedBonus:  10,
			MaxDistance: 100,
		},
		Camera: CameraConfig{
			Offset:          [3]float32{50, 50, 50},
			InitialPosition: [3]float32{0, 100, 0},
			UniformWheel:    true,
			Zoom:            0.25,
			MinZoom:         0.005,
			MaxZoom:         8,
			ZoomStep:        1.25,
		},
		Window: WindowConfig{
			Title:      "Solar System",
			Width:      1280,
			Height:     720,
			Background: "#000000",
			FPS:        30,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  -1,
		},
	}
}

func bodiesFrom(data []orbit.BodyData, buttons ...string) []BodyConfig {
	withButton := make(map[string]bool, len(buttons))
	for _, name := range buttons {
		withButton[name] = true
	}

	bodies := make([]BodyConfig, 0, len(data))
	for _, d := range data {
		bodies = append(bodies, BodyConfig{
			Name:               d.Name,
			OrbitalPeriodDays:  d.OrbitalPeriodDays,
			RotationPeriodDays: d.RotationPeriodDays,
			RadiusKm:           d.RadiusKm,
			DistanceKm:         d.DistanceKm,
			Parent:             d.Parent,
			Model:              d.Model,
			Color:              d.Color,
			Scale:              d.Scale,
			Button:             withButton[d.Name],
		})
	}
	return bodies
}

// Validate checks the configuration and returns an error wrapping
// ErrInvalidConfig for the first problem found.
func (c *Config) Validate() error {
	sim := c.Simulation
	if sim.TimeScale <= 0 {
		return fmt.Errorf("%w: simulation.timeScale must be positive, got %v", ErrInvalidConfig, sim.TimeScale)
	}
	if sim.DistanceScale <= 0 || sim.SatelliteDistanceScale <= 0 || sim.RadiusScale <= 0 {
		return fmt.Errorf("%w: simulation distance and radius scales must be positive", ErrInvalidConfig)
	}
	if sim.MaxDeltaSeconds <= 0 {
		return fmt.Errorf("%w: simulation.maxDeltaSeconds must be positive, got %v", ErrInvalidConfig, sim.MaxDeltaSeconds)
	}

	if len(c.Bodies) == 0 {
		return fmt.Errorf("%w: no bodies configured", ErrInvalidConfig)
	}
	names := make(map[string]bool, len(c.Bodies))
	for _, b := range c.Bodies {
		if b.Name == "" {
			return fmt.Errorf("%w: body with empty name", ErrInvalidConfig)
		}
		if names[b.Name] {
			return fmt.Errorf("%w: duplicate body %q", ErrInvalidConfig, b.Name)
		}
		names[b.Name] = true
		if b.OrbitalPeriodDays < 0 || b.RotationPeriodDays < 0 || b.RadiusKm < 0 || b.DistanceKm < 0 {
			return fmt.Errorf("%w: body %q has a negative period, radius or distance", ErrInvalidConfig, b.Name)
		}
	}
	for _, b := range c.Bodies {
		if b.Parent == "" {
			continue
		}
		if b.Parent == b.Name || !names[b.Parent] {
			return fmt.Errorf("%w: body %q has unknown parent %q", ErrInvalidConfig, b.Name, b.Parent)
		}
	}

	if c.Airplane.Enabled {
		if c.Airplane.Speed < 0 {
			return fmt.Errorf("%w: airplane.speed must not be negative", ErrInvalidConfig)
		}
		if c.Airplane.TurnStep <= 0 {
			return fmt.Errorf("%w: airplane.turnStep must be positive", ErrInvalidConfig)
		}
		if c.Airplane.SpawnNear != "" && !names[c.Airplane.SpawnNear] {
			return fmt.Errorf("%w: airplane.spawnNear names unknown body %q", ErrInvalidConfig, c.Airplane.SpawnNear)
		}
	}
	if c.Projectile.MaxDistance <= 0 || c.Projectile.SpeedBonus < 0 {
		return fmt.Errorf("%w: projectile.maxDistance must be positive and speedBonus not negative", ErrInvalidConfig)
	}

	cam := c.Camera
	if cam.MinZoom <= 0 || cam.MaxZoom < cam.MinZoom || cam.Zoom < cam.MinZoom || cam.Zoom > cam.MaxZoom {
		return fmt.Errorf("%w: camera zoom %v outside [%v, %v]", ErrInvalidConfig, cam.Zoom, cam.MinZoom, cam.MaxZoom)
	}
	if cam.ZoomStep <= 1 {
		return fmt.Errorf("%w: camera.zoomStep must be greater than 1", ErrInvalidConfig)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS <= 0 {
		return fmt.Errorf("%w: window.fps must be positive", ErrInvalidConfig)
	}

	return nil
}

// ButtonTargets returns the names of the bodies that get a focus button, in
// configuration order, followed by the airplane when enabled.
func (c *Config) ButtonTargets() []string {
	var targets []string
	for _, b := range c.Bodies {
		if b.Button {
			targets = append(targets, b.Name)
		}
	}
	if c.Airplane.Enabled && c.Airplane.Button {
		targets = append(targets, entity.AirplaneName)
	}
	return targets
}
