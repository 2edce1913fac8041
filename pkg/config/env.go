// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by ApplyEnvironmentOverrides
const (
	EnvTimeScale     = "ORRERY_TIME_SCALE"
	EnvMetricsAddr   = "ORRERY_METRICS_ADDR"
	EnvAudioEnabled  = "ORRERY_AUDIO_ENABLED"
	EnvAirplaneSpeed = "ORRERY_AIRPLANE_SPEED"
	EnvUniformWheel  = "ORRERY_UNIFORM_WHEEL"
	EnvSystem        = "ORRERY_SYSTEM"
)

// ApplyEnvironmentOverrides applies environment variable overrides to config.
// Malformed values are rejected instead of silently ignored.
func ApplyEnvironmentOverrides(config *Config) error {
	if v, ok := os.LookupEnv(EnvSystem); ok && v != "" {
		if err := ApplySystemTemplate(config, v); err != nil {
			return fmt.Errorf("%s: %w", EnvSystem, err)
		}
	}

	if v, ok := os.LookupEnv(EnvTimeScale); ok {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeScale, err)
		}
		config.Simulation.TimeScale = scale
	}

	if v, ok := os.LookupEnv(EnvAirplaneSpeed); ok {
		speed, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvAirplaneSpeed, err)
		}
		config.Airplane.Speed = float32(speed)
	}

	if v, ok := os.LookupEnv(EnvAudioEnabled); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvAudioEnabled, err)
		}
		config.Audio.Enabled = enabled
	}

	if v, ok := os.LookupEnv(EnvUniformWheel); ok {
		uniform, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvUniformWheel, err)
		}
		config.Camera.UniformWheel = uniform
	}

	config.Diagnostics.MetricsAddr = getEnvOrDefault(EnvMetricsAddr, config.Diagnostics.MetricsAddr)

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
