package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if config.Simulation.TimeScale != 8640 {
		t.Errorf("Expected TimeScale 8640, got %f", config.Simulation.TimeScale)
	}
	if config.Simulation.MaxDeltaSeconds != 0.1 {
		t.Errorf("Expected MaxDeltaSeconds 0.1, got %f", config.Simulation.MaxDeltaSeconds)
	}
	if len(config.Bodies) != 10 {
		t.Errorf("Expected 10 bodies, got %d", len(config.Bodies))
	}
	if config.Airplane.Speed != 5 {
		t.Errorf("Expected airplane speed 5, got %f", config.Airplane.Speed)
	}
	if math.Abs(float64(config.Airplane.TurnStep)-math.Pi/4) > 1e-6 {
		t.Errorf("Expected turn step π/4, got %f", config.Airplane.TurnStep)
	}
	if config.Projectile.SpeedBonus != 10 || config.Projectile.MaxDistance != 100 {
		t.Errorf("Unexpected projectile config %+v", config.Projectile)
	}
	if config.Camera.Offset != [3]float32{50, 50, 50} {
		t.Errorf("Expected camera offset (50,50,50), got %v", config.Camera.Offset)
	}
	if !config.Camera.UniformWheel {
		t.Error("Expected uniform wheel handling by default")
	}
	if config.Window.Title != "Solar System" {
		t.Errorf("Expected window title 'Solar System', got '%s'", config.Window.Title)
	}
	if config.Diagnostics.MetricsAddr != "" {
		t.Errorf("Expected diagnostics disabled, got %q", config.Diagnostics.MetricsAddr)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid: %v", err)
	}
}

func TestButtonTargets(t *testing.T) {
	config := DefaultConfig()
	got := config.ButtonTargets()
	want := []string{"Earth", "Moon", "Uranus", "Neptune", "Airplane"}

	if len(got) != len(want) {
		t.Fatalf("ButtonTargets() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ButtonTargets()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	config.Airplane.Enabled = false
	if targets := config.ButtonTargets(); targets[len(targets)-1] == "Airplane" {
		t.Error("disabled airplane should not get a button")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orrery.json")

	original := DefaultConfig()
	original.Simulation.TimeScale = 100
	original.Camera.UniformWheel = false
	original.Bodies = original.Bodies[:4]

	if err := SaveConfig(original, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Simulation.TimeScale != 100 {
		t.Errorf("Expected TimeScale 100, got %f", loaded.Simulation.TimeScale)
	}
	if loaded.Camera.UniformWheel {
		t.Error("Expected UniformWheel false after reload")
	}
	if len(loaded.Bodies) != 4 || loaded.Bodies[3].Name != "Earth" {
		t.Errorf("Bodies not preserved: %+v", loaded.Bodies)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	if err := os.WriteFile(path, []byte(`{"simulation": {"timeScale": 1}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Simulation.TimeScale != 1 {
		t.Errorf("Expected TimeScale 1, got %f", config.Simulation.TimeScale)
	}
	if config.Window.Title != "Solar System" {
		t.Errorf("Expected default window title, got %q", config.Window.Title)
	}
	if len(config.Bodies) != len(DefaultConfig().Bodies) {
		t.Errorf("Expected the default bodies, got %d", len(config.Bodies))
	}
}

func TestLoadConfig_BodiesReplaceDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bodies.json")
	data := `{"airplane": {"spawnNear": "A"}, "bodies": [
		{"name": "Star"},
		{"name": "A", "distanceKm": 1},
		{"name": "B", "distanceKm": 2},
		{"name": "C", "distanceKm": 3},
		{"name": "D", "distanceKm": 4}
	]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(config.Bodies) != 5 {
		t.Fatalf("Expected 5 bodies, got %d", len(config.Bodies))
	}
	for i, b := range config.Bodies {
		want := BodyConfig{Name: b.Name, DistanceKm: float64(i)}
		if b != want {
			t.Errorf("body %d = %+v, want %+v", i, b, want)
		}
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Expected ErrNotExist, got %v", err)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		os.WriteFile(path, []byte("{not json"), 0o644)
		if _, err := LoadConfig(path); err == nil {
			t.Error("Expected parse error")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero time scale", func(c *Config) { c.Simulation.TimeScale = 0 }},
		{"negative time scale", func(c *Config) { c.Simulation.TimeScale = -1 }},
		{"zero distance scale", func(c *Config) { c.Simulation.DistanceScale = 0 }},
		{"zero delta cap", func(c *Config) { c.Simulation.MaxDeltaSeconds = 0 }},
		{"no bodies", func(c *Config) { c.Bodies = nil }},
		{"empty body name", func(c *Config) { c.Bodies[1].Name = "" }},
		{"duplicate body", func(c *Config) { c.Bodies[2].Name = "Mercury" }},
		{"negative period", func(c *Config) { c.Bodies[3].OrbitalPeriodDays = -1 }},
		{"negative distance", func(c *Config) { c.Bodies[3].DistanceKm = -1 }},
		{"unknown parent", func(c *Config) { c.Bodies[4].Parent = "Vulcan" }},
		{"self parent", func(c *Config) { c.Bodies[4].Parent = c.Bodies[4].Name }},
		{"negative airplane speed", func(c *Config) { c.Airplane.Speed = -5 }},
		{"zero turn step", func(c *Config) { c.Airplane.TurnStep = 0 }},
		{"unknown spawn body", func(c *Config) { c.Airplane.SpawnNear = "Vulcan" }},
		{"zero projectile range", func(c *Config) { c.Projectile.MaxDistance = 0 }},
		{"zoom out of range", func(c *Config) { c.Camera.Zoom = 100 }},
		{"zoom step too small", func(c *Config) { c.Camera.ZoomStep = 1 }},
		{"zero window width", func(c *Config) { c.Window.Width = 0 }},
		{"zero fps", func(c *Config) { c.Window.FPS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}

	t.Run("disabled airplane skips airplane checks", func(t *testing.T) {
		config := DefaultConfig()
		config.Airplane.Enabled = false
		config.Airplane.TurnStep = 0
		if err := config.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	})
}

func TestSystemTemplates(t *testing.T) {
	template := GetSystemTemplate("solar_system")
	if template == nil {
		t.Fatal("Expected to get solar_system template, got nil")
	}
	if template.Name != "Solar System" {
		t.Errorf("Expected template name 'Solar System', got '%s'", template.Name)
	}

	templates := ListSystemTemplates()
	for _, expected := range []string{"solar_system", "inner_planets", "earth_moon", "outer_planets"} {
		if _, ok := templates[expected]; !ok {
			t.Errorf("Expected template '%s' to be available", expected)
		}
	}
	if keys := SystemTemplateKeys(); len(keys) != len(templates) || keys[0] != "earth_moon" {
		t.Errorf("SystemTemplateKeys() = %v", keys)
	}

	config := DefaultConfig()
	if err := ApplySystemTemplate(config, "earth_moon"); err != nil {
		t.Fatalf("Failed to apply system template: %v", err)
	}
	if len(config.Bodies) != 3 || config.System != "earth_moon" {
		t.Errorf("Expected 3 bodies from earth_moon, got %d", len(config.Bodies))
	}

	if err := ApplySystemTemplate(config, "unknown_template"); err == nil {
		t.Error("Expected error for unknown template")
	}

	fallback, err := LoadConfigWithTemplate("nonexistent.json", "outer_planets")
	if err != nil {
		t.Fatalf("LoadConfigWithTemplate should fall back to default config, got error: %v", err)
	}
	if fallback.Airplane.SpawnNear != "Jupiter" {
		t.Errorf("Expected airplane near Jupiter, got %q", fallback.Airplane.SpawnNear)
	}
}

func TestLoadConfigWithTemplate_Errors(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}
		config, err := LoadConfigWithTemplate(path, "")
		if err == nil || config != nil {
			t.Errorf("Expected parse error, got config %v err %v", config, err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		if _, err := LoadConfigWithTemplate(t.TempDir(), ""); err == nil {
			t.Error("Expected read error for a directory")
		}
	})
}

func TestSystemTemplatesAreValid(t *testing.T) {
	for key := range systemTemplates {
		t.Run(key, func(t *testing.T) {
			config := DefaultConfig()
			if err := ApplySystemTemplate(config, key); err != nil {
				t.Fatal(err)
			}
			if err := config.Validate(); err != nil {
				t.Errorf("template %s is invalid: %v", key, err)
			}
			if GetSystemTemplate(key).Description == "" {
				t.Error("Template description should not be empty")
			}
		})
	}
}

func TestApplyEnvironmentOverrides(t *testing.T) {
	envVars := []string{EnvTimeScale, EnvMetricsAddr, EnvAudioEnabled, EnvAirplaneSpeed, EnvUniformWheel, EnvSystem}
	for _, key := range envVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	t.Run("no overrides", func(t *testing.T) {
		config := DefaultConfig()
		if err := ApplyEnvironmentOverrides(config); err != nil {
			t.Fatalf("ApplyEnvironmentOverrides failed: %v", err)
		}
		if config.Simulation.TimeScale != 8640 || config.Diagnostics.MetricsAddr != "" {
			t.Errorf("defaults changed: %+v", config.Simulation)
		}
	})

	t.Run("overrides applied", func(t *testing.T) {
		t.Setenv(EnvTimeScale, "100")
		t.Setenv(EnvMetricsAddr, "127.0.0.1:9100")
		t.Setenv(EnvAudioEnabled, "true")
		t.Setenv(EnvAirplaneSpeed, "12.5")
		t.Setenv(EnvUniformWheel, "false")
		t.Setenv(EnvSystem, "inner_planets")

		config := DefaultConfig()
		if err := ApplyEnvironmentOverrides(config); err != nil {
			t.Fatalf("ApplyEnvironmentOverrides failed: %v", err)
		}
		if config.Simulation.TimeScale != 100 {
			t.Errorf("Expected TimeScale 100, got %f", config.Simulation.TimeScale)
		}
		if config.Diagnostics.MetricsAddr != "127.0.0.1:9100" {
			t.Errorf("Expected metrics address, got %q", config.Diagnostics.MetricsAddr)
		}
		if !config.Audio.Enabled {
			t.Error("Expected audio enabled")
		}
		if config.Airplane.Speed != 12.5 {
			t.Errorf("Expected airplane speed 12.5, got %f", config.Airplane.Speed)
		}
		if config.Camera.UniformWheel {
			t.Error("Expected UniformWheel false")
		}
		if config.System != "inner_planets" || len(config.Bodies) != 6 {
			t.Errorf("Expected inner_planets, got %s with %d bodies", config.System, len(config.Bodies))
		}
	})

	t.Run("malformed values", func(t *testing.T) {
		for _, key := range []string{EnvTimeScale, EnvAudioEnabled, EnvAirplaneSpeed, EnvUniformWheel, EnvSystem} {
			t.Run(key, func(t *testing.T) {
				t.Setenv(key, "not-a-value")
				if err := ApplyEnvironmentOverrides(DefaultConfig()); err == nil {
					t.Errorf("expected error for malformed %s", key)
				}
			})
		}
	})
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("ORRERY_TEST_STRING", "test_value")
	if result := getEnvOrDefault("ORRERY_TEST_STRING", "default"); result != "test_value" {
		t.Errorf("getEnvOrDefault: expected 'test_value', got '%s'", result)
	}
	if result := getEnvOrDefault("ORRERY_TEST_NONEXISTENT", "default"); result != "default" {
		t.Errorf("getEnvOrDefault: expected 'default', got '%s'", result)
	}
}
