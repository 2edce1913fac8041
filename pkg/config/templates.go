// pkg/config/templates.go
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/opd-ai/go-orrery/pkg/orbit"
)

// SystemTemplate is a named, ready-made set of bodies
type SystemTemplate struct {
	Name        string
	Description string
	Bodies      []BodyConfig
	SpawnNear   string
}

var systemTemplates = map[string]SystemTemplate{
	"solar_system": {
		Name:        "Solar System",
		Description: "The Sun, eight planets and the Moon",
		Bodies:      bodiesFrom(orbit.SolarSystem(), "Earth", "Moon", "Uranus", "Neptune"),
		SpawnNear:   "Earth",
	},
	"inner_planets": {
		Name:        "Inner Planets",
		Description: "The Sun, the rocky planets and the Moon",
		Bodies:      bodiesFrom(pick(orbit.SolarSystem(), "Sun", "Mercury", "Venus", "Earth", "Moon", "Mars"), "Mercury", "Venus", "Earth", "Moon", "Mars"),
		SpawnNear:   "Earth",
	},
	"earth_moon": {
		Name:        "Earth and Moon",
		Description: "The Earth and Moon around the Sun",
		Bodies:      bodiesFrom(pick(orbit.SolarSystem(), "Sun", "Earth", "Moon"), "Earth", "Moon"),
		SpawnNear:   "Earth",
	},
	"outer_planets": {
		Name:        "Outer Planets",
		Description: "The Sun and the gas giants",
		Bodies:      bodiesFrom(pick(orbit.SolarSystem(), "Sun", "Jupiter", "Saturn", "Uranus", "Neptune"), "Jupiter", "Saturn", "Uranus", "Neptune"),
		SpawnNear:   "Jupiter",
	},
}

func pick(data []orbit.BodyData, names ...string) []orbit.BodyData {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var out []orbit.BodyData
	for _, d := range data {
		if wanted[d.Name] {
			out = append(out, d)
		}
	}
	return out
}

// GetSystemTemplate returns the template with the given key, or nil
func GetSystemTemplate(key string) *SystemTemplate {
	template, ok := systemTemplates[key]
	if !ok {
		return nil
	}
	return &template
}

// ListSystemTemplates returns template keys mapped to their descriptions
func ListSystemTemplates() map[string]string {
	list := make(map[string]string, len(systemTemplates))
	for key, template := range systemTemplates {
		list[key] = template.Description
	}
	return list
}

// SystemTemplateKeys returns the sorted template keys
func SystemTemplateKeys() []string {
	keys := make([]string, 0, len(systemTemplates))
	for key := range systemTemplates {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// ApplySystemTemplate replaces the bodies of config with those of the template
func ApplySystemTemplate(config *Config, key string) error {
	template := GetSystemTemplate(key)
	if template == nil {
		return fmt.Errorf("unknown system template: %s", key)
	}

	config.System = key
	config.Bodies = append([]BodyConfig(nil), template.Bodies...)
	config.Airplane.SpawnNear = template.SpawnNear
	return nil
}

// LoadConfigWithTemplate loads the file at path, falling back to the
// default configuration when it does not exist, then applies the template.
func LoadConfigWithTemplate(path, key string) (*Config, error) {
	config, err := LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		config = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if key != "" {
		if err := ApplySystemTemplate(config, key); err != nil {
			return nil, err
		}
	}
	return config, nil
}
