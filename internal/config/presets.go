package config

import "sort"

// Presets are keyed by effect, then preset name. Each preset is a complete
// configuration derived from the defaults.
var Presets = map[string]map[string]*Config{
	"field": {
		"calm": preset("field", func(c *Config) {
			c.Field.Count = 60
			c.Field.MaxSpeed = 0.1
			c.Field.Drift = 0.05
			c.Field.TrailAlpha = 0.015
		}),
		"dense": preset("field", func(c *Config) {
			c.Field.Count = 400
			c.Field.SizeMax = 2.5
		}),
		"jittery": preset("field", func(c *Config) {
			c.Field.Drift = 0.6
			c.Field.FlickerRate = 40
			c.Field.TrailAlpha = 0.12
		}),
	},
	"flock": {
		"calm": preset("flock", func(c *Config) {
			c.Flock.AmplitudeMax = 8
			c.Flock.FrequencyMax = 0.1
			c.Flock.MaxRepulsionForce = 12
		}),
		"jittery": preset("flock", func(c *Config) {
			c.Flock.FrequencyMin = 0.5
			c.Flock.FrequencyMax = 1.5
			c.Flock.Spring.Damping = 8
			c.Flock.Spring.Stiffness = 300
		}),
		"sluggish": preset("flock", func(c *Config) {
			c.Flock.Spring.Damping = 30
			c.Flock.Spring.Stiffness = 40
			c.Flock.Spring.Mass = 3
			c.Flock.DampingFactor = 0.97
		}),
	},
	"lens": {
		"honeycomb": preset("lens", func(c *Config) {
			c.Layout.Kind = "honeycomb"
			c.Layout.Count = 24
		}),
	},
}

func preset(effect string, mod func(*Config)) *Config {
	c := DefaultConfig()
	c.Run.Effect = effect
	mod(c)
	return c
}

func GetPreset(effect, name string) *Config {
	effectPresets, ok := Presets[effect]
	if !ok {
		return nil
	}
	cfg, ok := effectPresets[name]
	if !ok {
		return nil
	}
	return cfg.clone()
}

func ListPresets(effect string) []string {
	effectPresets, ok := Presets[effect]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(effectPresets))
	for name := range effectPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FindPreset looks a preset up by name alone, trying effects in name order.
func FindPreset(name string) *Config {
	effects := make([]string, 0, len(Presets))
	for effect := range Presets {
		effects = append(effects, effect)
	}
	sort.Strings(effects)
	for _, effect := range effects {
		if cfg, ok := Presets[effect][name]; ok {
			return cfg.clone()
		}
	}
	return nil
}

// clone returns an independent copy; every section is a plain value.
func (c *Config) clone() *Config {
	out := *c
	return &out
}
