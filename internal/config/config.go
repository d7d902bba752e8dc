package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/studiofx/internal/dynamo"
	"github.com/san-kum/studiofx/internal/flock"
	"github.com/san-kum/studiofx/internal/layout"
	"github.com/san-kum/studiofx/internal/lens"
	"github.com/san-kum/studiofx/internal/particles"
)

const (
	DefaultEffect  = "field"
	DefaultTicks   = 600
	DefaultWidth   = 800
	DefaultHeight  = 600
	DefaultPointer = "none"
)

type Config struct {
	Field  particles.Config `yaml:"field"`
	Flock  flock.Config     `yaml:"flock"`
	Lens   lens.Config      `yaml:"lens"`
	Layout layout.Config    `yaml:"layout"`
	Run    RunConfig        `yaml:"run"`
}

// RunConfig describes a headless or windowed session.
type RunConfig struct {
	Effect string `yaml:"effect"`
	Ticks  int    `yaml:"ticks"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Seed   int64  `yaml:"seed"`
	// Pointer names the scripted pointer path of headless runs.
	Pointer string `yaml:"pointer"`
	// FrameRate is the frequency of the simulated frame clock.
	FrameRate float64 `yaml:"frame_rate"`
}

func DefaultConfig() *Config {
	return &Config{
		Field:  particles.DefaultConfig(),
		Flock:  flock.DefaultConfig(),
		Lens:   lens.DefaultConfig(),
		Layout: layout.DefaultConfig(),
		Run: RunConfig{
			Effect:    DefaultEffect,
			Ticks:     DefaultTicks,
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			Pointer:   DefaultPointer,
			FrameRate: 60,
		},
	}
}

// Load reads a yaml file over the defaults, so a file only needs the fields
// it changes.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a yaml file over base, typically a preset, and returns base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Run.Ticks < 0 {
		return fmt.Errorf("%w: ticks %d", dynamo.ErrParameterBounds, c.Run.Ticks)
	}
	if c.Run.Width <= 0 || c.Run.Height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", dynamo.ErrParameterBounds, c.Run.Width, c.Run.Height)
	}
	if c.Run.FrameRate <= 0 {
		return fmt.Errorf("%w: frame rate %f", dynamo.ErrParameterBounds, c.Run.FrameRate)
	}
	if err := c.Field.Validate(); err != nil {
		return err
	}
	if err := c.Flock.Validate(); err != nil {
		return err
	}
	if err := c.Lens.Validate(); err != nil {
		return err
	}
	return c.Layout.Validate()
}
