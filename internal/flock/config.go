package flock

import (
	"fmt"

	"github.com/san-kum/studiofx/internal/dynamo"
)

const (
	DefaultRepulsionRadius   = 150.0
	DefaultMaxRepulsionForce = 25.0
	DefaultDampingFactor     = 0.92
	DefaultSpringDamping     = 20.0
	DefaultSpringStiffness   = 150.0
	DefaultSpringMass        = 1.0
	DefaultFrameDt           = 1.0 / 60
	DefaultMaxDt             = 0.1
)

type SpringConfig struct {
	Damping   float64 `yaml:"damping"`
	Stiffness float64 `yaml:"stiffness"`
	Mass      float64 `yaml:"mass"`
	// Integrator is "harmonica" for the closed-form spring, or the name of a
	// numerical stepper (euler, rk4, verlet, leapfrog).
	Integrator string `yaml:"integrator"`
}

// Config holds the physics tuning of the logo flock.
type Config struct {
	AmplitudeMin      float64      `yaml:"amplitude_min"`
	AmplitudeMax      float64      `yaml:"amplitude_max"`
	FrequencyMin      float64      `yaml:"frequency_min"`
	FrequencyMax      float64      `yaml:"frequency_max"`
	RepulsionRadius   float64      `yaml:"repulsion_radius"`
	MaxRepulsionForce float64      `yaml:"max_repulsion_force"`
	DampingFactor     float64      `yaml:"damping_factor"`
	Spring            SpringConfig `yaml:"spring"`
	// FrameDt is the spring step used when no frame interval is known yet.
	FrameDt float64 `yaml:"frame_dt"`
	// MaxDt caps the spring step after a stalled frame.
	MaxDt float64 `yaml:"max_dt"`
}

func DefaultConfig() Config {
	return Config{
		AmplitudeMin:      5,
		AmplitudeMax:      20,
		FrequencyMin:      0.05,
		FrequencyMax:      0.2,
		RepulsionRadius:   DefaultRepulsionRadius,
		MaxRepulsionForce: DefaultMaxRepulsionForce,
		DampingFactor:     DefaultDampingFactor,
		Spring: SpringConfig{
			Damping:    DefaultSpringDamping,
			Stiffness:  DefaultSpringStiffness,
			Mass:       DefaultSpringMass,
			Integrator: "harmonica",
		},
		FrameDt: DefaultFrameDt,
		MaxDt:   DefaultMaxDt,
	}
}

func (c Config) Validate() error {
	switch {
	case c.AmplitudeMin < 0 || c.AmplitudeMax < c.AmplitudeMin:
		return fmt.Errorf("%w: flock amplitude range [%f, %f]", dynamo.ErrParameterBounds, c.AmplitudeMin, c.AmplitudeMax)
	case c.FrequencyMin < 0 || c.FrequencyMax < c.FrequencyMin:
		return fmt.Errorf("%w: flock frequency range [%f, %f]", dynamo.ErrParameterBounds, c.FrequencyMin, c.FrequencyMax)
	case c.RepulsionRadius <= 0:
		return fmt.Errorf("%w: repulsion radius %f", dynamo.ErrParameterBounds, c.RepulsionRadius)
	case c.MaxRepulsionForce < 0:
		return fmt.Errorf("%w: max repulsion force %f", dynamo.ErrParameterBounds, c.MaxRepulsionForce)
	case c.DampingFactor < 0 || c.DampingFactor >= 1:
		return fmt.Errorf("%w: repulsion damping factor %f must be in [0,1)", dynamo.ErrParameterBounds, c.DampingFactor)
	case c.Spring.Mass <= 0 || c.Spring.Stiffness <= 0 || c.Spring.Damping < 0:
		return fmt.Errorf("%w: spring damping=%f stiffness=%f mass=%f", dynamo.ErrParameterBounds,
			c.Spring.Damping, c.Spring.Stiffness, c.Spring.Mass)
	case c.FrameDt <= 0 || c.MaxDt < c.FrameDt:
		return fmt.Errorf("%w: frame dt %f, max dt %f", dynamo.ErrParameterBounds, c.FrameDt, c.MaxDt)
	}
	return nil
}
