package particles

import (
	"fmt"

	"github.com/san-kum/studiofx/internal/dynamo"
)

const (
	DefaultCount        = 120
	DefaultMargin       = 50.0
	DefaultTimeStep     = 0.005
	DefaultTrailAlpha   = 0.03
	DefaultMaxSpeed     = 0.3
	DefaultDrift        = 0.1
	DefaultOpacityBase  = 0.3
	DefaultOpacitySwing = 0.1
	DefaultFlickerRate  = 10.0
)

// Config holds the tuning constants of the particle field. The defaults are
// the hero section's values and have no meaning beyond how the effect looks.
type Config struct {
	Count      int     `yaml:"count"`
	Margin     float64 `yaml:"margin"`
	TimeStep   float64 `yaml:"time_step"`
	TrailAlpha float64 `yaml:"trail_alpha"`
	// Velocities are drawn from (-MaxSpeed/2, MaxSpeed/2) per axis.
	MaxSpeed float64 `yaml:"max_speed"`
	SizeMin  float64 `yaml:"size_min"`
	SizeMax  float64 `yaml:"size_max"`
	HueMin   float64 `yaml:"hue_min"`
	HueMax   float64 `yaml:"hue_max"`
	// Drift is the amplitude of the per-tick sinusoidal wobble added to velocity.
	Drift        float64 `yaml:"drift"`
	DriftPhaseX  float64 `yaml:"drift_phase_x"`
	DriftPhaseY  float64 `yaml:"drift_phase_y"`
	OpacityBase  float64 `yaml:"opacity_base"`
	OpacitySwing float64 `yaml:"opacity_swing"`
	FlickerRate  float64 `yaml:"flicker_rate"`
	Saturation   float64 `yaml:"saturation"`
	Lightness    float64 `yaml:"lightness"`
}

func DefaultConfig() Config {
	return Config{
		Count:        DefaultCount,
		Margin:       DefaultMargin,
		TimeStep:     DefaultTimeStep,
		TrailAlpha:   DefaultTrailAlpha,
		MaxSpeed:     DefaultMaxSpeed,
		SizeMin:      1,
		SizeMax:      4,
		HueMin:       340,
		HueMax:       360,
		Drift:        DefaultDrift,
		DriftPhaseX:  0.1,
		DriftPhaseY:  0.15,
		OpacityBase:  DefaultOpacityBase,
		OpacitySwing: DefaultOpacitySwing,
		FlickerRate:  DefaultFlickerRate,
		Saturation:   0.6,
		Lightness:    0.5,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Count < 0:
		return fmt.Errorf("%w: field count %d", dynamo.ErrParameterBounds, c.Count)
	case c.Margin < 0:
		return fmt.Errorf("%w: field margin %f", dynamo.ErrParameterBounds, c.Margin)
	case c.SizeMin <= 0 || c.SizeMax < c.SizeMin:
		return fmt.Errorf("%w: field size range [%f, %f]", dynamo.ErrParameterBounds, c.SizeMin, c.SizeMax)
	case c.HueMax < c.HueMin:
		return fmt.Errorf("%w: field hue range [%f, %f]", dynamo.ErrParameterBounds, c.HueMin, c.HueMax)
	case c.TrailAlpha < 0 || c.TrailAlpha > 1:
		return fmt.Errorf("%w: field trail alpha %f", dynamo.ErrParameterBounds, c.TrailAlpha)
	case c.OpacityBase-c.OpacitySwing < 0 || c.OpacityBase+c.OpacitySwing > 1:
		return fmt.Errorf("%w: field opacity %f±%f leaves [0,1]", dynamo.ErrParameterBounds, c.OpacityBase, c.OpacitySwing)
	}
	return nil
}
