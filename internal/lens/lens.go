// Package lens scales and tints logo items by their distance to the pointer,
// like a magnifier moved over a honeycomb of logos.
package lens

import (
	"fmt"
	"math"

	"github.com/san-kum/studiofx/internal/dynamo"
)

type Config struct {
	Radius   float64 `yaml:"radius"`
	MaxScale float64 `yaml:"max_scale"`
	MinScale float64 `yaml:"min_scale"`
	MaxTint  float64 `yaml:"max_tint"`
}

func DefaultConfig() Config {
	return Config{Radius: 100, MaxScale: 1.75, MinScale: 0.5, MaxTint: 0.8}
}

func (c Config) Validate() error {
	switch {
	case c.Radius <= 0:
		return fmt.Errorf("%w: lens radius %f", dynamo.ErrParameterBounds, c.Radius)
	case c.MinScale <= 0 || c.MaxScale < c.MinScale:
		return fmt.Errorf("%w: lens scale range [%f, %f]", dynamo.ErrParameterBounds, c.MinScale, c.MaxScale)
	case c.MaxTint < 0 || c.MaxTint > 1:
		return fmt.Errorf("%w: lens tint %f", dynamo.ErrParameterBounds, c.MaxTint)
	}
	return nil
}

// Item is the lens response of one logo.
type Item struct {
	Center dynamo.Vec
	Scale  float64
	Tint   float64
}

// At evaluates one item at distance d from the pointer. An absent pointer is
// infinitely far away.
func (c Config) At(d float64) (scale, tint float64) {
	p := 1 - d/c.Radius
	if p < 0 || math.IsNaN(p) {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return c.MinScale + (c.MaxScale-c.MinScale)*p, p * p * c.MaxTint
}

// Evaluate returns the lens response of every centre for a pointer at p, or
// with no pointer when p is nil.
func Evaluate(cfg Config, p *dynamo.Vec, centers []dynamo.Vec) []Item {
	out := make([]Item, len(centers))
	for i, c := range centers {
		d := math.Inf(1)
		if p != nil {
			d = p.Dist(c)
		}
		s, t := cfg.At(d)
		out[i] = Item{Center: c, Scale: s, Tint: t}
	}
	return out
}
