package flock

import (
	"math"

	"github.com/san-kum/studiofx/internal/dynamo"
)

// Rand is the random source ambient parameters are drawn from.
type Rand interface {
	Float64() float64
}

// Ambient is the fixed-for-life wander of one item.
type Ambient struct {
	AmpX, AmpY     float64
	FreqX, FreqY   float64
	PhaseX, PhaseY float64
}

// At returns the wander offset t seconds after start.
func (a Ambient) At(t float64) dynamo.Vec {
	return dynamo.Vec{
		X: math.Sin(t*a.FreqX+a.PhaseX) * a.AmpX,
		Y: math.Cos(t*a.FreqY+a.PhaseY) * a.AmpY,
	}
}

type Item struct {
	Home    dynamo.Vec
	Ambient Ambient
	// Offset and Velocity are the spring-smoothed displacement from Home.
	Offset    dynamo.Vec
	Velocity  dynamo.Vec
	Repulsion dynamo.Vec
}

// Position is where the item is drawn.
func (it Item) Position() dynamo.Vec { return it.Home.Add(it.Offset) }

func between(rng Rand, lo, hi float64) float64 {
	return rng.Float64()*(hi-lo) + lo
}

func NewItem(cfg Config, rng Rand, home dynamo.Vec) Item {
	return Item{
		Home: home,
		Ambient: Ambient{
			AmpX:   between(rng, cfg.AmplitudeMin, cfg.AmplitudeMax),
			AmpY:   between(rng, cfg.AmplitudeMin, cfg.AmplitudeMax),
			FreqX:  between(rng, cfg.FrequencyMin, cfg.FrequencyMax),
			FreqY:  between(rng, cfg.FrequencyMin, cfg.FrequencyMax),
			PhaseX: rng.Float64() * 2 * math.Pi,
			PhaseY: rng.Float64() * 2 * math.Pi,
		},
	}
}
