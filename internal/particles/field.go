package particles

import (
	"math"

	"github.com/san-kum/studiofx/internal/dynamo"
)

// State is everything one tick of the field reads and writes.
type State struct {
	Particles []Particle
	Time      float64
	Tick      int
	Width     float64
	Height    float64
}

func Seed(cfg Config, rng Rand, w, h float64) State {
	ps := make([]Particle, cfg.Count)
	for i := range ps {
		ps[i] = NewParticle(cfg, rng, w, h)
	}
	return State{Particles: ps, Width: w, Height: h}
}

func (s State) Clone() State {
	c := s
	c.Particles = make([]Particle, len(s.Particles))
	copy(c.Particles, s.Particles)
	return c
}

// Resized returns the state bound to new surface dimensions. Positions are
// left alone; anything outside the new bounds wraps on the next tick.
func (s State) Resized(w, h float64) State {
	c := s.Clone()
	c.Width, c.Height = w, h
	return c
}

// Step advances the field by one tick, with dt the increment of the time
// accumulator. The input state is not modified.
func Step(cfg Config, s State, dt float64) State {
	next := s.Clone()
	next.Time += dt
	next.Tick++
	t := next.Time

	for i := range next.Particles {
		p := &next.Particles[i]
		fi := float64(i)

		p.X += p.VX + math.Sin(t+fi*cfg.DriftPhaseX)*cfg.Drift
		p.Y += p.VY + math.Cos(t+fi*cfg.DriftPhaseY)*cfg.Drift
		p.Opacity = cfg.OpacityBase + math.Sin(t*cfg.FlickerRate+fi)*cfg.OpacitySwing

		p.X = wrap(p.X, next.Width, cfg.Margin)
		p.Y = wrap(p.Y, next.Height, cfg.Margin)
	}
	return next
}

// wrap moves a coordinate that left [-margin, extent+margin] to the opposite edge.
func wrap(v, extent, margin float64) float64 {
	if v < -margin {
		return extent + margin
	}
	if v > extent+margin {
		return -margin
	}
	return v
}

// SnapshotStride is the number of values Snapshot emits per particle.
const SnapshotStride = 3

// Snapshot flattens the field into [x, y, opacity] per particle.
func (s State) Snapshot() dynamo.State {
	out := make(dynamo.State, 0, len(s.Particles)*SnapshotStride)
	for _, p := range s.Particles {
		out = append(out, p.X, p.Y, p.Opacity)
	}
	return out
}
