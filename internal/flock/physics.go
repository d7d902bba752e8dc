package flock

import (
	"math"

	"github.com/san-kum/studiofx/internal/dynamo"
)

// Pointer is the pointer sample a tick sees. Present is false once the pointer
// left the container.
type Pointer struct {
	Pos     dynamo.Vec
	Present bool
}

func At(x, y float64) Pointer { return Pointer{Pos: dynamo.Vec{X: x, Y: y}, Present: true} }

var Absent = Pointer{}

// Input is the per-tick message fed to Step.
type Input struct {
	Pointer Pointer
	// Elapsed is seconds since the animator started; it drives ambient motion.
	Elapsed float64
	// Dt is the spring step in seconds.
	Dt float64
}

type State struct {
	Items   []Item
	Elapsed float64
	Tick    int
}

func NewState(cfg Config, rng Rand, homes []dynamo.Vec) State {
	items := make([]Item, len(homes))
	for i, h := range homes {
		items[i] = NewItem(cfg, rng, h)
	}
	return State{Items: items}
}

func (s State) Clone() State {
	c := s
	c.Items = make([]Item, len(s.Items))
	copy(c.Items, s.Items)
	return c
}

// Repulsion is the push a pointer exerts on an item at home. It is zero at or
// beyond the radius and grows linearly to MaxRepulsionForce at distance 0,
// pointing from the pointer to home. A pointer exactly on home pushes along +X.
func Repulsion(cfg Config, pointer, home dynamo.Vec) dynamo.Vec {
	d := pointer.Dist(home)
	if d >= cfg.RepulsionRadius {
		return dynamo.Vec{}
	}
	force := (cfg.RepulsionRadius - d) / cfg.RepulsionRadius * cfg.MaxRepulsionForce
	angle := math.Atan2(home.Y-pointer.Y, home.X-pointer.X)
	return dynamo.Vec{X: math.Cos(angle) * force, Y: math.Sin(angle) * force}
}

// Step advances every item by one tick and returns the new state; s is not
// modified. Items in range of a present pointer get their repulsion replaced,
// then every item's repulsion decays and its offset springs toward
// ambient + repulsion.
func Step(cfg Config, spring Spring, s State, in Input) State {
	next := s.Clone()
	next.Elapsed = in.Elapsed
	next.Tick++

	if in.Pointer.Present {
		for i := range next.Items {
			it := &next.Items[i]
			if in.Pointer.Pos.Dist(it.Home) < cfg.RepulsionRadius {
				it.Repulsion = Repulsion(cfg, in.Pointer.Pos, it.Home)
			}
		}
	}

	for i := range next.Items {
		it := &next.Items[i]
		it.Repulsion = it.Repulsion.Scale(cfg.DampingFactor)
		target := it.Ambient.At(in.Elapsed).Add(it.Repulsion)
		it.Offset.X, it.Velocity.X = spring.Step(it.Offset.X, it.Velocity.X, target.X, in.Dt)
		it.Offset.Y, it.Velocity.Y = spring.Step(it.Offset.Y, it.Velocity.Y, target.Y, in.Dt)
	}
	return next
}

// SnapshotStride is the number of values Snapshot emits per item.
const SnapshotStride = 4

// Snapshot flattens the flock into [offsetX, offsetY, repulsionX, repulsionY] per item.
func (s State) Snapshot() dynamo.State {
	out := make(dynamo.State, 0, len(s.Items)*SnapshotStride)
	for _, it := range s.Items {
		out = append(out, it.Offset.X, it.Offset.Y, it.Repulsion.X, it.Repulsion.Y)
	}
	return out
}
