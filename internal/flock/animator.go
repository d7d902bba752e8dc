package flock

import (
	"log/slog"
	"time"

	"github.com/san-kum/studiofx/internal/dynamo"
	"github.com/san-kum/studiofx/internal/host"
)

// Animator drives a flock State from a host: it samples the pointer from host
// events and feeds it to Step as an explicit Input once per frame.
type Animator struct {
	cfg    Config
	spring Spring
	rng    Rand
	log    *slog.Logger

	host    host.Host
	origin  dynamo.Vec
	bounds  dynamo.Vec
	state   State
	pointer Pointer
	start   time.Time
	last    time.Time
	frame   host.FrameID
	detach  func()
	mounted bool
}

func NewAnimator(cfg Config, spring Spring, rng Rand, log *slog.Logger) *Animator {
	if log == nil {
		log = slog.Default()
	}
	return &Animator{cfg: cfg, spring: spring, rng: rng, log: log.With("effect", "flock")}
}

// Mount captures the home positions, attaches pointer listeners and starts the
// tick loop. origin is where the container sits in host coordinates; homes and
// pointer samples are relative to it.
func (a *Animator) Mount(h host.Host, origin dynamo.Vec, homes []dynamo.Vec) error {
	if h == nil {
		return dynamo.ErrNoSurface
	}
	if len(homes) == 0 {
		return dynamo.ErrNoItems
	}
	if a.mounted {
		return dynamo.ErrAlreadyMounted
	}

	a.host, a.origin = h, origin
	a.state = NewState(a.cfg, a.rng, homes)
	a.pointer = Absent
	a.start = h.Now()
	a.last = time.Time{}
	a.detach = h.OnPointer(a.onPointer)
	a.frame = h.RequestFrame(a.tick)
	a.mounted = true

	a.log.Debug("mounted", "items", len(homes))
	return nil
}

// Unmount stops the tick loop and detaches the pointer listeners.
func (a *Animator) Unmount() {
	if !a.mounted {
		return
	}
	a.host.CancelFrame(a.frame)
	a.detach()
	a.mounted = false
	a.log.Debug("unmounted", "ticks", a.state.Tick)
}

// SetBounds sets the container size. Pointer samples outside it read as
// absent, as the container would see a mouseleave. Zero disables clipping.
func (a *Animator) SetBounds(w, h float64) { a.bounds = dynamo.Vec{X: w, Y: h} }

func (a *Animator) Mounted() bool { return a.mounted }

func (a *Animator) State() State { return a.state.Clone() }

// Pointer returns the last sample, relative to the container.
func (a *Animator) Pointer() Pointer { return a.pointer }

func (a *Animator) Origin() dynamo.Vec { return a.origin }

func (a *Animator) onPointer(ev host.PointerEvent) {
	if !a.mounted {
		return
	}
	if ev.Kind == host.PointerLeave {
		a.pointer = Absent
		return
	}
	x, y := ev.X-a.origin.X, ev.Y-a.origin.Y
	if a.bounds.X > 0 && a.bounds.Y > 0 && (x < 0 || y < 0 || x > a.bounds.X || y > a.bounds.Y) {
		a.pointer = Absent
		return
	}
	a.pointer = At(x, y)
}

func (a *Animator) tick(now time.Time) {
	if !a.mounted {
		return
	}
	a.state = Step(a.cfg, a.spring, a.state, Input{
		Pointer: a.pointer,
		Elapsed: now.Sub(a.start).Seconds(),
		Dt:      a.frameDt(now),
	})
	a.last = now
	a.frame = a.host.RequestFrame(a.tick)
}

func (a *Animator) frameDt(now time.Time) float64 {
	if a.last.IsZero() {
		return a.cfg.FrameDt
	}
	dt := now.Sub(a.last).Seconds()
	if dt <= 0 {
		return a.cfg.FrameDt
	}
	if dt > a.cfg.MaxDt {
		return a.cfg.MaxDt
	}
	return dt
}
