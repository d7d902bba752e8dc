package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/studiofx/internal/dynamo"
	"github.com/san-kum/studiofx/internal/host"
)

// Runner drives one effect headlessly: a manual clock advances by one frame
// per tick, the pointer script posts events, and every tick's snapshot is
// recorded and fed to the metrics.
type Runner struct {
	effect    Effect
	pointer   PointerScript
	metrics   []dynamo.Metric
	observers []dynamo.Observer
	log       *slog.Logger
}

func New(effect Effect, pointer PointerScript, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		effect:    effect,
		pointer:   pointer,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
		log:       log,
	}
}

func (r *Runner) AddMetric(m dynamo.Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o dynamo.Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	vp := host.Viewport{Width: cfg.Width, Height: cfg.Height}
	clock := host.NewManualClock(time.Unix(0, 0))
	win := host.NewWindow(clock, vp)
	if err := r.effect.Mount(win); err != nil {
		return nil, fmt.Errorf("mount %s: %w", r.effect.Name(), err)
	}
	defer r.effect.Unmount()

	result := &Result{
		Effect:   r.effect.Name(),
		Stride:   r.effect.Stride(),
		States:   make([]dynamo.State, 0, cfg.Ticks),
		Controls: make([]dynamo.Control, 0, cfg.Ticks),
		Times:    make([]float64, 0, cfg.Ticks),
		Metrics:  make(map[string]float64),
		Errors:   make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	frame := time.Duration(float64(time.Second) / cfg.FrameRate)
	inside := false

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := float64(i+1) / cfg.FrameRate
		u := dynamo.Control{0, 0, 0}
		if r.pointer != nil {
			px, py, present := r.pointer.At(t, vp)
			switch {
			case present:
				win.MovePointer(px, py)
				u = dynamo.Control{px, py, 1}
			case inside:
				win.LeavePointer()
			}
			inside = present
		}

		clock.Advance(frame)
		win.Pump()
		r.effect.Draw()

		x := r.effect.Snapshot()
		if cfg.ValidateState && !x.IsValid() {
			err := &dynamo.SimError{Tick: i, Time: t, Wrapped: dynamo.ErrInvalidState}
			result.Errors = append(result.Errors, err)
			r.log.Warn("run stopped", "effect", result.Effect, "err", err)
			break
		}

		for _, m := range r.metrics {
			m.Observe(x, u, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(x, u, t)
		}

		result.StepsTaken++
		result.States = append(result.States, x)
		result.Controls = append(result.Controls, u)
		result.Times = append(result.Times, t)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	r.log.Debug("run finished", "effect", result.Effect, "ticks", result.StepsTaken)
	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Ticks < 0 {
		return fmt.Errorf("%w: ticks must be non-negative, got %d", dynamo.ErrParameterBounds, cfg.Ticks)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", dynamo.ErrParameterBounds, cfg.Width, cfg.Height)
	}
	if cfg.FrameRate <= 0 {
		return fmt.Errorf("%w: frame rate must be positive, got %f", dynamo.ErrParameterBounds, cfg.FrameRate)
	}
	return nil
}
