package sim

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/san-kum/studiofx/internal/config"
	"github.com/san-kum/studiofx/internal/dynamo"
	"github.com/san-kum/studiofx/internal/flock"
	"github.com/san-kum/studiofx/internal/host"
	"github.com/san-kum/studiofx/internal/layout"
	"github.com/san-kum/studiofx/internal/lens"
	"github.com/san-kum/studiofx/internal/metrics"
	"github.com/san-kum/studiofx/internal/particles"
	"github.com/san-kum/studiofx/internal/surface"
)

// Effect is the uniform face every visual effect shows to hosts and to the
// runner. Draw paints the current frame onto the effect's surface; effects
// that paint inside their own frame callback make it a no-op.
type Effect interface {
	Name() string
	Mount(h host.Host) error
	Unmount()
	Draw()
	Snapshot() dynamo.State
	Stride() int
}

type EffectFactory func(cfg *config.Config, rng *rand.Rand, surf surface.Surface, log *slog.Logger) (Effect, error)

type Registry struct {
	effects map[string]EffectFactory
}

func NewRegistry() *Registry {
	r := &Registry{effects: make(map[string]EffectFactory)}
	r.effects["field"] = newFieldEffect
	r.effects["flock"] = newFlockEffect
	r.effects["lens"] = newLensEffect
	return r
}

func (r *Registry) NewEffect(name string, cfg *config.Config, rng *rand.Rand, surf surface.Surface, log *slog.Logger) (Effect, error) {
	fn, ok := r.effects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownEffect, name)
	}
	return fn(cfg, rng, surf, log)
}

func (r *Registry) ListEffects() []string {
	names := make([]string, 0, len(r.effects))
	for name := range r.effects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns fresh metrics suited to an effect's snapshot layout.
func (r *Registry) DefaultMetrics(effect string, cfg *config.Config) []dynamo.Metric {
	switch effect {
	case "field":
		return []dynamo.Metric{
			metrics.NewMean("mean_opacity", particles.SnapshotStride, 2),
			metrics.NewWrapViolations(particles.SnapshotStride,
				float64(cfg.Run.Width), float64(cfg.Run.Height), cfg.Field.Margin),
			metrics.NewStability(float64(max(cfg.Run.Width, cfg.Run.Height)) + 2*cfg.Field.Margin),
		}
	case "flock":
		return []dynamo.Metric{
			metrics.NewOffsetEnergy(flock.SnapshotStride),
			metrics.NewPeakRepulsion(flock.SnapshotStride),
			metrics.NewPointerCoverage(),
			metrics.NewStability(cfg.Flock.AmplitudeMax + 4*cfg.Flock.MaxRepulsionForce),
		}
	case "lens":
		return []dynamo.Metric{
			metrics.NewMean("mean_scale", lensStride, 0),
			metrics.NewMean("mean_tint", lensStride, 1),
			metrics.NewPointerCoverage(),
		}
	}
	return nil
}

type fieldEffect struct {
	field *particles.Field
	surf  surface.Surface
}

func newFieldEffect(cfg *config.Config, rng *rand.Rand, surf surface.Surface, log *slog.Logger) (Effect, error) {
	if err := cfg.Field.Validate(); err != nil {
		return nil, err
	}
	if surf == nil {
		surf = surface.NewRecorder(0, 0)
	}
	return &fieldEffect{field: particles.NewField(cfg.Field, rng, log), surf: surf}, nil
}

func (e *fieldEffect) Name() string            { return "field" }
func (e *fieldEffect) Mount(h host.Host) error { return e.field.Mount(h, e.surf) }
func (e *fieldEffect) Unmount()                { e.field.Unmount() }
func (e *fieldEffect) Draw()                   {}
func (e *fieldEffect) Snapshot() dynamo.State  { return e.field.State().Snapshot() }
func (e *fieldEffect) Stride() int             { return particles.SnapshotStride }

// Field exposes the underlying component for hosts that render extra layers.
func (e *fieldEffect) Field() *particles.Field { return e.field }

// container centres a layout placement in the viewport.
func container(p layout.Placement, vp host.Viewport) dynamo.Vec {
	return dynamo.Vec{X: (float64(vp.Width) - p.Width) / 2, Y: (float64(vp.Height) - p.Height) / 2}
}

// sized keeps a surface matched to the viewport for effects that do not
// manage their own surface.
type sized struct {
	surf   surface.Surface
	detach func()
}

func (s *sized) attach(h host.Host) {
	if s.surf == nil {
		return
	}
	vp := h.Viewport()
	s.surf.Resize(vp.Width, vp.Height)
	s.detach = h.OnResize(func(vp host.Viewport) { s.surf.Resize(vp.Width, vp.Height) })
}

func (s *sized) release() {
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
}

type flockEffect struct {
	sized
	anim   *flock.Animator
	layout layout.Config
	place  layout.Placement
}

func newFlockEffect(cfg *config.Config, rng *rand.Rand, surf surface.Surface, log *slog.Logger) (Effect, error) {
	if err := cfg.Flock.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Layout.Validate(); err != nil {
		return nil, err
	}
	spring, err := flock.NewSpring(cfg.Flock.Spring)
	if err != nil {
		return nil, err
	}
	return &flockEffect{
		sized:  sized{surf: surf},
		anim:   flock.NewAnimator(cfg.Flock, spring, rng, log),
		layout: cfg.Layout,
	}, nil
}

func (e *flockEffect) Name() string { return "flock" }

func (e *flockEffect) Mount(h host.Host) error {
	if h == nil {
		return dynamo.ErrNoSurface
	}
	if e.anim.Mounted() {
		return dynamo.ErrAlreadyMounted
	}
	vp := h.Viewport()
	place, err := e.layout.PlaceIn(float64(vp.Width))
	if err != nil {
		return err
	}
	e.place = place
	e.anim.SetBounds(place.Width, place.Height)
	if err := e.anim.Mount(h, container(place, vp), place.Homes); err != nil {
		return err
	}
	e.attach(h)
	return nil
}

func (e *flockEffect) Unmount() {
	e.anim.Unmount()
	e.release()
}

func (e *flockEffect) Draw() {
	if e.surf == nil {
		return
	}
	flock.Render(e.anim.State(), e.place.Cell/2, e.anim.Pointer(), e.anim.Origin(), e.surf)
}

func (e *flockEffect) Snapshot() dynamo.State { return e.anim.State().Snapshot() }
func (e *flockEffect) Stride() int            { return flock.SnapshotStride }

// lensStride is [scale, tint] per item.
const lensStride = 2

type lensEffect struct {
	sized
	grid  *lens.Grid
	place layout.Placement
}

func newLensEffect(cfg *config.Config, rng *rand.Rand, surf surface.Surface, log *slog.Logger) (Effect, error) {
	if err := cfg.Lens.Validate(); err != nil {
		return nil, err
	}
	lc := cfg.Layout
	lc.Kind = layout.KindHoneycomb
	place, err := lc.Place()
	if err != nil {
		return nil, err
	}
	return &lensEffect{sized: sized{surf: surf}, grid: lens.NewGrid(cfg.Lens, log), place: place}, nil
}

func (e *lensEffect) Name() string { return "lens" }

func (e *lensEffect) Mount(h host.Host) error {
	if h == nil {
		return dynamo.ErrNoSurface
	}
	if err := e.grid.Mount(h, container(e.place, h.Viewport()), e.place.Homes); err != nil {
		return err
	}
	e.attach(h)
	return nil
}

func (e *lensEffect) Unmount() {
	e.grid.Unmount()
	e.release()
}

func (e *lensEffect) Draw() {
	if e.surf == nil {
		return
	}
	lens.Render(e.grid.Items(), e.place.Cell, e.grid.Origin(), e.surf)
}

func (e *lensEffect) Snapshot() dynamo.State {
	items := e.grid.Items()
	out := make(dynamo.State, 0, len(items)*lensStride)
	for _, it := range items {
		out = append(out, it.Scale, it.Tint)
	}
	return out
}

func (e *lensEffect) Stride() int { return lensStride }
