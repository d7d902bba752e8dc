package particles

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/studiofx/internal/dynamo"
	"github.com/san-kum/studiofx/internal/host"
	"github.com/san-kum/studiofx/internal/surface"
)

// Field binds a particle State to a host and a surface: it seeds on mount,
// steps and renders once per frame, and follows viewport resizes.
type Field struct {
	cfg Config
	rng Rand
	log *slog.Logger

	host    host.Host
	surf    surface.Surface
	state   State
	frame   host.FrameID
	detach  func()
	mounted bool
}

func NewField(cfg Config, rng Rand, log *slog.Logger) *Field {
	if log == nil {
		log = slog.Default()
	}
	return &Field{cfg: cfg, rng: rng, log: log.With("effect", "field")}
}

// Mount sizes surf to the host viewport, seeds the particles and schedules the
// first frame. With no host or surface it returns ErrNoSurface and the field
// stays inert.
func (f *Field) Mount(h host.Host, surf surface.Surface) error {
	if h == nil || surf == nil {
		return dynamo.ErrNoSurface
	}
	if f.mounted {
		return dynamo.ErrAlreadyMounted
	}
	vp := h.Viewport()
	if vp.Width <= 0 || vp.Height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", dynamo.ErrNoSurface, vp.Width, vp.Height)
	}

	surf.Resize(vp.Width, vp.Height)
	f.host, f.surf = h, surf
	f.state = Seed(f.cfg, f.rng, float64(vp.Width), float64(vp.Height))
	f.detach = h.OnResize(f.resize)
	f.frame = h.RequestFrame(f.tick)
	f.mounted = true

	f.log.Debug("mounted", "particles", len(f.state.Particles), "width", vp.Width, "height", vp.Height)
	return nil
}

// Unmount cancels the pending frame and detaches the resize listener.
func (f *Field) Unmount() {
	if !f.mounted {
		return
	}
	f.host.CancelFrame(f.frame)
	f.detach()
	f.mounted = false
	f.log.Debug("unmounted", "ticks", f.state.Tick)
}

func (f *Field) Mounted() bool { return f.mounted }

// State returns a copy of the current field.
func (f *Field) State() State { return f.state.Clone() }

func (f *Field) resize(vp host.Viewport) {
	if !f.mounted {
		return
	}
	f.surf.Resize(vp.Width, vp.Height)
	f.state = f.state.Resized(float64(vp.Width), float64(vp.Height))
	f.log.Debug("resized", "width", vp.Width, "height", vp.Height)
}

func (f *Field) tick(time.Time) {
	if !f.mounted {
		return
	}
	f.state = Step(f.cfg, f.state, f.cfg.TimeStep)
	Render(f.cfg, f.state, f.surf)
	f.frame = f.host.RequestFrame(f.tick)
}
