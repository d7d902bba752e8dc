package lens

import (
	"log/slog"
	"sort"
	"time"

	"github.com/san-kum/studiofx/internal/dynamo"
	"github.com/san-kum/studiofx/internal/host"
	"github.com/san-kum/studiofx/internal/surface"
)

// Grid follows the pointer over a fixed set of item centres and re-evaluates
// the lens once per frame.
type Grid struct {
	cfg Config
	log *slog.Logger

	host    host.Host
	origin  dynamo.Vec
	centers []dynamo.Vec
	pointer *dynamo.Vec
	items   []Item
	frames  int
	frame   host.FrameID
	detach  func()
	mounted bool
}

func NewGrid(cfg Config, log *slog.Logger) *Grid {
	if log == nil {
		log = slog.Default()
	}
	return &Grid{cfg: cfg, log: log.With("effect", "lens")}
}

func (g *Grid) Mount(h host.Host, origin dynamo.Vec, centers []dynamo.Vec) error {
	if h == nil {
		return dynamo.ErrNoSurface
	}
	if len(centers) == 0 {
		return dynamo.ErrNoItems
	}
	if g.mounted {
		return dynamo.ErrAlreadyMounted
	}
	g.host, g.origin = h, origin
	g.centers = append([]dynamo.Vec(nil), centers...)
	g.pointer = nil
	g.items = Evaluate(g.cfg, nil, g.centers)
	g.frames = 0
	g.detach = h.OnPointer(g.onPointer)
	g.frame = h.RequestFrame(g.tick)
	g.mounted = true
	g.log.Debug("mounted", "items", len(centers))
	return nil
}

func (g *Grid) Unmount() {
	if !g.mounted {
		return
	}
	g.host.CancelFrame(g.frame)
	g.detach()
	g.mounted = false
	g.log.Debug("unmounted", "frames", g.frames)
}

func (g *Grid) Mounted() bool { return g.mounted }

func (g *Grid) Frames() int { return g.frames }

func (g *Grid) Origin() dynamo.Vec { return g.origin }

func (g *Grid) Items() []Item {
	return append([]Item(nil), g.items...)
}

func (g *Grid) onPointer(ev host.PointerEvent) {
	if !g.mounted {
		return
	}
	if ev.Kind == host.PointerLeave {
		g.pointer = nil
		return
	}
	g.pointer = &dynamo.Vec{X: ev.X - g.origin.X, Y: ev.Y - g.origin.Y}
}

func (g *Grid) tick(time.Time) {
	if !g.mounted {
		return
	}
	g.items = Evaluate(g.cfg, g.pointer, g.centers)
	g.frames++
	g.frame = g.host.RequestFrame(g.tick)
}

var (
	baseColor = surface.Color{R: 0.45, G: 0.45, B: 0.45, A: 1}
	tintColor = surface.Color{R: 0.973, G: 0.443, B: 0.443, A: 1}
)

// Render clears surf and draws every item as a square of side cell·scale,
// nearer items on top, with the red tint laid over at the item's tint alpha.
func Render(items []Item, cell float64, origin dynamo.Vec, surf surface.Surface) {
	w, h := surf.Size()
	surf.FillRect(0, 0, float64(w), float64(h), surface.Black)

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return items[order[a]].Scale < items[order[b]].Scale })

	for _, i := range order {
		it := items[i]
		side := cell * it.Scale
		x := origin.X + it.Center.X - side/2
		y := origin.Y + it.Center.Y - side/2
		surf.FillRect(x, y, side, side, baseColor)
		if it.Tint > 0 {
			surf.FillRect(x, y, side, side, tintColor.WithAlpha(it.Tint))
		}
	}
}
