package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/studiofx/internal/dynamo"
	"github.com/san-kum/studiofx/internal/host"
)

// PointerScript drives the pointer of a headless run. At returns where the
// pointer is t seconds into the run, in host coordinates, and whether it is
// inside the host at all.
type PointerScript interface {
	At(t float64, vp host.Viewport) (x, y float64, present bool)
}

type PointerFunc func(t float64, vp host.Viewport) (float64, float64, bool)

func (f PointerFunc) At(t float64, vp host.Viewport) (float64, float64, bool) { return f(t, vp) }

const (
	sweepPeriod = 4.0
	orbitPeriod = 6.0
)

var pointerScripts = map[string]PointerScript{
	"none": PointerFunc(func(float64, host.Viewport) (float64, float64, bool) {
		return 0, 0, false
	}),
	"hold": PointerFunc(func(_ float64, vp host.Viewport) (float64, float64, bool) {
		return float64(vp.Width) / 2, float64(vp.Height) / 2, true
	}),
	// sweep crosses the middle row left to right, leaving the host briefly
	// at either end of each pass.
	"sweep": PointerFunc(func(t float64, vp host.Viewport) (float64, float64, bool) {
		w := float64(vp.Width)
		phase := math.Mod(t, sweepPeriod) / sweepPeriod
		x := -0.1*w + phase*1.2*w
		return x, float64(vp.Height) / 2, x >= 0 && x <= w
	}),
	"orbit": PointerFunc(func(t float64, vp host.Viewport) (float64, float64, bool) {
		cx, cy := float64(vp.Width)/2, float64(vp.Height)/2
		r := math.Min(cx, cy) / 2
		a := 2 * math.Pi * t / orbitPeriod
		return cx + r*math.Cos(a), cy + r*math.Sin(a), true
	}),
}

func NewPointerScript(name string) (PointerScript, error) {
	s, ok := pointerScripts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownPointer, name)
	}
	return s, nil
}

func PointerScripts() []string {
	names := make([]string, 0, len(pointerScripts))
	for name := range pointerScripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
