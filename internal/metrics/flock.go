package metrics

import (
	"math"

	"github.com/san-kum/studiofx/internal/dynamo"
)

// OffsetEnergy is the mean over ticks of the average squared item offset,
// for flock snapshots laid out [offX, offY, repX, repY] per item.
type OffsetEnergy struct {
	name    string
	stride  int
	total   float64
	samples int
}

func NewOffsetEnergy(stride int) *OffsetEnergy {
	return &OffsetEnergy{
		name:   "offset_energy",
		stride: stride,
	}
}

func (e *OffsetEnergy) Name() string { return e.name }

func (e *OffsetEnergy) Observe(x dynamo.State, u dynamo.Control, t float64) {
	n := len(x) / e.stride
	if n == 0 {
		return
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		ox, oy := x[i*e.stride], x[i*e.stride+1]
		sum += ox*ox + oy*oy
	}
	e.total += sum / float64(n)
	e.samples++
}

func (e *OffsetEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *OffsetEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// PeakRepulsion is the largest repulsion magnitude seen on any item.
type PeakRepulsion struct {
	name   string
	stride int
	peak   float64
}

func NewPeakRepulsion(stride int) *PeakRepulsion {
	return &PeakRepulsion{
		name:   "peak_repulsion",
		stride: stride,
	}
}

func (p *PeakRepulsion) Name() string { return p.name }

func (p *PeakRepulsion) Observe(x dynamo.State, u dynamo.Control, t float64) {
	for i := 0; i+p.stride <= len(x); i += p.stride {
		p.peak = math.Max(p.peak, math.Hypot(x[i+2], x[i+3]))
	}
}

func (p *PeakRepulsion) Value() float64 { return p.peak }

func (p *PeakRepulsion) Reset() { p.peak = 0 }
