package metrics

import (
	"github.com/san-kum/studiofx/internal/dynamo"
)

// PointerCoverage is the share of ticks during which the pointer was inside
// the host. The control vector of a run is [x, y, present].
type PointerCoverage struct {
	name    string
	present int
	samples int
}

func NewPointerCoverage() *PointerCoverage {
	return &PointerCoverage{
		name: "pointer_coverage",
	}
}

func (p *PointerCoverage) Name() string {
	return p.name
}

func (p *PointerCoverage) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if len(u) >= 3 && u[2] > 0 {
		p.present++
	}
	p.samples++
}

func (p *PointerCoverage) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return float64(p.present) / float64(p.samples)
}

func (p *PointerCoverage) Reset() {
	p.present = 0
	p.samples = 0
}
