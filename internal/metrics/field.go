package metrics

import (
	"github.com/san-kum/studiofx/internal/dynamo"
)

// Mean averages one component of a strided snapshot over all entities and
// ticks, e.g. particle opacity or lens scale.
type Mean struct {
	name    string
	stride  int
	offset  int
	sum     float64
	samples int
}

func NewMean(name string, stride, offset int) *Mean {
	return &Mean{name: name, stride: stride, offset: offset}
}

func (m *Mean) Name() string { return m.name }

func (m *Mean) Observe(x dynamo.State, u dynamo.Control, t float64) {
	for i := m.offset; i < len(x); i += m.stride {
		m.sum += x[i]
		m.samples++
	}
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Mean) Reset() {
	m.sum = 0
	m.samples = 0
}

// WrapViolations counts particle positions seen outside the extended viewport
// [-margin, width+margin] × [-margin, height+margin]. A correct field scores 0.
type WrapViolations struct {
	name                  string
	stride                int
	width, height, margin float64
	count                 int
}

func NewWrapViolations(stride int, width, height, margin float64) *WrapViolations {
	return &WrapViolations{
		name:   "wrap_violations",
		stride: stride,
		width:  width,
		height: height,
		margin: margin,
	}
}

func (w *WrapViolations) Name() string { return w.name }

func (w *WrapViolations) Observe(x dynamo.State, u dynamo.Control, t float64) {
	for i := 0; i+1 < len(x); i += w.stride {
		px, py := x[i], x[i+1]
		if px < -w.margin || px > w.width+w.margin || py < -w.margin || py > w.height+w.margin {
			w.count++
		}
	}
}

func (w *WrapViolations) Value() float64 { return float64(w.count) }

func (w *WrapViolations) Reset() { w.count = 0 }
