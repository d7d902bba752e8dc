package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/studiofx/internal/dynamo"
)

func TestPointerCoverage(t *testing.T) {
	m := NewPointerCoverage()
	m.Observe(nil, dynamo.Control{10, 10, 1}, 0)
	m.Observe(nil, dynamo.Control{0, 0, 0}, 0)
	m.Observe(nil, dynamo.Control{5, 5, 1}, 0)
	m.Observe(nil, dynamo.Control{0, 0, 0}, 0)

	if m.Value() != 0.5 {
		t.Errorf("expected coverage 0.5, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestOffsetEnergy(t *testing.T) {
	m := NewOffsetEnergy(4)
	m.Observe(dynamo.State{3, 4, 0, 0, 0, 0, 9, 9}, nil, 0)
	if math.Abs(m.Value()-12.5) > 1e-9 {
		t.Errorf("expected 12.5, got %f", m.Value())
	}
	m.Observe(dynamo.State{0, 0, 0, 0, 0, 0, 0, 0}, nil, 0)
	if math.Abs(m.Value()-6.25) > 1e-9 {
		t.Errorf("expected 6.25, got %f", m.Value())
	}
}

func TestPeakRepulsion(t *testing.T) {
	m := NewPeakRepulsion(4)
	m.Observe(dynamo.State{0, 0, 3, 4, 0, 0, 1, 0}, nil, 0)
	m.Observe(dynamo.State{0, 0, 1, 1, 0, 0, 0, 0}, nil, 0)
	if m.Value() != 5 {
		t.Errorf("expected peak 5, got %f", m.Value())
	}
}

func TestStability(t *testing.T) {
	m := NewStability(10)
	if m.Value() != 1 {
		t.Error("empty run should be stable")
	}
	m.Observe(dynamo.State{1, 2}, nil, 0)
	m.Observe(dynamo.State{1, 20}, nil, 0)
	m.Observe(dynamo.State{math.NaN(), 0}, nil, 0)
	m.Observe(dynamo.State{0, 0}, nil, 0)
	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
}

func TestMeanComponent(t *testing.T) {
	m := NewMean("mean_opacity", 3, 2)
	m.Observe(dynamo.State{100, 100, 0.2, 5, 5, 0.4}, nil, 0)
	if math.Abs(m.Value()-0.3) > 1e-9 {
		t.Errorf("expected 0.3, got %f", m.Value())
	}
	if m.Name() != "mean_opacity" {
		t.Errorf("name %s", m.Name())
	}
}

func TestWrapViolations(t *testing.T) {
	m := NewWrapViolations(3, 800, 600, 50)
	m.Observe(dynamo.State{-50, 650, 0.3, 850, -50, 0.3, 400, 300, 0.3}, nil, 0)
	if m.Value() != 0 {
		t.Errorf("closed bounds should not count, got %f", m.Value())
	}
	m.Observe(dynamo.State{-50.5, 0, 0.3, 0, 651, 0.3}, nil, 0)
	if m.Value() != 2 {
		t.Errorf("expected 2 violations, got %f", m.Value())
	}
}
