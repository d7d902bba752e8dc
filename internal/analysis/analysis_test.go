package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/studiofx/internal/dynamo"
	"github.com/san-kum/studiofx/internal/flock"
	"github.com/san-kum/studiofx/internal/integrators"
)

func TestDominantFrequency(t *testing.T) {
	const rate = 60.0
	data := make([]float64, 300)
	for i := range data {
		data[i] = 7 + 3*math.Sin(2*math.Pi*2*float64(i)/rate)
	}

	freq, mag := DominantFrequency(data, rate)
	if math.Abs(freq-2) > 1e-9 {
		t.Errorf("expected 2 Hz, got %f", freq)
	}
	if mag <= 0 {
		t.Error("expected positive magnitude")
	}

	ps := PowerSpectrum(data)
	if len(ps) != 150 {
		t.Fatalf("expected 150 bins, got %d", len(ps))
	}
	if ps[0] > 1e-9 {
		t.Errorf("mean should be removed, DC bin %f", ps[0])
	}
}

func TestPowerSpectrumShortInput(t *testing.T) {
	if PowerSpectrum([]float64{1}) != nil {
		t.Error("expected nil for a single sample")
	}
	if f, _ := DominantFrequency(nil, 60); f != 0 {
		t.Errorf("expected 0 Hz, got %f", f)
	}
}

func TestSeries(t *testing.T) {
	states := [][]float64{
		{1, 2, 3, 4, 5, 6},
		{7, 8, 9, 10, 11, 12},
	}
	got := Series(states, 3, 1, 2)
	if len(got) != 2 || got[0] != 6 || got[1] != 12 {
		t.Errorf("series %v", got)
	}
	mean := MeanSeries(states, 3, 0)
	if mean[0] != 2.5 || mean[1] != 8.5 {
		t.Errorf("mean series %v", mean)
	}
}

func TestTracePath(t *testing.T) {
	states := [][]float64{
		{0, 0, 0, 0, 3, 4, 0, 0},
		{0, 0, 0, 0, -6, 8, 0, 0},
	}
	p := TracePath(states, 4, 1, 0, 1)
	if len(p.Points) != 2 || p.Points[1] != (Point2{X: -6, Y: 8}) {
		t.Errorf("path %+v", p.Points)
	}
	if p.Extent() != 10 {
		t.Errorf("extent %f", p.Extent())
	}

	art := PathToASCII(p, 20, 10)
	lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	if strings.Count(art, "•") != 2 {
		t.Errorf("expected 2 points plotted:\n%s", art)
	}
	if PathToASCII(&Path{}, 20, 10) != "" {
		t.Error("empty path should draw nothing")
	}
}

func TestDecayRateOfSpring(t *testing.T) {
	cfg := flock.DefaultConfig().Spring
	sys := flock.NewSpringSystem(cfg)

	for _, name := range []string{"rk4", "verlet", "euler"} {
		integ, err := integrators.New(name)
		if err != nil {
			t.Fatal(err)
		}
		rate := DecayRate(sys, integ, dynamo.State{0, 0}, 1.0/120, 5, 1e-3)
		want := -cfg.Damping / (2 * cfg.Mass)
		if math.Abs(rate-want) > 1.5 {
			t.Errorf("%s: decay rate %f, want about %f", name, rate, want)
		}
	}
}

func TestDecayRateDegenerate(t *testing.T) {
	sys := flock.NewSpringSystem(flock.DefaultConfig().Spring)
	integ, _ := integrators.New("rk4")
	if DecayRate(sys, integ, nil, 0.01, 1, 1e-3) != 0 {
		t.Error("empty state should give 0")
	}
	if DecayRate(sys, integ, dynamo.State{0, 0}, 0, 1, 1e-3) != 0 {
		t.Error("zero dt should give 0")
	}
}
