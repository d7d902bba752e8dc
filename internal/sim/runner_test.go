package sim

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/san-kum/studiofx/internal/config"
	"github.com/san-kum/studiofx/internal/dynamo"
	"github.com/san-kum/studiofx/internal/host"
	"github.com/san-kum/studiofx/internal/surface"
)

func newRunner(t *testing.T, effect, pointer string, cfg *config.Config) *Runner {
	t.Helper()
	reg := NewRegistry()
	e, err := reg.NewEffect(effect, cfg, rand.New(rand.NewSource(cfg.Run.Seed)), nil, nil)
	if err != nil {
		t.Fatalf("effect %s: %v", effect, err)
	}
	script, err := NewPointerScript(pointer)
	if err != nil {
		t.Fatalf("pointer %s: %v", pointer, err)
	}
	r := New(e, script, nil)
	for _, m := range reg.DefaultMetrics(effect, cfg) {
		r.AddMetric(m)
	}
	return r
}

func runConfig(ticks int) Config {
	return Config{Ticks: ticks, Width: 800, Height: 600, FrameRate: 60, ValidateState: true}
}

func TestRunField(t *testing.T) {
	cfg := config.DefaultConfig()
	result, err := newRunner(t, "field", "none", cfg).Run(context.Background(), runConfig(100))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 100 || result.StepsTaken != 100 {
		t.Fatalf("expected 100 states, got %d", len(result.States))
	}
	if len(result.States[0]) != 120*3 || result.Stride != 3 {
		t.Errorf("snapshot layout %d values stride %d", len(result.States[0]), result.Stride)
	}
	if result.Metrics["wrap_violations"] != 0 {
		t.Errorf("particles escaped: %f", result.Metrics["wrap_violations"])
	}
	if mo := result.Metrics["mean_opacity"]; mo < 0.2 || mo > 0.4 {
		t.Errorf("mean opacity %f outside [0.2, 0.4]", mo)
	}
	if math.Abs(result.Times[59]-1.0) > 1e-9 {
		t.Errorf("tick 60 at t=%f, want 1", result.Times[59])
	}
}

func TestRunFlockHoldPushesItems(t *testing.T) {
	cfg := config.DefaultConfig()
	result, err := newRunner(t, "flock", "hold", cfg).Run(context.Background(), runConfig(120))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Metrics["peak_repulsion"] <= 0 {
		t.Error("expected the held pointer to repel items")
	}
	if result.Metrics["pointer_coverage"] != 1 {
		t.Errorf("coverage %f", result.Metrics["pointer_coverage"])
	}
	if result.Metrics["stability"] != 1 {
		t.Errorf("stability %f", result.Metrics["stability"])
	}
}

func TestFlockFitsNarrowViewport(t *testing.T) {
	cfg := config.DefaultConfig()
	e, err := NewRegistry().NewEffect("flock", cfg, rand.New(rand.NewSource(1)), nil, nil)
	if err != nil {
		t.Fatalf("effect: %v", err)
	}
	win := host.NewWindow(host.NewManualClock(time.Unix(0, 0)), host.Viewport{Width: 800, Height: 600})
	if err := e.Mount(win); err != nil {
		t.Fatalf("mount: %v", err)
	}
	defer e.Unmount()

	fe := e.(*flockEffect)
	origin := fe.anim.Origin()
	half := fe.place.Cell / 2
	for i, home := range fe.place.Homes {
		x, y := origin.X+home.X, origin.Y+home.Y
		if x-half < 0 || x+half > 800 || y-half < 0 || y+half > 600 {
			t.Errorf("item %d at (%.1f, %.1f) leaves the 800x600 viewport", i, x, y)
		}
	}
}

func TestRunFlockWithoutPointer(t *testing.T) {
	cfg := config.DefaultConfig()
	result, err := newRunner(t, "flock", "none", cfg).Run(context.Background(), runConfig(60))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Metrics["peak_repulsion"] != 0 {
		t.Errorf("repulsion without pointer: %f", result.Metrics["peak_repulsion"])
	}
	for _, u := range result.Controls {
		if u[2] != 0 {
			t.Fatal("control reports a pointer")
		}
	}
}

func TestRunLensOrbit(t *testing.T) {
	cfg := config.DefaultConfig()
	result, err := newRunner(t, "lens", "orbit", cfg).Run(context.Background(), runConfig(360))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if ms := result.Metrics["mean_scale"]; ms < cfg.Lens.MinScale || ms > cfg.Lens.MaxScale {
		t.Errorf("mean scale %f", ms)
	}
	if result.Metrics["mean_tint"] <= 0 {
		t.Error("orbit never tinted an item")
	}
}

func TestRunHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newRunner(t, "field", "none", config.DefaultConfig()).Run(ctx, runConfig(100))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.StepsTaken != 0 {
		t.Errorf("ran %d ticks after cancel", result.StepsTaken)
	}
}

func TestRunValidatesConfig(t *testing.T) {
	r := newRunner(t, "field", "none", config.DefaultConfig())
	for _, cfg := range []Config{
		{Ticks: -1, Width: 10, Height: 10, FrameRate: 60},
		{Ticks: 1, Width: 0, Height: 10, FrameRate: 60},
		{Ticks: 1, Width: 10, Height: 10, FrameRate: 0},
	} {
		if _, err := r.Run(context.Background(), cfg); !errors.Is(err, dynamo.ErrParameterBounds) {
			t.Errorf("%+v: expected ErrParameterBounds, got %v", cfg, err)
		}
	}
}

type nanEffect struct{ ticks int }

func (e *nanEffect) Name() string { return "nan" }
func (e *nanEffect) Mount(h host.Host) error {
	var tick host.FrameCallback
	tick = func(now time.Time) {
		e.ticks++
		h.RequestFrame(tick)
	}
	h.RequestFrame(tick)
	return nil
}

func (e *nanEffect) Unmount()    {}
func (e *nanEffect) Draw()       {}
func (e *nanEffect) Stride() int { return 1 }

func (e *nanEffect) Snapshot() dynamo.State {
	if e.ticks > 3 {
		return dynamo.State{math.NaN()}
	}
	return dynamo.State{float64(e.ticks)}
}

func TestRunStopsOnInvalidState(t *testing.T) {
	result, err := New(&nanEffect{}, nil, nil).Run(context.Background(), runConfig(10))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.StepsTaken != 3 {
		t.Errorf("expected 3 valid ticks, got %d", result.StepsTaken)
	}
	var simErr *dynamo.SimError
	if len(result.Errors) != 1 || !errors.As(result.Errors[0], &simErr) || !errors.Is(simErr, dynamo.ErrInvalidState) {
		t.Fatalf("expected an invalid-state SimError, got %v", result.Errors)
	}
	if simErr.Tick != 3 {
		t.Errorf("error on tick %d", simErr.Tick)
	}
}

func TestRunDrawsOntoSurface(t *testing.T) {
	cfg := config.DefaultConfig()
	rec := surface.NewRecorder(0, 0)
	e, err := NewRegistry().NewEffect("flock", cfg, rand.New(rand.NewSource(1)), rec, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(e, nil, nil).Run(context.Background(), runConfig(5)); err != nil {
		t.Fatal(err)
	}
	if w, h := rec.Size(); w != 800 || h != 600 {
		t.Errorf("surface sized %dx%d", w, h)
	}
	if rec.Frames() != 5 || rec.Count(surface.OpRect) != cfg.Layout.Count+1 {
		t.Errorf("frames=%d rects=%d", rec.Frames(), rec.Count(surface.OpRect))
	}
}

func TestUnknownEffect(t *testing.T) {
	_, err := NewRegistry().NewEffect("aurora", config.DefaultConfig(), rand.New(rand.NewSource(1)), nil, nil)
	if !errors.Is(err, dynamo.ErrUnknownEffect) {
		t.Errorf("expected ErrUnknownEffect, got %v", err)
	}
}

func TestListEffects(t *testing.T) {
	got := NewRegistry().ListEffects()
	want := []string{"field", "flock", "lens"}
	if len(got) != len(want) {
		t.Fatalf("effects %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("effects %v, want %v", got, want)
		}
	}
}

func TestEnsemble(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := NewRegistry()
	ens := NewEnsemble(4, func(i int) (*Runner, error) {
		e, err := reg.NewEffect("field", cfg, rand.New(rand.NewSource(int64(i))), nil, nil)
		if err != nil {
			return nil, err
		}
		r := New(e, nil, nil)
		for _, m := range reg.DefaultMetrics("field", cfg) {
			r.AddMetric(m)
		}
		return r, nil
	})

	results, err := ens.Run(context.Background(), runConfig(30))
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if results[0].States[0][0] == results[1].States[0][0] {
		t.Error("members with different seeds should differ")
	}
}

func TestEnsembleFactoryError(t *testing.T) {
	ens := NewEnsemble(2, func(i int) (*Runner, error) {
		return nil, dynamo.ErrUnknownEffect
	})
	if _, err := ens.Run(context.Background(), runConfig(1)); !errors.Is(err, dynamo.ErrUnknownEffect) {
		t.Errorf("expected factory error, got %v", err)
	}
}
