package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/studiofx/internal/dynamo"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestGridColumns(t *testing.T) {
	tests := []struct {
		width float64
		cols  int
		gap   float64
	}{
		{320, 4, 16},
		{639, 4, 16},
		{640, 6, 16},
		{767, 6, 16},
		{768, 8, 24},
		{1152, 8, 24},
	}
	for _, tt := range tests {
		cols, gap := GridColumns(tt.width)
		if cols != tt.cols || gap != tt.gap {
			t.Errorf("width %v: got %d cols gap %v, want %d gap %v", tt.width, cols, gap, tt.cols, tt.gap)
		}
	}
}

func TestGridCentres(t *testing.T) {
	homes, cell := Grid(10, 4, 460, 20, 48)
	if !near(cell, 100) {
		t.Fatalf("cell = %v, want 100", cell)
	}
	if len(homes) != 10 {
		t.Fatalf("got %d homes", len(homes))
	}
	want := map[int]dynamo.Vec{
		0: {X: 50, Y: 98},
		3: {X: 410, Y: 98},
		4: {X: 50, Y: 218},
		9: {X: 170, Y: 338},
	}
	for i, w := range want {
		if !homes[i].Equal(w, 1e-9) {
			t.Errorf("home %d = %v, want %v", i, homes[i], w)
		}
	}
}

func TestGridEmpty(t *testing.T) {
	if homes, _ := Grid(0, 4, 400, 10, 0); homes != nil {
		t.Errorf("expected no homes, got %v", homes)
	}
}

func TestHoneycombOffsetsOddRows(t *testing.T) {
	homes := Honeycomb(10, 8, 96)
	if !homes[0].Equal(dynamo.Vec{X: 48, Y: 48}, 1e-9) {
		t.Errorf("first item at %v", homes[0])
	}
	if !near(homes[1].X-homes[0].X, 96*0.9) {
		t.Errorf("column spacing %v", homes[1].X-homes[0].X)
	}
	if !near(homes[8].X, 48+96*0.45) || !near(homes[8].Y, 48+72) {
		t.Errorf("second row starts at %v", homes[8])
	}
}

func TestHoneycombSize(t *testing.T) {
	w, h := HoneycombSize(17, 8, 96)
	if !near(w, 8*86.4+43.2) || !near(h, 3*72+96) {
		t.Errorf("size %vx%v", w, h)
	}
}

func TestPlace(t *testing.T) {
	cfg := DefaultConfig()
	p, err := cfg.Place()
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if len(p.Homes) != cfg.Count {
		t.Errorf("got %d homes", len(p.Homes))
	}
	if !near(p.Cell, (1152-7*24)/8.0) {
		t.Errorf("cell = %v", p.Cell)
	}
	for i, h := range p.Homes {
		if h.X < 0 || h.X > p.Width || h.Y < 0 || h.Y > p.Height {
			t.Errorf("home %d at %v outside %vx%v", i, h, p.Width, p.Height)
		}
	}

	cfg.Kind = KindHoneycomb
	p, err = cfg.Place()
	if err != nil {
		t.Fatalf("place honeycomb: %v", err)
	}
	if p.Cell != cfg.Item {
		t.Errorf("honeycomb cell = %v", p.Cell)
	}
}

func TestPlaceInNarrowContainer(t *testing.T) {
	cfg := DefaultConfig()
	p, err := cfg.PlaceIn(800)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if p.Width != 800 {
		t.Errorf("width = %v, want 800", p.Width)
	}
	if !near(p.Cell, (800-7*24)/8.0) {
		t.Errorf("cell = %v", p.Cell)
	}
	for i, h := range p.Homes {
		if h.X-p.Cell/2 < 0 || h.X+p.Cell/2 > 800 {
			t.Errorf("item %d spans [%v, %v] outside 800px", i, h.X-p.Cell/2, h.X+p.Cell/2)
		}
	}

	p, err = cfg.PlaceIn(600)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if !near(p.Cell, (600-3*16)/4.0) {
		t.Errorf("small grid cell = %v", p.Cell)
	}

	p, err = cfg.PlaceIn(4000)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if p.Width != cfg.Width {
		t.Errorf("wide viewport width = %v, want %v", p.Width, cfg.Width)
	}
}

func TestValidate(t *testing.T) {
	bad := []func(*Config){
		func(c *Config) { c.Kind = "spiral" },
		func(c *Config) { c.Count = 0 },
		func(c *Config) { c.Width = 0 },
		func(c *Config) { c.Gap = -1 },
		func(c *Config) { c.Kind = KindHoneycomb; c.PerRow = 0 },
	}
	for i, mut := range bad {
		cfg := DefaultConfig()
		mut(&cfg)
		if err := cfg.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
			t.Errorf("case %d: expected ErrParameterBounds, got %v", i, err)
		}
	}
}
