package export

import (
	"encoding/xml"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/san-kum/studiofx/internal/analysis"
	"github.com/san-kum/studiofx/internal/particles"
	"github.com/san-kum/studiofx/internal/surface"
)

func wellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			t.Fatalf("malformed svg: %v", err)
		}
	}
}

func TestFrameToSVG(t *testing.T) {
	cfg := particles.DefaultConfig()
	rec := surface.NewRecorder(800, 600)
	s := particles.Seed(cfg, rand.New(rand.NewSource(5)), 800, 600)
	particles.Render(cfg, particles.Step(cfg, s, cfg.TimeStep), rec)

	doc := FrameToSVG(800, 600, rec.Ops())
	wellFormed(t, doc)

	shapes := strings.Count(doc, "<circle") + strings.Count(doc, "<line") + strings.Count(doc, "<polygon")
	if shapes != cfg.Count {
		t.Errorf("expected %d shapes, got %d", cfg.Count, shapes)
	}
	gradients := strings.Count(doc, "<radialGradient")
	if gradients != rec.Count(surface.OpCircle)+rec.Count(surface.OpTriangle) {
		t.Errorf("gradient count %d", gradients)
	}
	if !strings.Contains(doc, `fill-opacity="0.030"`) {
		t.Error("trail rect missing")
	}
}

func TestFrameToSVGEmpty(t *testing.T) {
	doc := FrameToSVG(10, 10, nil)
	wellFormed(t, doc)
	if strings.Contains(doc, "<defs>") {
		t.Error("no gradients expected")
	}
}

func TestPathToSVG(t *testing.T) {
	p := &analysis.Path{Points: []analysis.Point2{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: -5, Y: 2}}}
	doc := PathToSVG(p, 200, 100, "#ff3355")
	wellFormed(t, doc)
	if strings.Count(doc, " L") != 2 {
		t.Errorf("expected 2 segments:\n%s", doc)
	}
	if PathToSVG(&analysis.Path{Points: p.Points[:1]}, 10, 10, "#fff") != "" {
		t.Error("single point path should be empty")
	}
}
