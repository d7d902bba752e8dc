package particles

import "github.com/san-kum/studiofx/internal/surface"

// Render paints the trail veil and then every particle in index order.
func Render(cfg Config, s State, surf surface.Surface) {
	w, h := surf.Size()
	surf.FillRect(0, 0, float64(w), float64(h), surface.Black.WithAlpha(cfg.TrailAlpha))

	for _, p := range s.Particles {
		drawParticle(cfg, p, surf)
	}
}

func drawParticle(cfg Config, p Particle, surf surface.Surface) {
	col := surface.HSLA(p.Hue, cfg.Saturation, cfg.Lightness, p.Opacity)
	centre := surface.Point{X: p.X, Y: p.Y}
	glow := surface.RadialGradient{Center: centre, Radius: p.Size * 2, Color: col}

	switch p.Shape {
	case Dot:
		surf.FillCircleWithGradient(centre, p.Size, glow)
	case Line:
		surf.StrokeLine(
			surface.Point{X: p.X - p.Size, Y: p.Y},
			surface.Point{X: p.X + p.Size, Y: p.Y},
			1, col)
	case Triangle:
		surf.FillTriangle(
			surface.Point{X: p.X, Y: p.Y - p.Size},
			surface.Point{X: p.X - p.Size, Y: p.Y + p.Size},
			surface.Point{X: p.X + p.Size, Y: p.Y + p.Size},
			glow)
	}
}
