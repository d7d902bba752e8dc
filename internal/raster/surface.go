// Package raster draws effects into a software-rendered gg context for PNG
// snapshots and animated GIFs.
package raster

import (
	"image"
	"io"
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/san-kum/studiofx/internal/surface"
)

type Surface struct {
	ctx *gg.Context
	log *slog.Logger
}

// New returns a w×h surface cleared to black.
func New(w, h int, log *slog.Logger) *Surface {
	if log == nil {
		log = slog.Default()
	}
	s := &Surface{ctx: gg.NewContext(max(w, 1), max(h, 1)), log: log}
	s.ctx.ClearWithColor(rgba(surface.Black))
	return s
}

func (s *Surface) Size() (int, int) { return s.ctx.Width(), s.ctx.Height() }

// Resize reallocates the pixels, which loses the trail; the new canvas starts
// black. Non-positive sizes are ignored.
func (s *Surface) Resize(w, h int) {
	if w == s.ctx.Width() && h == s.ctx.Height() {
		return
	}
	if err := s.ctx.Resize(w, h); err != nil {
		s.log.Debug("resize ignored", "err", err)
		return
	}
	s.ctx.ClearWithColor(rgba(surface.Black))
}

func (s *Surface) FillRect(x, y, w, h float64, c surface.Color) {
	s.ctx.SetFillBrush(gg.Solid(rgba(c)))
	s.ctx.DrawRectangle(x, y, w, h)
	s.fill()
}

func (s *Surface) FillCircleWithGradient(center surface.Point, radius float64, g surface.RadialGradient) {
	s.ctx.SetFillBrush(brush(g))
	s.ctx.DrawCircle(center.X, center.Y, radius)
	s.fill()
}

func (s *Surface) StrokeLine(from, to surface.Point, width float64, c surface.Color) {
	s.ctx.SetStrokeBrush(gg.Solid(rgba(c)))
	s.ctx.SetLineWidth(width)
	s.ctx.MoveTo(from.X, from.Y)
	s.ctx.LineTo(to.X, to.Y)
	if err := s.ctx.Stroke(); err != nil {
		s.log.Debug("stroke failed", "err", err)
	}
}

func (s *Surface) FillTriangle(a, b, c surface.Point, g surface.RadialGradient) {
	s.ctx.SetFillBrush(brush(g))
	s.ctx.MoveTo(a.X, a.Y)
	s.ctx.LineTo(b.X, b.Y)
	s.ctx.LineTo(c.X, c.Y)
	s.ctx.ClosePath()
	s.fill()
}

func (s *Surface) fill() {
	if err := s.ctx.Fill(); err != nil {
		s.log.Debug("fill failed", "err", err)
	}
}

// Image returns the current pixels.
func (s *Surface) Image() image.Image { return s.ctx.Image() }

func (s *Surface) SavePNG(path string) error { return s.ctx.SavePNG(path) }

func (s *Surface) EncodePNG(w io.Writer) error { return s.ctx.EncodePNG(w) }

func (s *Surface) Close() error { return s.ctx.Close() }

func rgba(c surface.Color) gg.RGBA {
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// brush fades the gradient colour linearly to transparent at its radius.
func brush(g surface.RadialGradient) *gg.RadialGradientBrush {
	return gg.NewRadialGradientBrush(g.Center.X, g.Center.Y, 0, g.Radius).
		AddColorStop(0, rgba(g.Color)).
		AddColorStop(1, rgba(g.Color.WithAlpha(0)))
}
