package viz

import (
	"math"

	"github.com/san-kum/studiofx/internal/surface"
)

// Threshold is the intensity above which a sub-pixel is lit.
const Threshold = 0.08

// BrailleSurface implements surface.Surface on an intensity buffer at braille
// sub-pixel resolution. Drawing happens in logical (host) coordinates which
// are scaled onto cols*2 x rows*4 sub-pixels. Translucent fills decay the
// buffer, so the field's trail rect leaves fading streaks.
type BrailleSurface struct {
	w, h       int
	cols, rows int

	lum  []float64
	peak []float64
	tint []surface.Color
}

func NewBrailleSurface(cols, rows, w, h int) *BrailleSurface {
	s := &BrailleSurface{w: w, h: h}
	s.SetCells(cols, rows)
	return s
}

func (s *BrailleSurface) Size() (int, int) { return s.w, s.h }

// Resize changes the logical size; the buffer keeps its cell resolution.
func (s *BrailleSurface) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.w, s.h = w, h
	s.clear()
}

// SetCells changes the terminal cell resolution and clears the buffer.
func (s *BrailleSurface) SetCells(cols, rows int) {
	s.cols, s.rows = max(cols, 1), max(rows, 1)
	n := s.cols * 2 * s.rows * 4
	s.lum = make([]float64, n)
	s.peak = make([]float64, n)
	s.tint = make([]surface.Color, n)
}

func (s *BrailleSurface) Cells() (cols, rows int) { return s.cols, s.rows }

func (s *BrailleSurface) subSize() (int, int) { return s.cols * 2, s.rows * 4 }

func (s *BrailleSurface) scale() (float64, float64) {
	sw, sh := s.subSize()
	if s.w <= 0 || s.h <= 0 {
		return 0, 0
	}
	return float64(sw) / float64(s.w), float64(sh) / float64(s.h)
}

func (s *BrailleSurface) clear() {
	for i := range s.lum {
		s.lum[i], s.peak[i] = 0, 0
		s.tint[i] = surface.Color{}
	}
}

// Intensity returns the buffer value at a sub-pixel, 0 outside.
func (s *BrailleSurface) Intensity(x, y int) float64 {
	sw, sh := s.subSize()
	if x < 0 || y < 0 || x >= sw || y >= sh {
		return 0
	}
	return s.lum[y*sw+x]
}

// brightness is the perceived value of a straight colour before alpha.
func brightness(c surface.Color) float64 {
	return max(c.R, c.G, c.B)
}

func (s *BrailleSurface) deposit(x, y int, c surface.Color) {
	sw, sh := s.subSize()
	if x < 0 || y < 0 || x >= sw || y >= sh || c.A <= 0 {
		return
	}
	i := y*sw + x
	v := brightness(c) * c.A
	s.lum[i] = min(1, s.lum[i]+v)
	if v >= s.peak[i] {
		s.peak[i] = v
		s.tint[i] = c.WithAlpha(1)
	}
}

// blend composites c over the sub-pixel with source-over semantics.
func (s *BrailleSurface) blend(x, y int, c surface.Color) {
	sw, sh := s.subSize()
	if x < 0 || y < 0 || x >= sw || y >= sh {
		return
	}
	i := y*sw + x
	v := brightness(c)
	s.lum[i] = s.lum[i]*(1-c.A) + v*c.A
	s.peak[i] *= 1 - c.A
	if v*c.A >= s.peak[i] && v > 0 {
		s.peak[i] = v * c.A
		s.tint[i] = c.WithAlpha(1)
	}
}

func (s *BrailleSurface) toSub(p surface.Point) (int, int) {
	sx, sy := s.scale()
	return int(math.Floor(p.X * sx)), int(math.Floor(p.Y * sy))
}

func (s *BrailleSurface) fromSub(x, y int) surface.Point {
	sx, sy := s.scale()
	return surface.Point{X: (float64(x) + 0.5) / sx, Y: (float64(y) + 0.5) / sy}
}

func (s *BrailleSurface) FillRect(x, y, w, h float64, c surface.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, y0 := s.toSub(surface.Point{X: x, Y: y})
	x1, y1 := s.toSub(surface.Point{X: x + w, Y: y + h})
	sw, sh := s.subSize()
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(max(x1, x0+1), sw), min(max(y1, y0+1), sh)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			s.blend(px, py, c)
		}
	}
}

// FillCircleWithGradient lights the sub-pixels within radius, sampling the
// gradient at each sub-pixel centre. The sub-pixel under the centre always
// samples the centre itself so sub-pixel-sized dots stay visible.
func (s *BrailleSurface) FillCircleWithGradient(center surface.Point, radius float64, g surface.RadialGradient) {
	if radius <= 0 {
		return
	}
	cx, cy := s.toSub(center)
	x0, y0 := s.toSub(surface.Point{X: center.X - radius, Y: center.Y - radius})
	x1, y1 := s.toSub(surface.Point{X: center.X + radius, Y: center.Y + radius})
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			p := s.fromSub(px, py)
			if px == cx && py == cy {
				p = center
			} else if math.Hypot(p.X-center.X, p.Y-center.Y) > radius {
				continue
			}
			s.deposit(px, py, g.At(p))
		}
	}
}

func (s *BrailleSurface) StrokeLine(from, to surface.Point, width float64, c surface.Color) {
	x0, y0 := s.toSub(from)
	x1, y1 := s.toSub(to)
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		s.deposit(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (s *BrailleSurface) FillTriangle(a, b, c surface.Point, g surface.RadialGradient) {
	minX, minY := s.toSub(surface.Point{X: min(a.X, b.X, c.X), Y: min(a.Y, b.Y, c.Y)})
	maxX, maxY := s.toSub(surface.Point{X: max(a.X, b.X, c.X), Y: max(a.Y, b.Y, c.Y)})
	centroid := surface.Point{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3}
	cx, cy := s.toSub(centroid)
	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			p := s.fromSub(px, py)
			if px == cx && py == cy {
				p = centroid
			} else if !inTriangle(p, a, b, c) {
				continue
			}
			s.deposit(px, py, g.At(p))
		}
	}
}

func inTriangle(p, a, b, c surface.Point) bool {
	d1 := edge(p, a, b)
	d2 := edge(p, b, c)
	d3 := edge(p, c, a)
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

func edge(p, a, b surface.Point) float64 {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}

// Paint lights every sub-pixel above Threshold onto a fresh canvas, tinting
// each cell with the colour of its strongest sub-pixel.
func (s *BrailleSurface) Paint() *Canvas {
	c := NewCanvas(s.cols, s.rows)
	sw, sh := s.subSize()
	best := make([]float64, s.cols*s.rows)
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			i := y*sw + x
			if s.lum[i] < Threshold {
				continue
			}
			c.Set(x, y)
			cell := (y/4)*s.cols + x/2
			if s.peak[i] > best[cell] {
				best[cell] = s.peak[i]
				c.Tint(x, y, s.tint[i].Hex())
			}
		}
	}
	return c
}
