// Package surface defines the drawing capability effects render through.
//
// Effects never touch a concrete graphics backend; they draw onto a Surface,
// which the raster, terminal and window hosts implement.
package surface

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

type Point struct {
	X, Y float64
}

// Color is straight (non-premultiplied) RGBA with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

var Black = Color{0, 0, 0, 1}

// HSLA builds a colour from hue in degrees, saturation and lightness in [0, 1].
func HSLA(h, s, l, a float64) Color {
	c := colorful.Hsl(math.Mod(h, 360), s, l).Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: clamp01(a)}
}

func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// NRGBA converts to the 8-bit form the standard library and backends expect.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(math.Round(clamp01(c.R) * 255)),
		G: uint8(math.Round(clamp01(c.G) * 255)),
		B: uint8(math.Round(clamp01(c.B) * 255)),
		A: uint8(math.Round(clamp01(c.A) * 255)),
	}
}

// Hex returns the colour as #rrggbb, dropping alpha.
func (c Color) Hex() string {
	return colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}.Hex()
}

// RadialGradient fades from Color at Center to fully transparent at Radius.
type RadialGradient struct {
	Center Point
	Radius float64
	Color  Color
}

// At samples the gradient with linear falloff.
func (g RadialGradient) At(p Point) Color {
	if g.Radius <= 0 {
		return g.Color.WithAlpha(0)
	}
	d := math.Hypot(p.X-g.Center.X, p.Y-g.Center.Y) / g.Radius
	return g.Color.WithAlpha(g.Color.A * (1 - clamp01(d)))
}

// Surface is the drawing capability effects render through.
type Surface interface {
	Size() (w, h int)
	Resize(w, h int)
	FillRect(x, y, w, h float64, c Color)
	FillCircleWithGradient(center Point, radius float64, g RadialGradient)
	StrokeLine(from, to Point, width float64, c Color)
	FillTriangle(a, b, c Point, g RadialGradient)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
