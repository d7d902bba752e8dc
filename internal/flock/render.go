package flock

import (
	"github.com/san-kum/studiofx/internal/dynamo"
	"github.com/san-kum/studiofx/internal/surface"
)

var (
	itemColor    = surface.Color{R: 0.55, G: 0.55, B: 0.55, A: 0.6}
	pointerColor = surface.HSLA(350, 0.6, 0.5, 0.35)
)

// Render draws each item as a square of side cell centred on its displayed
// position, plus a glow under the pointer when present. The surface is
// cleared first; the flock has no trail.
func Render(s State, cell float64, pointer Pointer, origin dynamo.Vec, surf surface.Surface) {
	w, h := surf.Size()
	surf.FillRect(0, 0, float64(w), float64(h), surface.Black)

	if pointer.Present {
		p := surface.Point{X: origin.X + pointer.Pos.X, Y: origin.Y + pointer.Pos.Y}
		surf.FillCircleWithGradient(p, cell/2, surface.RadialGradient{Center: p, Radius: cell, Color: pointerColor})
	}

	half := cell / 2
	for _, it := range s.Items {
		pos := origin.Add(it.Position())
		surf.FillRect(pos.X-half, pos.Y-half, cell, cell, itemColor)
	}
}
