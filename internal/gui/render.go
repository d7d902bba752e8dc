package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/studiofx/internal/surface"
)

// Surface draws into a persistent render texture, so translucent fills
// accumulate across frames the way a canvas does. Draw calls are only valid
// between Begin and End.
type Surface struct {
	target rl.RenderTexture2D
	w, h   int
	loaded bool
}

func NewSurface(w, h int) *Surface {
	s := &Surface{}
	s.Resize(w, h)
	return s
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

// Resize reallocates the texture and clears it to black. It must not be
// called between Begin and End.
func (s *Surface) Resize(w, h int) {
	if w <= 0 || h <= 0 || (s.loaded && w == s.w && h == s.h) {
		return
	}
	if s.loaded {
		rl.UnloadRenderTexture(s.target)
	}
	s.target = rl.LoadRenderTexture(int32(w), int32(h))
	s.w, s.h, s.loaded = w, h, true
	rl.BeginTextureMode(s.target)
	rl.ClearBackground(rl.Black)
	rl.EndTextureMode()
}

func (s *Surface) Begin() { rl.BeginTextureMode(s.target) }
func (s *Surface) End()   { rl.EndTextureMode() }

// Blit draws the texture at the window origin. Render textures are stored
// upside down, hence the negative source height.
func (s *Surface) Blit() {
	src := rl.NewRectangle(0, 0, float32(s.w), -float32(s.h))
	rl.DrawTextureRec(s.target.Texture, src, rl.NewVector2(0, 0), rl.White)
}

func (s *Surface) Close() {
	if s.loaded {
		rl.UnloadRenderTexture(s.target)
		s.loaded = false
	}
}

func (s *Surface) FillRect(x, y, w, h float64, c surface.Color) {
	rl.DrawRectangleRec(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), toColor(c))
}

// FillCircleWithGradient shades the disc from the gradient's centre colour
// to its value at the rim; with linear falloff that is exact.
func (s *Surface) FillCircleWithGradient(center surface.Point, radius float64, g surface.RadialGradient) {
	rim := g.At(surface.Point{X: center.X + radius, Y: center.Y})
	rl.DrawCircleGradient(int32(center.X), int32(center.Y), float32(radius), toColor(g.At(center)), toColor(rim))
}

func (s *Surface) StrokeLine(from, to surface.Point, width float64, c surface.Color) {
	rl.DrawLineEx(toVec(from), toVec(to), float32(width), toColor(c))
}

// FillTriangle uses the gradient's value at the centroid as a flat colour.
func (s *Surface) FillTriangle(a, b, c surface.Point, g surface.RadialGradient) {
	centroid := surface.Point{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3}
	if cross(a, b, c) > 0 {
		b, c = c, b
	}
	rl.DrawTriangle(toVec(a), toVec(b), toVec(c), toColor(g.At(centroid)))
}

// cross is negative for the winding raylib fills in screen coordinates.
func cross(a, b, c surface.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func toColor(c surface.Color) rl.Color {
	n := c.NRGBA()
	return rl.NewColor(n.R, n.G, n.B, n.A)
}

func toVec(p surface.Point) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(p.Y))
}
