package raster

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/san-kum/studiofx/internal/dynamo"
)

// GIFRecorder collects frames of a surface as it is drawn. It satisfies
// dynamo.Observer so a runner can feed it once per tick.
type GIFRecorder struct {
	surf  *Surface
	every int
	delay int
	seen  int
	anim  gif.GIF
}

// NewGIFRecorder keeps every n-th frame; frameRate is the rate ticks happen
// at, used for the frame delay.
func NewGIFRecorder(surf *Surface, every int, frameRate float64) *GIFRecorder {
	if every < 1 {
		every = 1
	}
	delay := time.Duration(float64(every) / frameRate * float64(time.Second))
	return &GIFRecorder{surf: surf, every: every, delay: max(int(delay/(10*time.Millisecond)), 1)}
}

func (g *GIFRecorder) OnStep(x dynamo.State, u dynamo.Control, t float64) {
	g.seen++
	if (g.seen-1)%g.every != 0 {
		return
	}
	g.Capture()
}

// Capture appends the surface's current pixels as a frame.
func (g *GIFRecorder) Capture() {
	src := g.surf.Image()
	dst := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(dst, src.Bounds(), src, src.Bounds().Min)
	g.anim.Image = append(g.anim.Image, dst)
	g.anim.Delay = append(g.anim.Delay, g.delay)
}

func (g *GIFRecorder) Frames() int { return len(g.anim.Image) }

func (g *GIFRecorder) Encode(w io.Writer) error {
	return gif.EncodeAll(w, &g.anim)
}
