package particles

import "fmt"

type Shape int

const (
	Dot Shape = iota
	Line
	Triangle
	numShapes
)

func (s Shape) String() string {
	switch s {
	case Dot:
		return "dot"
	case Line:
		return "line"
	case Triangle:
		return "triangle"
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// Rand is the random source the factory draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

type Particle struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Opacity float64
	Hue     float64
	Shape   Shape
}

// NewParticle places a particle uniformly over a w×h surface. Every
// randomised attribute comes from rng, so a seeded source reproduces the field.
func NewParticle(cfg Config, rng Rand, w, h float64) Particle {
	return Particle{
		X:       rng.Float64() * w,
		Y:       rng.Float64() * h,
		VX:      (rng.Float64() - 0.5) * cfg.MaxSpeed,
		VY:      (rng.Float64() - 0.5) * cfg.MaxSpeed,
		Size:    cfg.SizeMin + rng.Float64()*(cfg.SizeMax-cfg.SizeMin),
		Opacity: rng.Float64()*0.6 + 0.2,
		Hue:     cfg.HueMin + rng.Float64()*(cfg.HueMax-cfg.HueMin),
		Shape:   Shape(rng.Intn(int(numShapes))),
	}
}
