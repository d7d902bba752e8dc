package flock

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/studiofx/internal/dynamo"
	"github.com/san-kum/studiofx/internal/integrators"
)

// Spring moves a displayed value toward a target over one frame.
type Spring interface {
	Step(pos, vel, target, dt float64) (float64, float64)
}

// NewSpring builds the spring named by cfg.Integrator.
func NewSpring(cfg SpringConfig) (Spring, error) {
	if cfg.Integrator == "" || cfg.Integrator == "harmonica" {
		return NewHarmonicSpring(cfg), nil
	}
	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	return NewIntegratorSpring(cfg, integ), nil
}

// HarmonicSpring solves the damped spring in closed form. Stiffness, damping
// and mass map to angular frequency √(k/m) and ratio c/(2√(km)).
type HarmonicSpring struct {
	angular float64
	ratio   float64
	dt      float64
	spring  harmonica.Spring
}

func NewHarmonicSpring(cfg SpringConfig) *HarmonicSpring {
	return &HarmonicSpring{
		angular: math.Sqrt(cfg.Stiffness / cfg.Mass),
		ratio:   cfg.Damping / (2 * math.Sqrt(cfg.Stiffness*cfg.Mass)),
		dt:      -1,
	}
}

func (h *HarmonicSpring) Step(pos, vel, target, dt float64) (float64, float64) {
	if dt != h.dt {
		h.spring = harmonica.NewSpring(dt, h.angular, h.ratio)
		h.dt = dt
	}
	return h.spring.Update(pos, vel, target)
}

// springSystem is m·x'' = -k·(x - u₀) - c·x' over the state [x, v].
type springSystem struct {
	stiffness, damping, mass float64
}

func (s springSystem) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	acc := (-s.stiffness*(x[0]-u[0]) - s.damping*x[1]) / s.mass
	return dynamo.State{x[1], acc}
}

// NewSpringSystem exposes the spring ODE of cfg for analysis.
func NewSpringSystem(cfg SpringConfig) dynamo.System {
	return springSystem{stiffness: cfg.Stiffness, damping: cfg.Damping, mass: cfg.Mass}
}

func (springSystem) StateDim() int   { return 2 }
func (springSystem) ControlDim() int { return 1 }

// maxSubstep keeps explicit steppers well inside their stability region.
const maxSubstep = 1.0 / 120

// IntegratorSpring advances the spring ODE with a numerical stepper.
type IntegratorSpring struct {
	sys   springSystem
	integ dynamo.Integrator
}

func NewIntegratorSpring(cfg SpringConfig, integ dynamo.Integrator) *IntegratorSpring {
	return &IntegratorSpring{
		sys:   springSystem{stiffness: cfg.Stiffness, damping: cfg.Damping, mass: cfg.Mass},
		integ: integ,
	}
}

func (s *IntegratorSpring) Step(pos, vel, target, dt float64) (float64, float64) {
	if dt <= 0 {
		return pos, vel
	}
	n := int(math.Ceil(dt / maxSubstep))
	h := dt / float64(n)
	x := dynamo.State{pos, vel}
	u := dynamo.Control{target}
	for i := 0; i < n; i++ {
		x = s.integ.Step(s.sys, x, u, float64(i)*h, h)
	}
	return x[0], x[1]
}
