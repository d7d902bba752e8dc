package analysis

import (
	"math"

	"github.com/san-kum/studiofx/internal/dynamo"
)

// DecayRate estimates the largest exponent of a system by trajectory
// separation: two runs start perturbation apart and their distance is
// renormalised after every step. A stable spring gives a negative rate close
// to -damping/(2·mass); an integrator that adds numerical damping gives a
// more negative one.
func DecayRate(
	dyn dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt, duration float64,
	perturbation float64,
) float64 {
	if len(x0) == 0 || perturbation <= 0 || dt <= 0 {
		return 0
	}

	x := x0.Clone()
	xp := x0.Clone()
	xp[0] += perturbation
	d0 := perturbation

	ctrl := make(dynamo.Control, dyn.ControlDim())
	t := 0.0

	sumLog := 0.0
	count := 0

	for t < duration {
		x = integ.Step(dyn, x, ctrl, t, dt)
		xp = integ.Step(dyn, xp, ctrl, t, dt)
		t += dt

		sep := 0.0
		for i := range x {
			diff := xp[i] - x[i]
			sep += diff * diff
		}
		sep = math.Sqrt(sep)
		if sep == 0 {
			break
		}

		sumLog += math.Log(sep / d0)
		count++

		scale := d0 / sep
		for i := range xp {
			xp[i] = x[i] + (xp[i]-x[i])*scale
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}
