package integrators

import "github.com/san-kum/studiofx/internal/dynamo"

// Euler is the explicit first-order stepper. Cheap, and stable for the
// default flock spring at display frame rates.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	dx := dyn.Derive(x, u, t)
	next := make(dynamo.State, len(x))
	for i := range x {
		next[i] = x[i] + dt*dx[i]
	}
	return next
}
