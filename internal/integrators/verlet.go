package integrators

import "github.com/san-kum/studiofx/internal/dynamo"

// Verlet and Leapfrog expect the state laid out as [positions..., velocities...]
// with the second half of the derivative holding accelerations.

type Verlet struct {
	probe dynamo.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	if len(v.probe) != n {
		v.probe = make(dynamo.State, n)
	}

	next := make(dynamo.State, n)
	acc := dyn.Derive(x, u, t)
	for i := 0; i < half; i++ {
		next[i] = x[i] + x[half+i]*dt + 0.5*acc[half+i]*dt*dt
		v.probe[i] = next[i]
		v.probe[half+i] = x[half+i]
	}

	// Velocity-dependent forces (damping) see the old velocity here, which is
	// the usual velocity-Verlet approximation.
	accNext := dyn.Derive(v.probe, u, t+dt)
	for i := 0; i < half; i++ {
		next[half+i] = x[half+i] + 0.5*(acc[half+i]+accNext[half+i])*dt
	}
	return next
}

type Leapfrog struct {
	probe dynamo.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	if len(l.probe) != n {
		l.probe = make(dynamo.State, n)
	}

	next := make(dynamo.State, n)
	acc := dyn.Derive(x, u, t)
	for i := 0; i < half; i++ {
		l.probe[half+i] = x[half+i] + acc[half+i]*dt/2
		next[i] = x[i] + l.probe[half+i]*dt
		l.probe[i] = next[i]
	}

	accNext := dyn.Derive(l.probe, u, t+dt)
	for i := 0; i < half; i++ {
		next[half+i] = l.probe[half+i] + accNext[half+i]*dt/2
	}
	return next
}
