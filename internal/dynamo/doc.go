// Package dynamo provides the shared primitives of the effect simulations.
//
// The package defines the small vocabulary every effect and host agrees on:
//
//   - [State]: flat vector used for snapshots, traces and spring systems
//   - [Vec]: 2D point or displacement in surface-pixel space
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: numerical stepper over a [System]
//   - [Metric]: per-tick observer folded into a recorded run
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent mutation. Effects run on the
// single goroutine that drives their host.
package dynamo
