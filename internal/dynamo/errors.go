package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors shared by effects, hosts and the runner.
var (
	// ErrNoSurface indicates an effect was mounted without a drawing surface or host.
	ErrNoSurface = errors.New("dynamo: drawing surface unavailable")

	// ErrNoItems indicates a flock or lens was mounted without any items.
	ErrNoItems = errors.New("dynamo: no items to animate")

	// ErrInvalidState indicates a state vector with NaN or Inf values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownEffect indicates a registry lookup for an effect that does not exist.
	ErrUnknownEffect = errors.New("dynamo: unknown effect")

	// ErrUnknownIntegrator indicates a registry lookup for an unknown spring integrator.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrUnknownPointer indicates a registry lookup for an unknown pointer script.
	ErrUnknownPointer = errors.New("dynamo: unknown pointer script")

	// ErrAlreadyMounted indicates Mount was called twice without Unmount.
	ErrAlreadyMounted = errors.New("dynamo: effect already mounted")
)

// SimError wraps an error with the tick it happened on.
type SimError struct {
	Tick    int
	Time    float64
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f): %v", e.Tick, e.Time, e.Wrapped)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
