package sim

import (
	"github.com/san-kum/studiofx/internal/dynamo"
)

type Config struct {
	Ticks  int
	Width  int
	Height int
	// FrameRate sets the simulated clock advance per tick.
	FrameRate float64
	// ValidateState stops the run at the first snapshot holding NaN or Inf.
	ValidateState bool
}

// Result is a recorded run. States are effect snapshots laid out Stride values
// per entity; Controls are the pointer samples [x, y, present] fed each tick.
type Result struct {
	Effect     string
	Stride     int
	States     []dynamo.State
	Controls   []dynamo.Control
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}
