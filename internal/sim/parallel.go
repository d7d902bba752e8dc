package sim

import (
	"context"
	"sync"
)

// RunnerFactory builds the runner of ensemble member i. Members must not share
// effects or metrics.
type RunnerFactory func(i int) (*Runner, error)

// Ensemble runs independent members concurrently, each on its own host.
type Ensemble struct {
	factory RunnerFactory
	numRuns int
}

func NewEnsemble(numRuns int, factory RunnerFactory) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			runner, err := e.factory(idx)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = runner.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
