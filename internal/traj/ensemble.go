package traj

import (
	"context"
	"sync"

	"github.com/san-kum/phaseplane/internal/field"
)

// Ensemble integrates a batch of initial conditions concurrently. Each run
// gets its own Integrator built by Configure, so event state is never
// shared across goroutines.
type Ensemble struct {
	f       field.Field
	workers int

	// Configure, when non-nil, is called on each fresh integrator before
	// its run (to register events or adjust tolerances).
	Configure func(*Integrator)
}

// NewEnsemble builds an ensemble over f with the given concurrency.
// workers <= 0 means one goroutine per initial condition.
func NewEnsemble(f field.Field, workers int) *Ensemble {
	return &Ensemble{f: f, workers: workers}
}

// ComputeAll integrates every initial condition and returns trajectories in
// input order. The first error cancels the remaining runs.
func (e *Ensemble) ComputeAll(ctx context.Context, ics []field.State, t0, tmax float64, dirn Direction) ([]*Trajectory, error) {
	results := make([]*Trajectory, len(ics))
	errs := make([]error, len(ics))

	workers := e.workers
	if workers <= 0 || workers > len(ics) {
		workers = len(ics)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					errs[idx] = ctx.Err()
					continue
				}
				integ := New(e.f)
				if e.Configure != nil {
					e.Configure(integ)
				}
				results[idx], errs[idx] = integ.Compute(ics[idx], t0, tmax, dirn)
				if errs[idx] != nil {
					cancel()
				}
			}
		}()
	}
	for i := range ics {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
