package rootfind

import "errors"

// Domain errors for root-finding operations.
var (
	// ErrNotBracketed indicates the bisection precondition f(a)*f(b) < 0
	// failed at entry. No iterations are performed.
	ErrNotBracketed = errors.New("rootfind: interval does not bracket a sign change")

	// ErrIterationLimit indicates the iteration budget ran out before
	// convergence. Reported, never silently approximated.
	ErrIterationLimit = errors.New("rootfind: iteration limit exceeded")

	// ErrNoConvergence indicates a Newton-type solve failed to reduce the
	// residual below tolerance.
	ErrNoConvergence = errors.New("rootfind: solver did not converge")

	// ErrSingular indicates a singular linear system in the Newton inner
	// solve.
	ErrSingular = errors.New("rootfind: singular linear system")
)
