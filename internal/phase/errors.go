package phase

import "errors"

// Domain errors for phase-plane analysis.
var (
	// ErrDimensionMismatch indicates point, Jacobian and eigen-data shapes
	// disagree.
	ErrDimensionMismatch = errors.New("phase: dimension mismatch")

	// ErrNotEquilibrium indicates a candidate point whose residual exceeds
	// tolerance.
	ErrNotEquilibrium = errors.New("phase: point is not an equilibrium at given tolerance")

	// ErrUnsupportedDim indicates classification was requested for a
	// sub-system that is not two-dimensional.
	ErrUnsupportedDim = errors.New("phase: classification only implemented for 2D sub-systems")

	// ErrSearchBudget indicates the fixed-point grid cannot fit the search
	// ceiling even at the minimum resolution of 3 points per axis.
	ErrSearchBudget = errors.New("phase: search ceiling too small for grid resolution 3")

	// ErrNotSaddle indicates manifold tracing was requested for a fixed
	// point that is not a non-degenerate saddle.
	ErrNotSaddle = errors.New("phase: fixed point is not a non-degenerate saddle")

	// ErrInitialConvergence indicates the manifold seed displacement could
	// not straddle the manifold even at the smallest allowed perturbation.
	ErrInitialConvergence = errors.New("phase: initial manifold point did not converge")

	// ErrNoPeriod indicates too few threshold crossings to measure a period.
	ErrNoPeriod = errors.New("phase: not enough threshold crossings for a period")
)
