package traj

import "errors"

// Domain errors for trajectory computation.
var (
	// ErrIntegration indicates the trajectory broke down (invalid state or
	// evaluation fault).
	ErrIntegration = errors.New("traj: integration failure")

	// ErrStepTooSmall indicates the adaptive step fell below its minimum.
	ErrStepTooSmall = errors.New("traj: adaptive step below minimum")

	// ErrNoEvent indicates a requested event was never detected.
	ErrNoEvent = errors.New("traj: event not detected")
)
