// Package traj computes trajectories of a vector field with adaptive
// Dormand-Prince (RK45) stepping and zero-crossing event detection.
//
// Events are registered once on an [Integrator] and toggled active by the
// caller around the computations that need them. A terminal event halts
// integration at the refined crossing point. Failing to reach any event is
// not an error of Compute itself; callers inspect [Trajectory.Event].
//
// Backward computations integrate the time-reversed field, which for the
// autonomous systems analyzed here traces the same orbit with reversed
// orientation.
package traj
