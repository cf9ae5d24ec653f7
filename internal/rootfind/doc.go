// Package rootfind provides the scalar and vector root-finding routines
// used by the phase-plane tracers.
//
//   - [Bisect]: sign-change bisection along a segment in any dimension
//   - [Newton1D]: damped secant/Newton scalar solve
//   - [NewtonND]: damped Newton solve for small dense systems
//
// Bisect enforces its bracketing precondition up front and reports budget
// exhaustion as [ErrIterationLimit] rather than returning an unconverged
// estimate. The one exception is an evaluation fault at an interior
// midpoint, where the current midpoint is returned; see [Bisect].
package rootfind
