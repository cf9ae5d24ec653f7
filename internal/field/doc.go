// Package field defines the data model for planar vector field analysis.
//
// The package provides the fundamental types shared by the analysis
// packages:
//
//   - [State]: flat coordinate vector with norm-order-aware distance
//   - [Point]: ordered named-coordinate mapping, the unit of geometric output
//   - [Field]: interface for a vector field dX/dt = f(t, X; p)
//   - [Differentiable]: optional analytic Jacobian
//   - [Interval]: per-variable domain bounds
//
// Fields report numerical breakdown as errors wrapping [ErrNumericalFault];
// bulk searches absorb such faults per-sample instead of aborting.
//
// # Thread Safety
//
// A Field handle is owned by one tracing operation at a time: parameter
// pokes used to position event surfaces are visible to every caller sharing
// the handle.
package field
