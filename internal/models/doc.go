// Package models provides ready-made planar vector fields for phase-plane
// analysis, each with named variables, parameters, domain bounds and an
// analytic Jacobian.
package models
