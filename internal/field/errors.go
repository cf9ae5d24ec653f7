package field

import "errors"

// Domain errors for vector field evaluation.
var (
	// ErrNumericalFault indicates evaluation broke down (overflow, division
	// by zero). Bulk searches convert this to a penalty value per sample.
	ErrNumericalFault = errors.New("field: numerical fault in evaluation")

	// ErrInvalidDomain indicates a variable range that is missing, reversed
	// or non-finite where a finite one is required.
	ErrInvalidDomain = errors.New("field: domain must be a finite range")

	// ErrUnknownVariable indicates a variable name the field does not declare.
	ErrUnknownVariable = errors.New("field: unknown variable")

	// ErrUnknownParam indicates a parameter name the field does not declare.
	ErrUnknownParam = errors.New("field: unknown parameter")

	// ErrNoJacobian indicates the field does not supply an analytic Jacobian.
	ErrNoJacobian = errors.New("field: no Jacobian available")
)

// EvalError wraps a fault with the state it occurred at.
type EvalError struct {
	T       float64
	X       State
	Wrapped error
}

func (e *EvalError) Error() string {
	return e.Wrapped.Error()
}

func (e *EvalError) Unwrap() error {
	return e.Wrapped
}
