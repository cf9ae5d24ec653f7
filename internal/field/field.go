package field

// Field describes a vector field dX/dt = f(t, X; p) with named state
// variables, named parameters and per-variable domain bounds. The state
// ordering of Vars is the ordering of Rhs output components.
type Field interface {
	Dim() int
	Vars() []string
	Domain(name string) (Interval, error)
	Params() Params
	SetParam(name string, value float64) error
	Rhs(t float64, x State, p Params) (State, error)
}

// Differentiable is implemented by fields that supply an analytic Jacobian.
type Differentiable interface {
	Jacobian(t float64, x State, p Params) (Matrix, error)
}

// JacobianFunc adapts a plain function to the Differentiable interface,
// for user-supplied Jacobians on fields that lack one.
type JacobianFunc func(t float64, x State, p Params) (Matrix, error)

func (fn JacobianFunc) Jacobian(t float64, x State, p Params) (Matrix, error) {
	return fn(t, x, p)
}

// VarIndex returns the position of name in f's state ordering.
func VarIndex(f Field, name string) (int, bool) {
	for i, v := range f.Vars() {
		if v == name {
			return i, true
		}
	}
	return 0, false
}

// JacobianOf returns f's analytic Jacobian if it has one, else the supplied
// fallback (which may be nil).
func JacobianOf(f Field, fallback JacobianFunc) Differentiable {
	if d, ok := f.(Differentiable); ok {
		return d
	}
	if fallback != nil {
		return fallback
	}
	return nil
}
