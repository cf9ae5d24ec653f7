package rootfind

import (
	"math"

	"github.com/san-kum/phaseplane/internal/field"
)

// NewtonOptions controls the damped Newton solves.
type NewtonOptions struct {
	XTol    float64 // step-size convergence threshold, default 1.49012e-8
	FTol    float64 // residual threshold, defaults to XTol
	MaxIter int     // default 100
}

func (o *NewtonOptions) defaults() {
	if o.XTol <= 0 {
		o.XTol = 1.49012e-8
	}
	if o.FTol <= 0 {
		o.FTol = o.XTol
	}
	if o.MaxIter <= 0 {
		o.MaxIter = 100
	}
}

const fdStep = 1e-7

// Newton1D solves f(x)=0 from x0 by damped Newton iteration. df is the
// optional derivative; a central difference is used when nil. The step is
// halved while it fails to reduce the residual.
func Newton1D(f func(float64) (float64, error), x0 float64, df func(float64) (float64, error), opts NewtonOptions) (float64, error) {
	opts.defaults()
	x := x0
	fx, err := f(x)
	if err != nil {
		return 0, err
	}
	for i := 0; i < opts.MaxIter; i++ {
		if math.Abs(fx) < opts.FTol {
			return x, nil
		}
		var d float64
		if df != nil {
			d, err = df(x)
			if err != nil {
				return 0, err
			}
		} else {
			h := fdStep * math.Max(1, math.Abs(x))
			fp, err := f(x + h)
			if err != nil {
				return 0, err
			}
			fm, err := f(x - h)
			if err != nil {
				return 0, err
			}
			d = (fp - fm) / (2 * h)
		}
		if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return 0, ErrNoConvergence
		}
		step := fx / d
		// backtracking damping
		var xNew, fNew float64
		accepted := false
		for k := 0; k < 8; k++ {
			xNew = x - step
			fNew, err = f(xNew)
			if err != nil {
				return 0, err
			}
			if math.Abs(fNew) < math.Abs(fx) || math.Abs(step) < opts.XTol {
				accepted = true
				break
			}
			step /= 2
		}
		if !accepted {
			return 0, ErrNoConvergence
		}
		if math.Abs(xNew-x) < opts.XTol && math.Abs(fNew) < opts.FTol {
			return xNew, nil
		}
		x, fx = xNew, fNew
	}
	if math.Abs(fx) < opts.FTol {
		return x, nil
	}
	return 0, ErrNoConvergence
}

// NewtonND solves the square system f(x)=0 from x0 by damped Newton
// iteration with a Gaussian-elimination inner solve. jac is the optional
// Jacobian of f; forward differences are used when nil.
func NewtonND(f func(field.State) (field.State, error), x0 field.State, jac func(field.State) (field.Matrix, error), opts NewtonOptions) (field.State, error) {
	opts.defaults()
	x := x0.Clone()
	fx, err := f(x)
	if err != nil {
		return nil, err
	}
	for i := 0; i < opts.MaxIter; i++ {
		if residual(fx) < opts.FTol {
			return x, nil
		}
		var J field.Matrix
		if jac != nil {
			J, err = jac(x)
			if err != nil {
				return nil, err
			}
		} else {
			J, err = fdJacobian(f, x, fx)
			if err != nil {
				return nil, err
			}
		}
		step, err := solveLinear(J, fx)
		if err != nil {
			return nil, err
		}
		var xNew, fNew field.State
		accepted := false
		for k := 0; k < 8; k++ {
			xNew = x.Sub(step)
			fNew, err = f(xNew)
			if err != nil {
				return nil, err
			}
			if residual(fNew) < residual(fx) || step.Norm(2) < opts.XTol {
				accepted = true
				break
			}
			step = step.Scale(0.5)
		}
		if !accepted {
			return nil, ErrNoConvergence
		}
		converged := xNew.Sub(x).Norm(2) < opts.XTol && residual(fNew) < opts.FTol
		x, fx = xNew, fNew
		if converged {
			return x, nil
		}
	}
	if residual(fx) < opts.FTol {
		return x, nil
	}
	return nil, ErrNoConvergence
}

func residual(v field.State) float64 {
	max := 0.0
	for _, x := range v {
		a := math.Abs(x)
		if a > max {
			max = a
		}
	}
	return max
}

func fdJacobian(f func(field.State) (field.State, error), x, fx field.State) (field.Matrix, error) {
	n := len(x)
	J := field.NewMatrix(n, n)
	for j := 0; j < n; j++ {
		h := fdStep * math.Max(1, math.Abs(x[j]))
		xp := x.Clone()
		xp[j] += h
		fp, err := f(xp)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			J[i][j] = (fp[i] - fx[i]) / h
		}
	}
	return J, nil
}

// solveLinear solves J s = b by Gaussian elimination with partial pivoting.
func solveLinear(J field.Matrix, b field.State) (field.State, error) {
	n := len(b)
	a := field.NewMatrix(n, n+1)
	for i := 0; i < n; i++ {
		copy(a[i], J[i])
		a[i][n] = b[i]
	}
	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-300 {
			return nil, ErrSingular
		}
		a[col], a[pivot] = a[pivot], a[col]
		for r := col + 1; r < n; r++ {
			factor := a[r][col] / a[col][col]
			for c := col; c <= n; c++ {
				a[r][c] -= factor * a[col][c]
			}
		}
	}
	s := make(field.State, n)
	for i := n - 1; i >= 0; i-- {
		sum := a[i][n]
		for j := i + 1; j < n; j++ {
			sum -= a[i][j] * s[j]
		}
		s[i] = sum / a[i][i]
	}
	return s, nil
}
