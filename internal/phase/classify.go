package phase

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/san-kum/phaseplane/internal/field"
)

// Class is the local geometry of a fixed point.
type Class int

const (
	Node Class = iota
	Saddle
	Spiral
)

func (c Class) String() string {
	switch c {
	case Node:
		return "node"
	case Saddle:
		return "saddle"
	case Spiral:
		return "spiral"
	}
	return "unknown"
}

// Stability is the linear stability of a fixed point.
type Stability int

const (
	Unstable Stability = iota
	Stable
	Center
)

func (s Stability) String() string {
	switch s {
	case Stable:
		return "stable"
	case Unstable:
		return "unstable"
	case Center:
		return "center"
	}
	return "unknown"
}

// FixedPoint is a classified equilibrium of a 2D (sub-)system. Immutable
// after creation.
type FixedPoint struct {
	Point        field.Point
	Coords       []string // sub-system coordinate names, sorted
	Eigenvalues  [2]complex128
	Eigenvectors [2]field.Point // unit norm under NormOrd
	Class        Class
	Stability    Stability
	Degenerate   bool
	Eps          float64
	NormOrd      int
}

// ClassifyOptions configures Classify.
type ClassifyOptions struct {
	// Coords selects a 2D sub-system; defaults to the full variable set.
	Coords  []string
	Jac     field.JacobianFunc // fallback Jacobian
	Eps     float64            // residual/degeneracy tolerance, default 1e-12
	NormOrd int                // default 2
	T       float64
}

// Classify verifies pt is an equilibrium of the selected sub-system,
// computes the eigen-decomposition of the restricted Jacobian and sorts the
// point into node/saddle/spiral with its stability. Eigenvalue order is not
// meaningful; consumers must inspect signs, never positions.
func Classify(f field.Field, pt field.Point, opts ClassifyOptions) (*FixedPoint, error) {
	if opts.Eps <= 0 {
		opts.Eps = 1e-12
	}
	if opts.NormOrd < 1 {
		opts.NormOrd = 2
	}
	coords := opts.Coords
	if coords == nil {
		coords = f.Vars()
	}
	coords = append([]string(nil), coords...)
	sort.Strings(coords)
	if len(coords) != 2 {
		return nil, fmt.Errorf("%w: got %d coordinates", ErrUnsupportedDim, len(coords))
	}
	if pt.Len() != f.Dim() {
		return nil, fmt.Errorf("%w: point has %d coordinates, field has %d variables",
			ErrDimensionMismatch, pt.Len(), f.Dim())
	}

	ixs := make([]int, len(coords))
	for i, name := range coords {
		ix, ok := field.VarIndex(f, name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", field.ErrUnknownVariable, name)
		}
		ixs[i] = ix
	}

	params := f.Params()
	state := make(field.State, f.Dim())
	for i, name := range f.Vars() {
		v, ok := pt.Coord(name)
		if !ok {
			return nil, fmt.Errorf("%w: point missing %s", ErrDimensionMismatch, name)
		}
		state[i] = v
	}

	// residual check over the sub-system components
	dx, err := f.Rhs(opts.T, state, params)
	if err != nil {
		return nil, err
	}
	for _, ix := range ixs {
		if math.Abs(dx[ix]) > opts.Eps {
			return nil, fmt.Errorf("%w: |d%s/dt| = %g", ErrNotEquilibrium, f.Vars()[ix], math.Abs(dx[ix]))
		}
	}

	var J field.Matrix
	if d := field.JacobianOf(f, opts.Jac); d != nil {
		J, err = d.Jacobian(opts.T, state, params)
		if err != nil {
			return nil, err
		}
	} else {
		J, err = numericJacobian(f, opts.T, state, params)
		if err != nil {
			return nil, err
		}
	}
	if len(J) != f.Dim() {
		return nil, fmt.Errorf("%w: Jacobian has %d rows, field has %d variables",
			ErrDimensionMismatch, len(J), f.Dim())
	}
	for _, row := range J {
		if len(row) != f.Dim() {
			return nil, fmt.Errorf("%w: ragged Jacobian", ErrDimensionMismatch)
		}
	}
	D := J.Submatrix(ixs)

	evals, evecs := eigen2(D[0][0], D[0][1], D[1][0], D[1][1])

	fp := &FixedPoint{
		Point:       pt,
		Coords:      coords,
		Eigenvalues: evals,
		Eps:         opts.Eps,
		NormOrd:     opts.NormOrd,
	}
	for i, v := range evecs {
		// real projection of the eigenvector, normalized to unit length
		re := field.State{real(v[0]), real(v[1])}.Unit(opts.NormOrd)
		fp.Eigenvectors[i] = field.NewPoint(coords, re, opts.NormOrd)
	}

	real0 := imag(evals[0]) == 0
	real1 := imag(evals[1]) == 0
	switch {
	case real0 && real1 && sign(real(evals[0])) == sign(real(evals[1])):
		fp.Class = Node
	case real0 && real1:
		fp.Class = Saddle
	default:
		fp.Class = Spiral
	}
	switch {
	case real(evals[0]) < 0 && real(evals[1]) < 0:
		fp.Stability = Stable
	case real(evals[0]) == 0 && real(evals[1]) == 0:
		fp.Stability = Center
	default:
		fp.Stability = Unstable
	}
	fp.Degenerate = cmplx.Abs(evals[0]) < opts.Eps ||
		cmplx.Abs(evals[1]) < opts.Eps ||
		cmplx.Abs(evals[0]-evals[1]) < opts.Eps

	return fp, nil
}

// StableUnstable returns the eigen-pairs of a saddle ordered (stable,
// unstable) by explicit sign inspection. Eigensolver ordering is never
// trusted for this.
func (fp *FixedPoint) StableUnstable() (evalS, evalU complex128, evecS, evecU field.Point) {
	if real(fp.Eigenvalues[0]) < 0 {
		return fp.Eigenvalues[0], fp.Eigenvalues[1], fp.Eigenvectors[0], fp.Eigenvectors[1]
	}
	return fp.Eigenvalues[1], fp.Eigenvalues[0], fp.Eigenvectors[1], fp.Eigenvectors[0]
}

// eigen2 computes eigenvalues and eigenvectors of [[a,b],[c,d]] in closed
// form via the characteristic quadratic.
func eigen2(a, b, c, d float64) ([2]complex128, [2][2]complex128) {
	tr := complex(a+d, 0)
	det := complex(a*d-b*c, 0)
	disc := cmplx.Sqrt(tr*tr - 4*det)
	l1 := (tr + disc) / 2
	l2 := (tr - disc) / 2
	evals := [2]complex128{l1, l2}

	var evecs [2][2]complex128
	for i, l := range evals {
		switch {
		case cmplx.Abs(complex(b, 0)) > 1e-300:
			evecs[i] = [2]complex128{complex(b, 0), l - complex(a, 0)}
		case cmplx.Abs(complex(c, 0)) > 1e-300:
			evecs[i] = [2]complex128{l - complex(d, 0), complex(c, 0)}
		default:
			// diagonal matrix: pick the axis whose entry matches l
			if cmplx.Abs(l-complex(a, 0)) <= cmplx.Abs(l-complex(d, 0)) {
				evecs[i] = [2]complex128{1, 0}
			} else {
				evecs[i] = [2]complex128{0, 1}
			}
		}
	}
	return evals, evecs
}

func numericJacobian(f field.Field, t float64, x field.State, p field.Params) (field.Matrix, error) {
	n := len(x)
	J := field.NewMatrix(n, n)
	for j := 0; j < n; j++ {
		h := 1e-7 * math.Max(1, math.Abs(x[j]))
		xp := x.Clone()
		xp[j] += h
		fp, err := f.Rhs(t, xp, p)
		if err != nil {
			return nil, err
		}
		xm := x.Clone()
		xm[j] -= h
		fm, err := f.Rhs(t, xm, p)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			J[i][j] = (fp[i] - fm[i]) / (2 * h)
		}
	}
	return J, nil
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
