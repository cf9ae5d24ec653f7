package phase

import (
	"fmt"
	"sort"

	"github.com/san-kum/phaseplane/internal/field"
	"github.com/san-kum/phaseplane/internal/rootfind"
)

// penaltyResidual replaces Rhs/Jacobian values when an evaluation faults
// during the bulk grid search, so one bad seed never aborts the batch.
const penaltyResidual = 1e4

// AxisSpec restricts one state variable during a fixed-point search:
// either pinned to a value or free over a finite range.
type AxisSpec struct {
	fixed bool
	value float64
	rng   field.Interval
}

// FixedAt pins a variable to a value.
func FixedAt(v float64) AxisSpec { return AxisSpec{fixed: true, value: v} }

// Over lets a variable range over [lo, hi].
func Over(lo, hi float64) AxisSpec { return AxisSpec{rng: field.Interval{Lo: lo, Hi: hi}} }

// FixedPointSearch configures FindFixedPoints.
type FixedPointSearch struct {
	// SubDomain restricts the search; defaults to every variable over its
	// declared domain. Keys must cover all of the field's variables when
	// given.
	SubDomain map[string]AxisSpec
	N         int                // grid points per free axis, default 5
	MaxSearch int                // cap on total seeds, default 1000
	Eps       float64            // dedup/acceptance tolerance, default 1e-8
	T         float64            // evaluation time for non-autonomous fields
	Jac       field.JacobianFunc // fallback Jacobian
	NormOrd   int                // default 2
}

func (o *FixedPointSearch) defaults() {
	if o.N <= 0 {
		o.N = 5
	}
	if o.MaxSearch <= 0 {
		o.MaxSearch = 1000
	}
	if o.Eps <= 0 {
		o.Eps = 1e-8
	}
	if o.NormOrd < 1 {
		o.NormOrd = 2
	}
}

// FindFixedPoints locates the isolated points of the (sub-)domain where all
// free-variable components of the field's Rhs vanish. Each point of a
// uniform grid over the free axes seeds a damped Newton solve of the
// free-axis subsystem; converged roots are deduplicated within Eps and
// must lie inside their declared ranges. Fixed coordinates are echoed back
// unchanged in the returned points.
func FindFixedPoints(f field.Field, opts FixedPointSearch) ([]field.Point, error) {
	opts.defaults()

	sub := opts.SubDomain
	if sub == nil {
		sub = make(map[string]AxisSpec, f.Dim())
		for _, name := range f.Vars() {
			iv, err := f.Domain(name)
			if err != nil {
				return nil, err
			}
			sub[name] = AxisSpec{rng: iv}
		}
	} else if len(sub) != f.Dim() {
		return nil, fmt.Errorf("%w: subdomain must cover all %d variables", ErrDimensionMismatch, f.Dim())
	}

	// free axes sorted by name, matching sub-system coordinate ordering
	freeNames := make([]string, 0, len(sub))
	fixed := make(map[string]float64)
	for name, spec := range sub {
		if _, ok := field.VarIndex(f, name); !ok {
			return nil, fmt.Errorf("%w: %s", field.ErrUnknownVariable, name)
		}
		if spec.fixed {
			fixed[name] = spec.value
			continue
		}
		if !spec.rng.Finite() {
			return nil, fmt.Errorf("%w: %s", field.ErrInvalidDomain, name)
		}
		freeNames = append(freeNames, name)
	}
	sort.Strings(freeNames)
	D := len(freeNames)
	if D == 0 {
		return nil, fmt.Errorf("%w: no free variables to search over", field.ErrInvalidDomain)
	}

	// reduce n until the grid fits the search ceiling
	n := opts.N
	for pow(n, D) > opts.MaxSearch {
		n--
		if n < 3 {
			return nil, ErrSearchBudget
		}
	}

	freeIxs := make([]int, D)
	for i, name := range freeNames {
		freeIxs[i], _ = field.VarIndex(f, name)
	}

	// template full state with fixed values filled in
	template := make(field.State, f.Dim())
	for name, v := range fixed {
		ix, _ := field.VarIndex(f, name)
		template[ix] = v
	}

	params := f.Params()
	fullState := func(x field.State) field.State {
		st := template.Clone()
		for i, ix := range freeIxs {
			st[ix] = x[i]
		}
		return st
	}

	// free-axis subsystem with per-sample fault absorption
	rhs := func(x field.State) (field.State, error) {
		dx, err := f.Rhs(opts.T, fullState(x), params)
		if err != nil {
			pen := make(field.State, D)
			for i := range pen {
				pen[i] = penaltyResidual
			}
			return pen, nil
		}
		out := make(field.State, D)
		for i, ix := range freeIxs {
			out[i] = dx[ix]
		}
		return out, nil
	}

	var jac func(field.State) (field.Matrix, error)
	if d := field.JacobianOf(f, opts.Jac); d != nil {
		jac = func(x field.State) (field.Matrix, error) {
			J, err := d.Jacobian(opts.T, fullState(x), params)
			if err != nil {
				pen := field.NewMatrix(D, D)
				for i := range pen {
					for j := range pen[i] {
						pen[i][j] = penaltyResidual
					}
				}
				return pen, nil
			}
			return J.Submatrix(freeIxs), nil
		}
	}

	coords := make([][]float64, D)
	for i, name := range freeNames {
		coords[i] = linspace(sub[name].rng.Lo, sub[name].rng.Hi, n)
	}

	var accepted []field.State
	var points []field.Point
	counter := newBaseNCounter(n, D)
	solveOpts := rootfind.NewtonOptions{XTol: opts.Eps / 10, MaxIter: 200}

	for seed := 0; seed < pow(n, D); seed++ {
		x0 := make(field.State, D)
		for i := 0; i < D; i++ {
			x0[i] = coords[i][counter.At(i)]
		}
		counter.Inc()

		root, err := rootfind.NewtonND(rhs, x0, jac, solveOpts)
		if err != nil || !root.IsValid() {
			continue
		}
		dup := false
		for _, fp := range accepted {
			if fp.Sub(root).Norm(opts.NormOrd) < opts.Eps {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		inDomain := true
		for i, name := range freeNames {
			if !sub[name].rng.Contains(root[i]) {
				inDomain = false
				break
			}
		}
		if !inDomain {
			continue
		}
		accepted = append(accepted, root)
		coordsMap := make(map[string]float64, f.Dim())
		for i, name := range freeNames {
			coordsMap[name] = root[i]
		}
		for name, v := range fixed {
			coordsMap[name] = v
		}
		points = append(points, field.PointFrom(coordsMap, opts.NormOrd))
	}
	return points, nil
}

// Equilibria is an alias for FindFixedPoints with default options.
func Equilibria(f field.Field) ([]field.Point, error) {
	return FindFixedPoints(f, FixedPointSearch{})
}

func linspace(lo, hi float64, n int) []float64 {
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

func pow(n, d int) int {
	out := 1
	for i := 0; i < d; i++ {
		out *= n
	}
	return out
}

// baseNCounter enumerates grid positions as a base-n number with d digits.
type baseNCounter struct {
	digits []int
	n      int
}

func newBaseNCounter(n, d int) *baseNCounter {
	return &baseNCounter{digits: make([]int, d), n: n}
}

func (c *baseNCounter) At(i int) int { return c.digits[i] }

func (c *baseNCounter) Inc() {
	for ix := 0; ix < len(c.digits); ix++ {
		if c.digits[ix] < c.n-1 {
			c.digits[ix]++
			return
		}
		c.digits[ix] = 0
	}
}
