package phase

import (
	"fmt"
	"math"

	"github.com/san-kum/phaseplane/internal/cont"
	"github.com/san-kum/phaseplane/internal/field"
	"github.com/san-kum/phaseplane/internal/rootfind"
)

// domainTol is the fraction by which the domain rectangle is expanded when
// cropping nullcline points.
const domainTol = 0.02

// Nullcline approximates the zero set of one state variable's rate of
// change, restricted to the analyzed plane. Ordered reports whether the
// points follow the curve's arclength (continuation-refined) or are an
// unordered grid-search cloud that must be rendered as markers.
type Nullcline struct {
	Var     string
	Points  []field.State // (x, y) pairs
	Ordered bool
}

// NullclineOptions configures FindNullclines.
type NullclineOptions struct {
	XDom, YDom  *field.Interval    // sub-domains; default the field's domains
	FixedVars   map[string]float64 // values for variables outside the plane
	N           int                // grid resolution, default 10
	T           float64            // evaluation time
	XTol        float64            // solve accuracy, default 1.49012e-8
	Jac         field.JacobianFunc // fallback Jacobian for derivative info
	MaxStep     float64            // continuation max step; 0 disables refinement
	MaxPoints   int                // continuation point budget, default 1000
	FixedPoints []field.Point      // known equilibria used as extra seeds
	OnlyVar     string             // restrict to one of xname/yname
}

func (o *NullclineOptions) defaults() {
	if o.N <= 0 {
		o.N = 10
	}
	if o.XTol <= 0 {
		o.XTol = 1.49012e-8
	}
	if o.MaxPoints <= 0 {
		o.MaxPoints = 1000
	}
}

// FindNullclines traces the x- and y-nullclines of the 2D sub-system of f
// spanned by xname and yname. Grid seeding collects 1D roots of each rate
// along both axes; when MaxStep is nonzero the raw points are replaced by
// an arclength-ordered continuation curve.
func FindNullclines(f field.Field, xname, yname string, opts NullclineOptions) (*Nullcline, *Nullcline, error) {
	opts.defaults()
	xIx, ok := field.VarIndex(f, xname)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", field.ErrUnknownVariable, xname)
	}
	yIx, ok := field.VarIndex(f, yname)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", field.ErrUnknownVariable, yname)
	}
	doX, doY := true, true
	switch opts.OnlyVar {
	case "":
	case xname:
		doY = false
	case yname:
		doX = false
	default:
		return nil, nil, fmt.Errorf("%w: only_var %s is neither %s nor %s",
			field.ErrUnknownVariable, opts.OnlyVar, xname, yname)
	}

	xDom, err := resolveDomain(f, xname, opts.XDom)
	if err != nil && doX {
		return nil, nil, err
	}
	yDom, err := resolveDomain(f, yname, opts.YDom)
	if err != nil && doY {
		return nil, nil, err
	}

	// full state assembled from explicit (x, y); other variables pinned
	params := f.Params()
	template := make(field.State, f.Dim())
	for name, v := range opts.FixedVars {
		if ix, ok := field.VarIndex(f, name); ok {
			template[ix] = v
		}
	}
	rate := func(ix int, x, y float64) (float64, error) {
		st := template.Clone()
		st[xIx] = x
		st[yIx] = y
		dx, err := f.Rhs(opts.T, st, params)
		if err != nil {
			return 0, err
		}
		return dx[ix], nil
	}
	var partial func(ix, wrt int, x, y float64) (float64, error)
	if d := field.JacobianOf(f, opts.Jac); d != nil {
		partial = func(ix, wrt int, x, y float64) (float64, error) {
			st := template.Clone()
			st[xIx] = x
			st[yIx] = y
			J, err := d.Jacobian(opts.T, st, params)
			if err != nil {
				return 0, err
			}
			return J[ix][wrt], nil
		}
	}

	xRange := linspace(xDom.Lo, xDom.Hi, opts.N)
	yRange := linspace(yDom.Lo, yDom.Hi, opts.N)
	stride := int(math.Ceil(float64(opts.N) / 10))
	if stride < 1 {
		stride = 1
	}
	solve := rootfind.NewtonOptions{XTol: opts.XTol, MaxIter: 100}

	seedsX := fpCoords(opts.FixedPoints, xname)
	seedsY := fpCoords(opts.FixedPoints, yname)
	for i := 0; i < len(xRange); i += stride {
		seedsX = append(seedsX, xRange[i])
	}
	for i := 0; i < len(yRange); i += stride {
		seedsY = append(seedsY, yRange[i])
	}

	// ydot = 0: roots over x at each y, and over y at fixed transverse seeds
	var yPts []field.State
	if doY {
		for _, x0 := range seedsX {
			for _, y := range yRange {
				var dfn func(float64) (float64, error)
				if partial != nil {
					dfn = func(x float64) (float64, error) { return partial(yIx, xIx, x, y) }
				}
				if root, err := rootfind.Newton1D(func(x float64) (float64, error) {
					return rate(yIx, x, y)
				}, x0, dfn, solve); err == nil {
					yPts = append(yPts, field.State{root, y})
				}
				if partial != nil {
					dfn = func(yv float64) (float64, error) { return partial(yIx, yIx, x0, yv) }
				}
				if root, err := rootfind.Newton1D(func(yv float64) (float64, error) {
					return rate(yIx, x0, yv)
				}, y, dfn, solve); err == nil {
					yPts = append(yPts, field.State{x0, root})
				}
			}
		}
	}

	// xdot = 0, symmetric in the two axes
	var xPts []field.State
	if doX {
		for _, y0 := range seedsY {
			for _, x := range xRange {
				var dfn func(float64) (float64, error)
				if partial != nil {
					dfn = func(yv float64) (float64, error) { return partial(xIx, yIx, x, yv) }
				}
				if root, err := rootfind.Newton1D(func(yv float64) (float64, error) {
					return rate(xIx, x, yv)
				}, y0, dfn, solve); err == nil {
					xPts = append(xPts, field.State{x, root})
				}
				if partial != nil {
					dfn = func(xv float64) (float64, error) { return partial(xIx, xIx, xv, y0) }
				}
				if root, err := rootfind.Newton1D(func(xv float64) (float64, error) {
					return rate(xIx, xv, y0)
				}, x, dfn, solve); err == nil {
					xPts = append(xPts, field.State{root, y0})
				}
			}
		}
	}

	xiv := xDom.Expand(domainTol)
	yiv := yDom.Expand(domainTol)
	xPts = FilterClose(Crop(FilterFinite(xPts), xiv, yiv), opts.XTol*10, 2)
	yPts = FilterClose(Crop(FilterFinite(yPts), xiv, yiv), opts.XTol*10, 2)

	xNull := &Nullcline{Var: xname, Points: xPts}
	yNull := &Nullcline{Var: yname, Points: yPts}

	if opts.MaxStep != 0 {
		if doY {
			pts, err := refineNullcline(func(x, y float64) (float64, error) {
				return rate(yIx, x, y)
			}, yPts, xname, yname, opts, xDom, yDom, xiv, yiv)
			if err != nil {
				return nil, nil, fmt.Errorf("nullcline of %s: %w", yname, err)
			}
			yNull.Points = pts
			yNull.Ordered = true
		}
		if doX {
			pts, err := refineNullcline(func(x, y float64) (float64, error) {
				return rate(xIx, x, y)
			}, xPts, xname, yname, opts, xDom, yDom, xiv, yiv)
			if err != nil {
				return nil, nil, fmt.Errorf("nullcline of %s: %w", xname, err)
			}
			xNull.Points = pts
			xNull.Ordered = true
		}
	}
	if !doX {
		xNull = nil
	}
	if !doY {
		yNull = nil
	}
	return xNull, yNull, nil
}

// refineNullcline replaces grid-search points by an arclength-ordered
// continuation curve grown from a seed until it leaves the expanded domain
// or exhausts the point budget. A failure in either direction is fatal to
// the branch.
func refineNullcline(g func(x, y float64) (float64, error), raw []field.State,
	xname, yname string, opts NullclineOptions, xDom, yDom, xiv, yiv field.Interval) ([]field.State, error) {

	// prefer the second grid point, then the first, then a perturbed fixed
	// point, then the domain midpoint; clamp into the sub-domain
	var sx, sy float64
	switch {
	case len(raw) > 1:
		sx, sy = raw[1][0], raw[1][1]
	case len(raw) == 1:
		sx, sy = raw[0][0], raw[0][1]
	case len(opts.FixedPoints) > 0:
		fp := opts.FixedPoints[0]
		vx, _ := fp.Coord(xname)
		vy, _ := fp.Coord(yname)
		sx, sy = vx+1e-5, vy+1e-5
	default:
		sx, sy = xDom.Mid(), yDom.Mid()
	}
	sx = xDom.Clamp(sx)
	sy = yDom.Clamp(sy)

	curve, err := cont.NewCurve(g, sx, sy, cont.Options{
		MaxStep:   opts.MaxStep,
		BatchSize: 5,
	})
	if err != nil {
		return nil, err
	}
	for _, step := range []func() ([]field.State, error){curve.Forward, curve.Backward} {
		num := 0
		for {
			seg, err := step()
			if err != nil {
				return nil, err
			}
			num += len(seg)
			if !InBounds(seg, xiv, yiv) || num > opts.MaxPoints {
				break
			}
		}
	}
	return Crop(curve.Solution(), xiv, yiv), nil
}

func resolveDomain(f field.Field, name string, override *field.Interval) (field.Interval, error) {
	if override != nil {
		if !override.Finite() {
			return field.Interval{}, fmt.Errorf("%w: %s", field.ErrInvalidDomain, name)
		}
		return *override, nil
	}
	iv, err := f.Domain(name)
	if err != nil {
		return field.Interval{}, err
	}
	if !iv.Finite() {
		return field.Interval{}, fmt.Errorf("%w: %s", field.ErrInvalidDomain, name)
	}
	return iv, nil
}

func fpCoords(fps []field.Point, name string) []float64 {
	out := make([]float64, 0, len(fps))
	for _, fp := range fps {
		if v, ok := fp.Coord(name); ok {
			out = append(out, v)
		}
	}
	return out
}
