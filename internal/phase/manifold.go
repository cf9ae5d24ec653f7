package phase

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/phaseplane/internal/field"
	"github.com/san-kum/phaseplane/internal/rootfind"
	"github.com/san-kum/phaseplane/internal/traj"
)

// BranchKind names one of the two invariant sub-manifolds of a saddle.
type BranchKind int

const (
	StableBranch BranchKind = iota
	UnstableBranch
)

func (k BranchKind) String() string {
	if k == StableBranch {
		return "stable"
	}
	return "unstable"
}

// Branch is one computed sub-manifold: points keyed by signed arclength
// measured from the seed, sorted ascending. The two growth directions share
// the key space through the sign.
type Branch struct {
	Kind       BranchKind
	Arclengths []float64
	Points     []field.State // (x, y) in the saddle's coordinate order
}

// Event names registered on the integrator for the duration of a manifold
// computation. Reused across calls on the same integrator.
const (
	gammaPlusEvent  = "gamma_out_plus"
	gammaMinusEvent = "gamma_out_minus"
)

// ManifoldOptions configures SaddleManifolds. Dx, DxGamma, DxPerp, Tmax
// and MaxLen are required and must be positive.
type ManifoldOptions struct {
	Dx           float64 // fixed arclength step between manifold points
	DxGamma      float64 // offset of the Gamma gate surfaces from the saddle
	DxGammaMinus float64 // asymmetric minus-side offset; 0 means DxGamma
	DxPerp       float64 // initial transverse bracket half-width
	Tmax         float64 // time budget per test trajectory
	MaxLen       float64 // arclength budget per growth direction
	MaxPoints    int     // point budget per growth direction, default 1000

	Which       []BranchKind // default both branches
	Directions  []int        // +1, -1 or both (default)
	OtherPoints []field.Point
	RelScale    [2]float64 // coordinate scalings for stepping, default (1, 1)

	// ShrinkFactor is applied to the transverse bracket when a correction
	// fails to straddle the manifold. Values close to 1 shrink slowly,
	// which helps on unstable manifolds where brackets diverge quickly.
	ShrinkFactor float64 // in (0, 1), default 0.75

	IC       *field.Point // restart point; default the saddle itself
	ICDx     float64      // step length away from a restart point
	ICArclen float64      // arclength already accumulated at IC
}

func (o *ManifoldOptions) defaults() error {
	if o.Dx <= 0 || o.DxGamma <= 0 || o.DxPerp <= 0 || o.Tmax <= 0 || o.MaxLen <= 0 {
		return fmt.Errorf("phase: Dx, DxGamma, DxPerp, Tmax and MaxLen must all be positive")
	}
	if o.DxGammaMinus == 0 {
		o.DxGammaMinus = o.DxGamma
	}
	if o.MaxPoints <= 0 {
		o.MaxPoints = 1000
	}
	if o.Which == nil {
		o.Which = []BranchKind{StableBranch, UnstableBranch}
	}
	if o.Directions == nil {
		o.Directions = []int{1, -1}
	}
	if o.RelScale == [2]float64{} {
		o.RelScale = [2]float64{1, 1}
	}
	if o.ShrinkFactor == 0 {
		o.ShrinkFactor = 0.75
	}
	if o.ShrinkFactor <= 0 || o.ShrinkFactor >= 1 {
		return fmt.Errorf("phase: ShrinkFactor must be strictly between 0 and 1")
	}
	return nil
}

// dxPerpFloor is the smallest transverse bracket tried before giving up on
// a correction step.
const dxPerpFloor = 1e-12

// SaddleManifolds grows the stable and/or unstable sub-manifolds of a 2D
// saddle by fixed-arclength predictor-corrector stepping. The predictor
// steps along the (time-oriented) flow; the corrector brackets the manifold
// transversally and bisects on which Gamma gate surface a test trajectory
// escapes through.
//
// The integrator must wrap the same field. Gate events are activated on it
// for the duration of the call and deactivated before returning, even on
// error. Failure to converge onto the manifold at the first point of a
// branch is fatal; later failures end that growth direction and keep the
// partial branch.
func SaddleManifolds(f field.Field, integ *traj.Integrator, fp *FixedPoint, opts ManifoldOptions) (map[BranchKind]*Branch, error) {
	if err := opts.defaults(); err != nil {
		return nil, err
	}
	if fp.Class != Saddle || fp.Degenerate {
		return nil, fmt.Errorf("%w: %s %s point", ErrNotSaddle, fp.Stability, fp.Class)
	}
	if f.Dim() != 2 || len(fp.Coords) != 2 {
		return nil, fmt.Errorf("%w: saddle manifolds need a planar system", ErrUnsupportedDim)
	}
	xIx, ok := field.VarIndex(f, fp.Coords[0])
	if !ok {
		return nil, fmt.Errorf("%w: %s", field.ErrUnknownVariable, fp.Coords[0])
	}
	yIx, ok := field.VarIndex(f, fp.Coords[1])
	if !ok {
		return nil, fmt.Errorf("%w: %s", field.ErrUnknownVariable, fp.Coords[1])
	}

	toFull := func(pl field.State) field.State {
		full := make(field.State, 2)
		full[xIx], full[yIx] = pl[0], pl[1]
		return full
	}
	toPlane := func(full field.State) field.State {
		return field.State{full[xIx], full[yIx]}
	}
	params := f.Params()
	rhsPl := func(pl field.State) (field.State, error) {
		dx, err := f.Rhs(0, toFull(pl), params)
		if err != nil {
			return nil, err
		}
		return toPlane(dx), nil
	}
	planarOf := func(pt field.Point) (field.State, error) {
		sub, err := pt.Select(fp.Coords)
		if err != nil {
			return nil, err
		}
		return sub.State(), nil
	}

	normOrd := fp.NormOrd
	eps := fp.Eps / 100
	fpPl, err := planarOf(fp.Point)
	if err != nil {
		return nil, err
	}
	_, _, evecSp, evecUp := fp.StableUnstable()
	evecS := evecSp.State()
	evecU := evecUp.State()

	scaled, err := NewScaledStep(opts.Dx, opts.RelScale[0], opts.RelScale[1])
	if err != nil {
		return nil, err
	}
	icStep := scaled
	if opts.ICDx > 0 {
		if icStep, err = NewScaledStep(opts.ICDx, opts.RelScale[0], opts.RelScale[1]); err != nil {
			return nil, err
		}
	}

	gammaPlus := ensureEvent(integ, gammaPlusEvent)
	gammaMinus := ensureEvent(integ, gammaMinusEvent)
	defer func() {
		gammaPlus.Active = false
		gammaMinus.Active = false
	}()

	// +1 if a test trajectory escapes through the plus gate, -1 through the
	// minus gate. Anything else is a failed probe.
	var dirn traj.Direction
	testFn := func(pl field.State) (float64, error) {
		tr, err := integ.Compute(toFull(pl), 0, opts.Tmax, dirn)
		if err != nil {
			return 0, err
		}
		_, hitPlus := tr.Event(gammaPlusEvent)
		_, hitMinus := tr.Event(gammaMinusEvent)
		switch {
		case hitPlus && !hitMinus:
			return 1, nil
		case hitMinus && !hitPlus:
			return -1, nil
		}
		return 0, fmt.Errorf("%w: test trajectory did not reach exactly one gamma surface", traj.ErrNoEvent)
	}
	ontoManifold := func(xic field.State, dn float64, normal field.State) (field.State, error) {
		return rootfind.Bisect(testFn,
			xic.Add(normal.Scale(dn)),
			xic.Sub(normal.Scale(dn)),
			rootfind.BisectOptions{XTol: eps, MaxIter: 100, NormOrd: normOrd})
	}
	// shrink the transverse bracket until the probe endpoints straddle the
	// manifold (or the bracket bottoms out)
	correct := func(xic field.State, normal field.State) (field.State, error) {
		dn := opts.DxPerp
		for dn > dxPerpFloor {
			x, err := ontoManifold(xic, dn, normal)
			if err == nil {
				return x, nil
			}
			dn *= opts.ShrinkFactor
			if dn <= dxPerpFloor {
				return nil, err
			}
		}
		return nil, fmt.Errorf("phase: transverse bracket below %g", dxPerpFloor)
	}

	manifold := make(map[BranchKind]*Branch, len(opts.Which))
	for _, w := range opts.Which {
		var wSgn float64
		var evec, evecOther field.State
		if w == StableBranch {
			// points on the stable manifold flow into the saddle and leave,
			// forward in time, along the unstable eigendirection
			wSgn = -1
			dirn = traj.Forward
			evec = evecU
			evecOther = evecS
		} else {
			wSgn = 1
			dirn = traj.Backward
			evec = evecS
			evecOther = evecU
		}
		// gate lines through fp +/- dxGamma*evec, spanning perp(evec)
		p0Plus := fpPl.Add(evec.Scale(opts.DxGamma))
		p0Minus := fpPl.Sub(evec.Scale(opts.DxGammaMinus))
		evecPerp := field.Perp(evec)
		gammaPlus.Fn = gateFn(p0Plus, evecPerp, xIx, yIx)
		gammaPlus.Dir = -1
		gammaPlus.Terminal = true
		gammaPlus.Active = true
		gammaMinus.Fn = gateFn(p0Minus, evecPerp, xIx, yIx)
		gammaMinus.Dir = 1
		gammaMinus.Terminal = true
		gammaMinus.Active = true

		ic := fpPl
		fIC := evecOther.Scale(-wSgn)
		baseLen := 0.0
		if opts.IC != nil {
			if ic, err = planarOf(*opts.IC); err != nil {
				return nil, err
			}
			baseLen = math.Abs(opts.ICArclen)
			d, err := rhsPl(ic)
			if err != nil {
				return nil, err
			}
			fIC = d.Scale(-wSgn)
		}

		piece := make(map[float64]field.State)
		for _, sgn := range opts.Directions {
			fs := float64(sgn)
			x0ic := ic.Add(icStep.Step(fIC.Scale(wSgn*fs), normOrd))
			fv, err := rhsPl(x0ic)
			if err != nil {
				return nil, err
			}
			fv = fv.Scale(-wSgn)
			x, err := correct(x0ic, field.Perp(fv.Unit(normOrd)))
			if err != nil {
				return nil, fmt.Errorf("%w (%s branch, direction %+d): %v",
					ErrInitialConvergence, w, sgn, err)
			}
			curveLen := baseLen + x.Sub(ic).Norm(normOrd)
			piece[fs*curveLen] = x
			lastX := x
			lastF := fIC
			numPts := 1

			for curveLen < opts.MaxLen && numPts < opts.MaxPoints {
				if nearAny(lastX, opts.OtherPoints, fp.Coords, opts.Dx, normOrd) {
					break
				}
				d, err := rhsPl(lastX)
				if err != nil {
					return nil, err
				}
				fv := d.Scale(-wSgn)
				if signsAllFlipped(fv, lastF) {
					// crossed to the other side of the manifold; flip to keep
					// stepping the same way along the curve
					fv = fv.Scale(-1)
				}
				xic := lastX.Add(scaled.Step(fv.Scale(wSgn*fs), normOrd))
				lastF = fv
				x, err := correct(xic, field.Perp(fv.Unit(normOrd)))
				if err != nil {
					break // keep the partial branch
				}
				curveLen += x.Sub(lastX).Norm(normOrd)
				piece[fs*curveLen] = x
				lastX = x
				numPts++
			}
		}

		br := &Branch{Kind: w}
		br.Arclengths = make([]float64, 0, len(piece))
		for l := range piece {
			br.Arclengths = append(br.Arclengths, l)
		}
		sort.Float64s(br.Arclengths)
		br.Points = make([]field.State, len(br.Arclengths))
		for i, l := range br.Arclengths {
			br.Points[i] = piece[l]
		}
		manifold[w] = br
	}
	return manifold, nil
}

// gateFn is the signed perpendicular distance of the full state to the line
// through p0 (planar) spanning d, matching the cross-product orientation of
// the gate events: escaping along +evec crosses the plus gate positive to
// negative.
func gateFn(p0, d field.State, xIx, yIx int) func(t float64, x field.State) (float64, error) {
	return func(t float64, x field.State) (float64, error) {
		return (x[xIx]-p0[0])*d[1] - (x[yIx]-p0[1])*d[0], nil
	}
}

func ensureEvent(g *traj.Integrator, name string) *traj.Event {
	if ev, ok := g.Event(name); ok {
		return ev
	}
	ev := &traj.Event{Name: name}
	g.AddEvent(ev)
	return ev
}

// signsAllFlipped reports whether every component of f has the opposite
// strict sign of the corresponding component of g.
func signsAllFlipped(f, g field.State) bool {
	for i := range f {
		if sign(f[i]) == sign(g[i]) {
			return false
		}
	}
	return true
}

func nearAny(x field.State, pts []field.Point, coords []string, dx float64, normOrd int) bool {
	for _, pt := range pts {
		sub, err := pt.Select(coords)
		if err != nil {
			continue
		}
		if x.Sub(sub.State()).Norm(normOrd) < dx {
			return true
		}
	}
	return false
}
