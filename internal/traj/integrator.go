package traj

import (
	"fmt"
	"math"

	"github.com/san-kum/phaseplane/internal/field"
)

// Direction selects the time orientation of a trajectory computation.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// Trajectory is the sampled result of one Compute call, plus any detected
// event occurrences.
type Trajectory struct {
	Times  []float64
	States []field.State
	events map[string]Occurrence
}

// Event returns the first occurrence of the named event, if detected.
func (tr *Trajectory) Event(name string) (Occurrence, bool) {
	occ, ok := tr.events[name]
	return occ, ok
}

// Last returns the final sample.
func (tr *Trajectory) Last() (float64, field.State) {
	n := len(tr.Times)
	return tr.Times[n-1], tr.States[n-1]
}

// Integrator computes trajectories of a Field with adaptive RK45 stepping
// and zero-crossing event detection. Not safe for concurrent use: event
// activation flags are shared by every computation on the same instance.
type Integrator struct {
	f      field.Field
	events []*Event

	Tol      float64 // local error tolerance, default 1e-8
	InitStep float64 // initial step size, default 1e-3
	MinStep  float64 // default 1e-12
	MaxSteps int     // default 100000

	safety   float64
	minScale float64
	maxScale float64
}

func New(f field.Field) *Integrator {
	return &Integrator{
		f:        f,
		Tol:      1e-8,
		InitStep: 1e-3,
		MinStep:  1e-12,
		MaxSteps: 100000,
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

// AddEvent registers an event surface. The caller retains the pointer and
// may toggle Active between computations.
func (g *Integrator) AddEvent(ev *Event) {
	g.events = append(g.events, ev)
}

// Event returns a registered event by name.
func (g *Integrator) Event(name string) (*Event, bool) {
	for _, ev := range g.events {
		if ev.Name == name {
			return ev, true
		}
	}
	return nil, false
}

// Compute integrates from x0 over at most tmax time units in the given
// direction. Backward computations integrate the time-reversed field. The
// trajectory ends early when a terminal event fires; whether any event
// fired is reported on the returned Trajectory, not as an error.
func (g *Integrator) Compute(x0 field.State, t0, tmax float64, dirn Direction) (*Trajectory, error) {
	if tmax <= 0 {
		return nil, fmt.Errorf("%w: non-positive tmax", ErrIntegration)
	}
	p := g.f.Params()
	f := func(t float64, x field.State) (field.State, error) {
		dx, err := g.f.Rhs(t, x, p)
		if err != nil {
			return nil, err
		}
		if dirn == Backward {
			dx = dx.Scale(-1)
		}
		return dx, nil
	}

	tr := &Trajectory{
		Times:  []float64{t0},
		States: []field.State{x0.Clone()},
		events: make(map[string]Occurrence),
	}
	active := make([]*Event, 0, len(g.events))
	prevVals := make([]float64, 0, len(g.events))
	for _, ev := range g.events {
		if !ev.Active {
			continue
		}
		v, err := ev.Fn(t0, x0)
		if err != nil {
			return nil, fmt.Errorf("event %s at initial condition: %w", ev.Name, err)
		}
		active = append(active, ev)
		prevVals = append(prevVals, v)
	}

	t := t0
	x := x0.Clone()
	dt := g.InitStep
	tEnd := t0 + tmax

	for step := 0; step < g.MaxSteps && t < tEnd; step++ {
		if t+dt > tEnd {
			dt = tEnd - t
		}
		xNew, errRatio, dtNew, err := stepAdaptive(f, x, t, dt, g.Tol, g.safety, g.minScale, g.maxScale)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIntegration, err)
		}
		if errRatio > 1 {
			// reject and retry with the smaller step
			dt = dtNew
			if dt < g.MinStep {
				return nil, ErrStepTooSmall
			}
			continue
		}
		if !xNew.IsValid() {
			return nil, fmt.Errorf("%w: state diverged at t=%g", ErrIntegration, t)
		}
		tNew := t + dt

		terminal := false
		for i, ev := range active {
			cur, err := ev.Fn(tNew, xNew)
			if err != nil {
				return nil, fmt.Errorf("event %s: %w", ev.Name, err)
			}
			if ev.matches(prevVals[i], cur) {
				if _, seen := tr.events[ev.Name]; !seen {
					occ := locateEvent(ev, t, x, tNew, xNew)
					tr.events[ev.Name] = occ
					if ev.Terminal {
						tNew, xNew = occ.T, occ.X
						terminal = true
					}
				}
			}
			prevVals[i] = cur
		}

		tr.Times = append(tr.Times, tNew)
		tr.States = append(tr.States, xNew.Clone())
		if terminal {
			return tr, nil
		}
		t, x = tNew, xNew
		dt = math.Max(dtNew, g.MinStep)
	}
	return tr, nil
}

// locateEvent refines the crossing inside one accepted step by bisection on
// the chord between the step endpoints. The step controller keeps local
// error small enough that the chord is an adequate interpolant.
func locateEvent(ev *Event, t0 float64, x0 field.State, t1 float64, x1 field.State) Occurrence {
	interp := func(s float64) (float64, field.State) {
		x := make(field.State, len(x0))
		for i := range x {
			x[i] = x0[i] + s*(x1[i]-x0[i])
		}
		return t0 + s*(t1-t0), x
	}
	lo, hi := 0.0, 1.0
	vLo, _ := ev.Fn(t0, x0)
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		tm, xm := interp(mid)
		vm, err := ev.Fn(tm, xm)
		if err != nil || vm == 0 {
			break
		}
		if vm*vLo > 0 {
			lo = mid
			vLo = vm
		} else {
			hi = mid
		}
		if hi-lo < 1e-12 {
			break
		}
	}
	tc, xc := interp((lo + hi) / 2)
	return Occurrence{T: tc, X: xc}
}
