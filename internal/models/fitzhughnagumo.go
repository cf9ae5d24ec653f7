package models

import (
	"fmt"

	"github.com/san-kum/phaseplane/internal/field"
)

// FitzHughNagumo is the two-variable reduction of the Hodgkin-Huxley neuron.
// State: [v, w] (fast voltage, slow recovery)
// Equations:
//
//	dv/dt = v - v³/3 - w + I
//	dw/dt = (v + a - b*w) / tau
//
// The cubic v-nullcline against the linear w-nullcline is the classic
// textbook nullcline picture; sweeping I moves the rest point across the
// knee and triggers relaxation oscillations.
type FitzHughNagumo struct {
	a, b, tau, i float64
	doms         map[string]field.Interval
}

func NewFitzHughNagumo() *FitzHughNagumo {
	return &FitzHughNagumo{
		a:   0.7,
		b:   0.8,
		tau: 12.5,
		i:   0.5,
		doms: map[string]field.Interval{
			"v": {Lo: -2.5, Hi: 2.5},
			"w": {Lo: -1, Hi: 2},
		},
	}
}

func (m *FitzHughNagumo) Dim() int       { return 2 }
func (m *FitzHughNagumo) Vars() []string { return []string{"v", "w"} }

func (m *FitzHughNagumo) Domain(name string) (field.Interval, error) {
	return domainOf(m.doms, name)
}

func (m *FitzHughNagumo) Params() field.Params {
	return field.Params{"a": m.a, "b": m.b, "tau": m.tau, "I": m.i}
}

func (m *FitzHughNagumo) SetParam(name string, v float64) error {
	switch name {
	case "a":
		m.a = v
	case "b":
		m.b = v
	case "tau":
		m.tau = v
	case "I":
		m.i = v
	default:
		return fmt.Errorf("%w: %s", field.ErrUnknownParam, name)
	}
	return nil
}

func (m *FitzHughNagumo) Rhs(_ float64, s field.State, p field.Params) (field.State, error) {
	if err := checkDim(s, 2); err != nil {
		return nil, err
	}
	a := param(p, "a", m.a)
	b := param(p, "b", m.b)
	tau := param(p, "tau", m.tau)
	i := param(p, "I", m.i)
	v, w := s[0], s[1]
	return field.State{
		v - v*v*v/3 - w + i,
		(v + a - b*w) / tau,
	}, nil
}

func (m *FitzHughNagumo) Jacobian(_ float64, s field.State, p field.Params) (field.Matrix, error) {
	if err := checkDim(s, 2); err != nil {
		return nil, err
	}
	b := param(p, "b", m.b)
	tau := param(p, "tau", m.tau)
	v := s[0]
	return field.Matrix{
		{1 - v*v, -1},
		{1 / tau, -b / tau},
	}, nil
}
