package models

import (
	"fmt"

	"github.com/san-kum/phaseplane/internal/field"
)

// Duffing is the unforced double-well Duffing oscillator.
// State: [x, v]
// Equations:
//
//	dx/dt = v
//	dv/dt = -delta*v - alpha*x - beta*x³
//
// With alpha < 0 < beta there are three fixed points: a saddle at the
// origin and two wells at x = ±sqrt(-alpha/beta).
type Duffing struct {
	alpha, beta, delta float64
	doms               map[string]field.Interval
}

func NewDuffing() *Duffing {
	return &Duffing{
		alpha: -1.0,
		beta:  1.0,
		delta: 0.2,
		doms: map[string]field.Interval{
			"x": {Lo: -2.5, Hi: 2.5},
			"v": {Lo: -2.5, Hi: 2.5},
		},
	}
}

func (m *Duffing) Dim() int       { return 2 }
func (m *Duffing) Vars() []string { return []string{"x", "v"} }

func (m *Duffing) Domain(name string) (field.Interval, error) {
	return domainOf(m.doms, name)
}

func (m *Duffing) Params() field.Params {
	return field.Params{"alpha": m.alpha, "beta": m.beta, "delta": m.delta}
}

func (m *Duffing) SetParam(name string, v float64) error {
	switch name {
	case "alpha":
		m.alpha = v
	case "beta":
		m.beta = v
	case "delta":
		m.delta = v
	default:
		return fmt.Errorf("%w: %s", field.ErrUnknownParam, name)
	}
	return nil
}

func (m *Duffing) Rhs(_ float64, s field.State, p field.Params) (field.State, error) {
	if err := checkDim(s, 2); err != nil {
		return nil, err
	}
	alpha := param(p, "alpha", m.alpha)
	beta := param(p, "beta", m.beta)
	delta := param(p, "delta", m.delta)
	x, v := s[0], s[1]
	return field.State{v, -delta*v - alpha*x - beta*x*x*x}, nil
}

func (m *Duffing) Jacobian(_ float64, s field.State, p field.Params) (field.Matrix, error) {
	if err := checkDim(s, 2); err != nil {
		return nil, err
	}
	alpha := param(p, "alpha", m.alpha)
	beta := param(p, "beta", m.beta)
	delta := param(p, "delta", m.delta)
	x := s[0]
	return field.Matrix{
		{0, 1},
		{-alpha - 3*beta*x*x, -delta},
	}, nil
}

// Energy is the potential-plus-kinetic energy of the unforced oscillator,
// conserved when delta is zero.
func (m *Duffing) Energy(s field.State) float64 {
	if len(s) < 2 {
		return 0
	}
	x, v := s[0], s[1]
	return 0.5*v*v + 0.5*m.alpha*x*x + 0.25*m.beta*x*x*x*x
}
