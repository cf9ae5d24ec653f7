package models

import (
	"fmt"

	"github.com/san-kum/phaseplane/internal/field"
)

// VanDerPol is the Van der Pol oscillator.
// State: [x, y] where y = dx/dt
// Equations:
//
//	dx/dt = y
//	dy/dt = mu(1 - x²)y - x
//
// The origin is the only fixed point; for mu > 0 it is an unstable spiral
// (or node for large mu) surrounded by a stable limit cycle.
type VanDerPol struct {
	mu   float64 // nonlinearity parameter
	doms map[string]field.Interval
}

func NewVanDerPol() *VanDerPol {
	return &VanDerPol{
		mu: 1.0, // classic value for limit cycle
		doms: map[string]field.Interval{
			"x": {Lo: -4, Hi: 4},
			"y": {Lo: -4, Hi: 4},
		},
	}
}

func (m *VanDerPol) Dim() int       { return 2 }
func (m *VanDerPol) Vars() []string { return []string{"x", "y"} }

func (m *VanDerPol) Domain(name string) (field.Interval, error) {
	return domainOf(m.doms, name)
}

func (m *VanDerPol) Params() field.Params {
	return field.Params{"mu": m.mu}
}

func (m *VanDerPol) SetParam(name string, v float64) error {
	if name != "mu" {
		return fmt.Errorf("%w: %s", field.ErrUnknownParam, name)
	}
	m.mu = v
	return nil
}

func (m *VanDerPol) Rhs(_ float64, s field.State, p field.Params) (field.State, error) {
	if err := checkDim(s, 2); err != nil {
		return nil, err
	}
	mu := param(p, "mu", m.mu)
	x, y := s[0], s[1]
	return field.State{y, mu*(1-x*x)*y - x}, nil
}

func (m *VanDerPol) Jacobian(_ float64, s field.State, p field.Params) (field.Matrix, error) {
	if err := checkDim(s, 2); err != nil {
		return nil, err
	}
	mu := param(p, "mu", m.mu)
	x, y := s[0], s[1]
	return field.Matrix{
		{0, 1},
		{-2*mu*x*y - 1, mu * (1 - x*x)},
	}, nil
}
