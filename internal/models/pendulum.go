package models

import (
	"fmt"
	"math"

	"github.com/san-kum/phaseplane/internal/field"
)

// Pendulum is the damped planar pendulum.
// State: [theta, omega]
// Equations:
//
//	dtheta/dt = omega
//	domega/dt = (-damping*omega - m*g*L*sin(theta)) / (m*L²)
//
// Fixed points sit at omega = 0, theta = k*pi: the hanging positions are
// stable (spirals under damping, centers without), the inverted ones are
// saddles.
type Pendulum struct {
	mass    float64
	length  float64
	damping float64
	gravity float64
	doms    map[string]field.Interval
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		mass:    1.0,
		length:  1.0,
		damping: 0.1,
		gravity: 9.81,
		doms: map[string]field.Interval{
			"theta": {Lo: -2 * math.Pi, Hi: 2 * math.Pi},
			"omega": {Lo: -8, Hi: 8},
		},
	}
}

func (m *Pendulum) Dim() int       { return 2 }
func (m *Pendulum) Vars() []string { return []string{"theta", "omega"} }

func (m *Pendulum) Domain(name string) (field.Interval, error) {
	return domainOf(m.doms, name)
}

func (m *Pendulum) Params() field.Params {
	return field.Params{
		"mass":    m.mass,
		"length":  m.length,
		"damping": m.damping,
		"gravity": m.gravity,
	}
}

func (m *Pendulum) SetParam(name string, v float64) error {
	switch name {
	case "mass":
		m.mass = v
	case "length":
		m.length = v
	case "damping":
		m.damping = v
	case "gravity":
		m.gravity = v
	default:
		return fmt.Errorf("%w: %s", field.ErrUnknownParam, name)
	}
	return nil
}

func (m *Pendulum) Rhs(_ float64, s field.State, p field.Params) (field.State, error) {
	if err := checkDim(s, 2); err != nil {
		return nil, err
	}
	mass := param(p, "mass", m.mass)
	length := param(p, "length", m.length)
	damping := param(p, "damping", m.damping)
	g := param(p, "gravity", m.gravity)
	theta, omega := s[0], s[1]
	alpha := (-damping*omega - mass*g*length*math.Sin(theta)) / (mass * length * length)
	return field.State{omega, alpha}, nil
}

func (m *Pendulum) Jacobian(_ float64, s field.State, p field.Params) (field.Matrix, error) {
	if err := checkDim(s, 2); err != nil {
		return nil, err
	}
	mass := param(p, "mass", m.mass)
	length := param(p, "length", m.length)
	damping := param(p, "damping", m.damping)
	g := param(p, "gravity", m.gravity)
	theta := s[0]
	ml2 := mass * length * length
	return field.Matrix{
		{0, 1},
		{-mass * g * length * math.Cos(theta) / ml2, -damping / ml2},
	}, nil
}

// Energy is the kinetic-plus-potential energy, conserved without damping.
func (m *Pendulum) Energy(s field.State) float64 {
	if len(s) < 2 {
		return 0
	}
	v := m.length * s[1]
	ke := 0.5 * m.mass * v * v
	pe := m.mass * m.gravity * m.length * (1.0 - math.Cos(s[0]))
	return ke + pe
}
