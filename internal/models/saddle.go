package models

import (
	"fmt"

	"github.com/san-kum/phaseplane/internal/field"
)

// LinearSaddle is the canonical linear saddle at the origin.
// State: [x, y]
// Equations:
//
//	dx/dt = lambda_u * x
//	dy/dt = lambda_s * y
//
// With lambda_u > 0 > lambda_s the x-axis is the unstable manifold and the
// y-axis the stable one, which makes this the standard check for manifold
// and classification code.
type LinearSaddle struct {
	lambdaU, lambdaS float64
	doms             map[string]field.Interval
}

func NewLinearSaddle() *LinearSaddle {
	return &LinearSaddle{
		lambdaU: 1.0,
		lambdaS: -1.0,
		doms: map[string]field.Interval{
			"x": {Lo: -10, Hi: 10},
			"y": {Lo: -10, Hi: 10},
		},
	}
}

func (m *LinearSaddle) Dim() int       { return 2 }
func (m *LinearSaddle) Vars() []string { return []string{"x", "y"} }

func (m *LinearSaddle) Domain(name string) (field.Interval, error) {
	return domainOf(m.doms, name)
}

func (m *LinearSaddle) Params() field.Params {
	return field.Params{"lambda_u": m.lambdaU, "lambda_s": m.lambdaS}
}

func (m *LinearSaddle) SetParam(name string, v float64) error {
	switch name {
	case "lambda_u":
		m.lambdaU = v
	case "lambda_s":
		m.lambdaS = v
	default:
		return fmt.Errorf("%w: %s", field.ErrUnknownParam, name)
	}
	return nil
}

func (m *LinearSaddle) Rhs(_ float64, x field.State, p field.Params) (field.State, error) {
	if err := checkDim(x, 2); err != nil {
		return nil, err
	}
	lu := param(p, "lambda_u", m.lambdaU)
	ls := param(p, "lambda_s", m.lambdaS)
	return field.State{lu * x[0], ls * x[1]}, nil
}

func (m *LinearSaddle) Jacobian(_ float64, x field.State, p field.Params) (field.Matrix, error) {
	if err := checkDim(x, 2); err != nil {
		return nil, err
	}
	lu := param(p, "lambda_u", m.lambdaU)
	ls := param(p, "lambda_s", m.lambdaS)
	return field.Matrix{{lu, 0}, {0, ls}}, nil
}
