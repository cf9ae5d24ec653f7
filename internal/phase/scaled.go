package phase

import (
	"fmt"
	"math"

	"github.com/san-kum/phaseplane/internal/field"
)

// ScaledStep is an anisotropic step length for 2D stepping: a base length
// dx re-weighted by the angle of the step direction relative to the axes,
// so that steps along differently scaled coordinates cover comparable
// visual/numerical distance. A pure function of its configuration.
type ScaledStep struct {
	dx     float64
	yScale float64
}

// NewScaledStep builds a step of base length dx with the relative axis
// scalings (scaleX, scaleY), both strictly positive. (1, 10) makes steps in
// the y direction ten times longer than in the x direction.
func NewScaledStep(dx, scaleX, scaleY float64) (*ScaledStep, error) {
	if scaleX <= 0 || scaleY <= 0 {
		return nil, fmt.Errorf("phase: scale components must be strictly positive, got (%g, %g)", scaleX, scaleY)
	}
	return &ScaledStep{dx: dx, yScale: scaleY / scaleX}, nil
}

// Dx returns the unscaled base length.
func (s *ScaledStep) Dx() float64 { return s.dx }

// Len returns the effective step length for a step along dir. The angle
// weight is 0 for a step entirely along x and 1 entirely along y.
func (s *ScaledStep) Len(dir field.State) float64 {
	angle := 2 * math.Atan2(math.Abs(dir[1]), math.Abs(dir[0])) / math.Pi
	return s.dx * (angle*s.yScale + (1 - angle))
}

// Step returns the displacement of length Len(dir) along the unit vector
// of dir under the given norm order.
func (s *ScaledStep) Step(dir field.State, normOrd int) field.State {
	return dir.Unit(normOrd).Scale(s.Len(dir))
}
