package phase

import (
	"math"
	"testing"

	"github.com/san-kum/phaseplane/internal/field"
)

func TestScaledStepIsotropic(t *testing.T) {
	s, err := NewScaledStep(0.1, 1, 1)
	if err != nil {
		t.Fatalf("NewScaledStep: %v", err)
	}
	if s.Dx() != 0.1 {
		t.Errorf("Dx = %g", s.Dx())
	}
	for _, dir := range []field.State{{1, 0}, {0, 1}, {1, 1}, {-3, 2}} {
		if l := s.Len(dir); math.Abs(l-0.1) > 1e-12 {
			t.Errorf("isotropic Len(%v) = %g, want 0.1", dir, l)
		}
	}
}

func TestScaledStepAnisotropic(t *testing.T) {
	s, err := NewScaledStep(0.1, 1, 10)
	if err != nil {
		t.Fatalf("NewScaledStep: %v", err)
	}
	if l := s.Len(field.State{1, 0}); math.Abs(l-0.1) > 1e-12 {
		t.Errorf("Len along x = %g, want 0.1", l)
	}
	if l := s.Len(field.State{0, 1}); math.Abs(l-1.0) > 1e-12 {
		t.Errorf("Len along y = %g, want 1.0", l)
	}
	// diagonal: angle weight is 1/2
	if l := s.Len(field.State{1, 1}); math.Abs(l-0.55) > 1e-12 {
		t.Errorf("Len along the diagonal = %g, want 0.55", l)
	}
	// sign of the direction must not matter
	if l := s.Len(field.State{-1, -1}); math.Abs(l-0.55) > 1e-12 {
		t.Errorf("Len along the negated diagonal = %g, want 0.55", l)
	}
}

func TestScaledStepStep(t *testing.T) {
	s, _ := NewScaledStep(0.2, 1, 1)
	step := s.Step(field.State{3, 4}, 2)
	if n := step.Norm(2); math.Abs(n-0.2) > 1e-12 {
		t.Errorf("step length = %g, want 0.2", n)
	}
	// collinear with the direction
	if cross := step[0]*4 - step[1]*3; math.Abs(cross) > 1e-12 {
		t.Errorf("step not along the direction: %v", step)
	}
}

func TestScaledStepValidation(t *testing.T) {
	if _, err := NewScaledStep(0.1, 0, 1); err == nil {
		t.Error("expected an error for a zero x scale")
	}
	if _, err := NewScaledStep(0.1, 1, -2); err == nil {
		t.Error("expected an error for a negative y scale")
	}
}
