package models

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/phaseplane/internal/field"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	names := reg.List()
	if len(names) != 5 {
		t.Fatalf("registry has %d models, want 5", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("List not sorted: %v", names)
		}
	}
	for _, name := range names {
		f, err := reg.Get(name)
		if err != nil {
			t.Fatalf("Get(%s): %v", name, err)
		}
		if f.Dim() != 2 || len(f.Vars()) != 2 {
			t.Errorf("%s is not planar", name)
		}
	}
	if _, err := reg.Get("lorenz"); err == nil {
		t.Error("expected an error for an unknown model")
	}
}

func TestRegistryInstancesIndependent(t *testing.T) {
	reg := NewRegistry()
	a, _ := reg.Get("saddle")
	b, _ := reg.Get("saddle")
	if err := a.SetParam("lambda_u", 3); err != nil {
		t.Fatal(err)
	}
	if b.Params()["lambda_u"] != 1 {
		t.Error("Get returned a shared instance")
	}
}

// jacobianConsistency checks the analytic Jacobian against central
// differences of Rhs at one state.
func jacobianConsistency(t *testing.T, f field.Field, s field.State) {
	t.Helper()
	d, ok := f.(field.Differentiable)
	if !ok {
		t.Fatal("model does not provide a Jacobian")
	}
	p := f.Params()
	J, err := d.Jacobian(0, s, p)
	if err != nil {
		t.Fatalf("Jacobian: %v", err)
	}
	for j := 0; j < f.Dim(); j++ {
		h := 1e-6 * math.Max(1, math.Abs(s[j]))
		sp := s.Clone()
		sp[j] += h
		fp, err := f.Rhs(0, sp, p)
		if err != nil {
			t.Fatalf("Rhs: %v", err)
		}
		sm := s.Clone()
		sm[j] -= h
		fm, err := f.Rhs(0, sm, p)
		if err != nil {
			t.Fatalf("Rhs: %v", err)
		}
		for i := 0; i < f.Dim(); i++ {
			fd := (fp[i] - fm[i]) / (2 * h)
			if math.Abs(J[i][j]-fd) > 1e-4*math.Max(1, math.Abs(fd)) {
				t.Errorf("J[%d][%d] = %g, finite difference %g", i, j, J[i][j], fd)
			}
		}
	}
}

func TestJacobiansMatchRhs(t *testing.T) {
	cases := []struct {
		name string
		s    field.State
	}{
		{"saddle", field.State{0.7, -0.3}},
		{"vanderpol", field.State{0.5, -1.2}},
		{"duffing", field.State{0.8, 0.4}},
		{"pendulum", field.State{0.6, 1.1}},
		{"fitzhugh-nagumo", field.State{0.2, 0.1}},
	}
	reg := NewRegistry()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := reg.Get(tc.name)
			if err != nil {
				t.Fatal(err)
			}
			jacobianConsistency(t, f, tc.s)
		})
	}
}

func TestSetParamUnknown(t *testing.T) {
	for _, name := range NewRegistry().List() {
		f, _ := NewRegistry().Get(name)
		if err := f.SetParam("no_such_param", 1); !errors.Is(err, field.ErrUnknownParam) {
			t.Errorf("%s: expected ErrUnknownParam, got %v", name, err)
		}
	}
}

func TestRhsRejectsWrongDim(t *testing.T) {
	m := NewLinearSaddle()
	if _, err := m.Rhs(0, field.State{1}, m.Params()); err == nil {
		t.Error("expected a dimension error")
	}
}

func TestParamOverrides(t *testing.T) {
	m := NewLinearSaddle()
	// overrides passed in p win over stored values
	dx, err := m.Rhs(0, field.State{1, 1}, field.Params{"lambda_u": 5, "lambda_s": -2})
	if err != nil {
		t.Fatal(err)
	}
	if dx[0] != 5 || dx[1] != -2 {
		t.Errorf("Rhs with overrides = %v", dx)
	}
}

func TestDuffingEnergy(t *testing.T) {
	m := NewDuffing()
	// the saddle at the origin has zero energy; the wells sit below it
	if e := m.Energy(field.State{0, 0}); e != 0 {
		t.Errorf("energy at the origin = %g", e)
	}
	if e := m.Energy(field.State{1, 0}); e >= 0 {
		t.Errorf("well energy = %g, want negative", e)
	}
}

func TestPendulumEnergyConservedShape(t *testing.T) {
	m := NewPendulum()
	if e := m.Energy(field.State{0, 0}); e != 0 {
		t.Errorf("energy at rest = %g", e)
	}
	if e := m.Energy(field.State{math.Pi, 0}); e <= 0 {
		t.Errorf("inverted energy = %g, want positive", e)
	}
}
