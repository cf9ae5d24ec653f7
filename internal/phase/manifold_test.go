package phase

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/san-kum/phaseplane/internal/field"
	"github.com/san-kum/phaseplane/internal/models"
	"github.com/san-kum/phaseplane/internal/traj"
)

func saddleFixture(t *testing.T) (*models.LinearSaddle, *FixedPoint) {
	t.Helper()
	m := models.NewLinearSaddle()
	pt := field.PointFrom(map[string]float64{"x": 0, "y": 0}, 2)
	fp, err := Classify(m, pt, ClassifyOptions{Eps: 1e-6})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	return m, fp
}

func TestSaddleManifoldsAxes(t *testing.T) {
	m, fp := saddleFixture(t)
	man, err := SaddleManifolds(m, traj.New(m), fp, ManifoldOptions{
		Dx:      0.05,
		DxGamma: 0.2,
		DxPerp:  0.01,
		Tmax:    30,
		MaxLen:  1.0,
	})
	if err != nil {
		t.Fatalf("SaddleManifolds: %v", err)
	}

	stable, ok := man[StableBranch]
	if !ok || len(stable.Points) < 10 {
		t.Fatalf("stable branch missing or too short: %+v", stable)
	}
	unstable, ok := man[UnstableBranch]
	if !ok || len(unstable.Points) < 10 {
		t.Fatalf("unstable branch missing or too short: %+v", unstable)
	}

	// for dx/dt = x, dy/dt = -y the stable manifold is the y axis and the
	// unstable manifold the x axis
	for _, p := range stable.Points {
		if math.Abs(p[0]) > 1e-3 {
			t.Errorf("stable manifold point off the y axis: %v", p)
		}
	}
	for _, p := range unstable.Points {
		if math.Abs(p[1]) > 1e-3 {
			t.Errorf("unstable manifold point off the x axis: %v", p)
		}
	}

	// both growth directions contribute
	for kind, br := range man {
		if br.Arclengths[0] >= 0 || br.Arclengths[len(br.Arclengths)-1] <= 0 {
			t.Errorf("%s branch grew in one direction only: [%g, %g]",
				kind, br.Arclengths[0], br.Arclengths[len(br.Arclengths)-1])
		}
		if !sort.Float64sAreSorted(br.Arclengths) {
			t.Errorf("%s branch arclengths not sorted", kind)
		}
		if len(br.Arclengths) != len(br.Points) {
			t.Errorf("%s branch arclength/point mismatch", kind)
		}
	}
}

func TestSaddleManifoldsWhich(t *testing.T) {
	m, fp := saddleFixture(t)
	man, err := SaddleManifolds(m, traj.New(m), fp, ManifoldOptions{
		Dx:      0.05,
		DxGamma: 0.2,
		DxPerp:  0.01,
		Tmax:    30,
		MaxLen:  0.5,
		Which:   []BranchKind{UnstableBranch},
	})
	if err != nil {
		t.Fatalf("SaddleManifolds: %v", err)
	}
	if _, ok := man[StableBranch]; ok {
		t.Error("stable branch computed although not requested")
	}
	if _, ok := man[UnstableBranch]; !ok {
		t.Error("requested unstable branch missing")
	}
}

func TestSaddleManifoldsDeactivatesEvents(t *testing.T) {
	m, fp := saddleFixture(t)
	integ := traj.New(m)
	_, err := SaddleManifolds(m, integ, fp, ManifoldOptions{
		Dx:      0.05,
		DxGamma: 0.2,
		DxPerp:  0.01,
		Tmax:    30,
		MaxLen:  0.3,
	})
	if err != nil {
		t.Fatalf("SaddleManifolds: %v", err)
	}
	for _, name := range []string{"gamma_out_plus", "gamma_out_minus"} {
		ev, ok := integ.Event(name)
		if !ok {
			t.Fatalf("event %s not registered", name)
		}
		if ev.Active {
			t.Errorf("event %s left active", name)
		}
	}
}

func TestSaddleManifoldsRejectsNonSaddle(t *testing.T) {
	m := models.NewLinearSaddle()
	if err := m.SetParam("lambda_u", -2); err != nil {
		t.Fatal(err)
	}
	pt := field.PointFrom(map[string]float64{"x": 0, "y": 0}, 2)
	fp, err := Classify(m, pt, ClassifyOptions{Eps: 1e-6})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	_, err = SaddleManifolds(m, traj.New(m), fp, ManifoldOptions{
		Dx: 0.05, DxGamma: 0.2, DxPerp: 0.01, Tmax: 30, MaxLen: 1,
	})
	if !errors.Is(err, ErrNotSaddle) {
		t.Errorf("expected ErrNotSaddle, got %v", err)
	}
}

func TestSaddleManifoldsValidatesOptions(t *testing.T) {
	m, fp := saddleFixture(t)
	if _, err := SaddleManifolds(m, traj.New(m), fp, ManifoldOptions{}); err == nil {
		t.Error("expected an error for missing required options")
	}
	if _, err := SaddleManifolds(m, traj.New(m), fp, ManifoldOptions{
		Dx: 0.05, DxGamma: 0.2, DxPerp: 0.01, Tmax: 30, MaxLen: 1,
		ShrinkFactor: 1.5,
	}); err == nil {
		t.Error("expected an error for an out-of-range shrink factor")
	}
}

func TestSignsAllFlipped(t *testing.T) {
	if !signsAllFlipped(field.State{1, -2}, field.State{-3, 4}) {
		t.Error("fully flipped vector not detected")
	}
	if signsAllFlipped(field.State{1, -2}, field.State{3, 4}) {
		t.Error("partially flipped vector misdetected")
	}
	if signsAllFlipped(field.State{0, 1}, field.State{0, -1}) {
		t.Error("zero components cannot flip")
	}
}
