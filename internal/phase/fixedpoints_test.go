package phase

import (
	"math"
	"testing"

	"github.com/san-kum/phaseplane/internal/models"
)

func TestFindFixedPointsLinearSaddle(t *testing.T) {
	pts, err := FindFixedPoints(models.NewLinearSaddle(), FixedPointSearch{})
	if err != nil {
		t.Fatalf("FindFixedPoints: %v", err)
	}
	if len(pts) != 1 {
		t.Fatalf("expected one fixed point, got %d", len(pts))
	}
	x, _ := pts[0].Coord("x")
	y, _ := pts[0].Coord("y")
	if math.Abs(x) > 1e-6 || math.Abs(y) > 1e-6 {
		t.Errorf("fixed point not at origin: (%g, %g)", x, y)
	}
}

func TestFindFixedPointsDuffingWells(t *testing.T) {
	pts, err := FindFixedPoints(models.NewDuffing(), FixedPointSearch{N: 7})
	if err != nil {
		t.Fatalf("FindFixedPoints: %v", err)
	}
	if len(pts) != 3 {
		t.Fatalf("expected three fixed points, got %d", len(pts))
	}
	want := map[float64]bool{-1: false, 0: false, 1: false}
	for _, pt := range pts {
		x, _ := pt.Coord("x")
		v, _ := pt.Coord("v")
		if math.Abs(v) > 1e-6 {
			t.Errorf("fixed point off the v=0 axis: v=%g", v)
		}
		for root := range want {
			if math.Abs(x-root) < 1e-6 {
				want[root] = true
			}
		}
	}
	for root, found := range want {
		if !found {
			t.Errorf("missing fixed point near x=%g", root)
		}
	}
}

func TestFindFixedPointsPinnedAxis(t *testing.T) {
	pts, err := FindFixedPoints(models.NewLinearSaddle(), FixedPointSearch{
		SubDomain: map[string]AxisSpec{
			"x": Over(-2, 2),
			"y": FixedAt(0.5),
		},
	})
	if err != nil {
		t.Fatalf("FindFixedPoints: %v", err)
	}
	if len(pts) != 1 {
		t.Fatalf("expected one root of the free subsystem, got %d", len(pts))
	}
	x, _ := pts[0].Coord("x")
	y, _ := pts[0].Coord("y")
	if math.Abs(x) > 1e-6 {
		t.Errorf("free coordinate not solved: x=%g", x)
	}
	if y != 0.5 {
		t.Errorf("pinned coordinate not echoed: y=%g", y)
	}
}

func TestFindFixedPointsSubdomainMustCoverVars(t *testing.T) {
	_, err := FindFixedPoints(models.NewLinearSaddle(), FixedPointSearch{
		SubDomain: map[string]AxisSpec{"x": Over(-1, 1)},
	})
	if err == nil {
		t.Fatal("expected an error for a partial subdomain")
	}
}

func TestLinspace(t *testing.T) {
	got := linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("linspace[%d] = %g, want %g", i, got[i], want[i])
		}
	}
	if one := linspace(3, 7, 1); len(one) != 1 || one[0] != 3 {
		t.Errorf("single-point linspace = %v", one)
	}
}

func TestBaseNCounter(t *testing.T) {
	c := newBaseNCounter(3, 2)
	seen := make(map[[2]int]bool)
	for i := 0; i < 9; i++ {
		seen[[2]int{c.At(0), c.At(1)}] = true
		c.Inc()
	}
	if len(seen) != 9 {
		t.Errorf("counter covered %d of 9 grid cells", len(seen))
	}
	// wrapped back to the start
	if c.At(0) != 0 || c.At(1) != 0 {
		t.Errorf("counter did not wrap: (%d, %d)", c.At(0), c.At(1))
	}
}
