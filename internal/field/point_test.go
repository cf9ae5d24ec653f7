package field

import (
	"math"
	"testing"
)

func TestPointFromSortsNames(t *testing.T) {
	p := PointFrom(map[string]float64{"y": 2, "x": 1}, 2)
	names := p.Names()
	if names[0] != "x" || names[1] != "y" {
		t.Errorf("names = %v, want alphabetical", names)
	}
	if p.At(0) != 1 || p.At(1) != 2 {
		t.Errorf("values misaligned: (%g, %g)", p.At(0), p.At(1))
	}
}

func TestPointCoord(t *testing.T) {
	p := NewPoint([]string{"a", "b"}, []float64{1.5, -2}, 2)
	if v, ok := p.Coord("b"); !ok || v != -2 {
		t.Errorf("Coord(b) = %g, %v", v, ok)
	}
	if _, ok := p.Coord("c"); ok {
		t.Error("unknown coordinate found")
	}
}

func TestPointWithDoesNotMutate(t *testing.T) {
	p := NewPoint([]string{"x", "y"}, []float64{1, 2}, 2)
	q := p.With("y", 9)
	if v, _ := q.Coord("y"); v != 9 {
		t.Errorf("With did not replace: %g", v)
	}
	if v, _ := p.Coord("y"); v != 2 {
		t.Error("With mutated the receiver")
	}
	r := p.With("z", 7)
	if v, ok := r.Coord("z"); !ok || v != 7 {
		t.Error("With did not append a new coordinate")
	}
}

func TestPointSelect(t *testing.T) {
	p := NewPoint([]string{"x", "y", "z"}, []float64{1, 2, 3}, 2)
	sub, err := p.Select([]string{"z", "x"})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if sub.Len() != 2 || sub.At(0) != 3 || sub.At(1) != 1 {
		t.Errorf("Select = %v", sub.State())
	}
	if _, err := p.Select([]string{"w"}); err == nil {
		t.Error("expected an error for an unknown name")
	}
}

func TestPointDist(t *testing.T) {
	p := NewPoint([]string{"x", "y"}, []float64{0, 0}, 2)
	q := NewPoint([]string{"x", "y"}, []float64{3, 4}, 2)
	if d := p.Dist(q); math.Abs(d-5) > 1e-12 {
		t.Errorf("Dist = %g, want 5", d)
	}
	p1 := NewPoint([]string{"x", "y"}, []float64{0, 0}, 1)
	if d := p1.Dist(q); math.Abs(d-7) > 1e-12 {
		t.Errorf("1-norm Dist = %g, want 7", d)
	}
}

func TestPointTranslate(t *testing.T) {
	p := NewPoint([]string{"x", "y"}, []float64{1, 1}, 2)
	q := p.Translate(State{0.5, -1})
	if q.At(0) != 1.5 || q.At(1) != 0 {
		t.Errorf("Translate = %v", q.State())
	}
}

func TestPointString(t *testing.T) {
	p := NewPoint([]string{"x", "y"}, []float64{1, -2.5}, 2)
	if got := p.String(); got != "(x=1, y=-2.5)" {
		t.Errorf("String = %q", got)
	}
}
