package phase

import (
	"errors"
	"math"
	"testing"
)

func sineSample(n int, dt float64) (times, vals []float64) {
	times = make([]float64, n)
	vals = make([]float64, n)
	for i := range times {
		times[i] = float64(i) * dt
		vals[i] = math.Sin(times[i])
	}
	return
}

func TestFindPeriodSine(t *testing.T) {
	times, vals := sineSample(3000, 0.01)
	period, err := FindPeriod(times, vals, 0, 1)
	if err != nil {
		t.Fatalf("FindPeriod: %v", err)
	}
	if math.Abs(period-2*math.Pi) > 0.02 {
		t.Errorf("period = %g, want ~%g", period, 2*math.Pi)
	}
}

func TestFindPeriodFallingEdge(t *testing.T) {
	times, vals := sineSample(3000, 0.01)
	period, err := FindPeriod(times, vals, 0.5, -1)
	if err != nil {
		t.Fatalf("FindPeriod: %v", err)
	}
	if math.Abs(period-2*math.Pi) > 0.02 {
		t.Errorf("period = %g, want ~%g", period, 2*math.Pi)
	}
}

func TestFindPeriodTooFewCrossings(t *testing.T) {
	times, vals := sineSample(300, 0.01) // under half a cycle
	if _, err := FindPeriod(times, vals, 0, 1); !errors.Is(err, ErrNoPeriod) {
		t.Errorf("expected ErrNoPeriod, got %v", err)
	}
}

func TestFindPeriodBadArgs(t *testing.T) {
	if _, err := FindPeriod([]float64{0, 1}, []float64{0}, 0, 1); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := FindPeriod([]float64{0}, []float64{0}, 0, 0); err == nil {
		t.Error("expected an error for direction 0")
	}
	if _, err := FindPeriod(nil, nil, 0, 1); !errors.Is(err, ErrNoPeriod) {
		t.Errorf("expected ErrNoPeriod for empty input, got %v", err)
	}
}
