package phase

import "fmt"

// FindPeriod estimates the period of an oscillating scalar sample by timing
// threshold crossings in the given direction (+1 counts increasing
// crossings, -1 decreasing). The sample must start on the "off" side of the
// threshold or the first partial swing is skipped. The estimate is the
// interval between the last two counted crossings; fewer than two yields
// ErrNoPeriod.
func FindPeriod(times, vals []float64, thresh float64, dir int) (float64, error) {
	if len(times) != len(vals) {
		return 0, fmt.Errorf("%w: %d times vs %d values", ErrDimensionMismatch, len(times), len(vals))
	}
	if dir != 1 && dir != -1 {
		return 0, fmt.Errorf("phase: crossing direction must be 1 or -1, got %d", dir)
	}
	if len(vals) == 0 {
		return 0, ErrNoPeriod
	}
	off := func(v float64) bool {
		if dir == 1 {
			return v < thresh
		}
		return v > thresh
	}

	var ts []float64
	wasOff := off(vals[0])
	for i, v := range vals {
		switch {
		case wasOff && !off(v):
			ts = append(ts, times[i])
			wasOff = false
		case !wasOff && off(v):
			wasOff = true
		}
	}
	if len(ts) < 2 {
		return 0, fmt.Errorf("%w: %d threshold crossings", ErrNoPeriod, len(ts))
	}
	return ts[len(ts)-1] - ts[len(ts)-2], nil
}
