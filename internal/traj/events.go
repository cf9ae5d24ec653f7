package traj

import "github.com/san-kum/phaseplane/internal/field"

// Event is a scalar zero-crossing surface monitored during integration.
// Only active events are tested; a terminal event halts the trajectory at
// the crossing. Activation is toggled by the owning tracer for the duration
// of one computation and restored afterwards.
type Event struct {
	Name     string
	Fn       func(t float64, x field.State) (float64, error)
	Dir      int // +1: negative-to-positive crossings, -1: opposite, 0: any
	Terminal bool
	Active   bool
}

// Occurrence records where an event surface was crossed.
type Occurrence struct {
	T float64
	X field.State
}

// matches reports whether the sign change prev -> cur satisfies the
// event's direction filter.
func (ev *Event) matches(prev, cur float64) bool {
	if prev == cur || prev*cur > 0 {
		return false
	}
	switch ev.Dir {
	case 1:
		return prev < cur
	case -1:
		return prev > cur
	default:
		return true
	}
}
