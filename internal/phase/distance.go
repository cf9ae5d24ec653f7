package phase

import "github.com/san-kum/phaseplane/internal/field"

// Distance is an optional distance to a point set. The zero value means
// "no candidate yet": comparisons against it are an explicit state, never a
// large-number sentinel.
type Distance struct {
	d     float64
	index int
	valid bool
}

// Valid reports whether a candidate was found.
func (d Distance) Valid() bool { return d.valid }

// Value returns the distance; only meaningful when Valid.
func (d Distance) Value() float64 { return d.d }

// Index returns the position of the nearest point in the searched set.
func (d Distance) Index() int { return d.index }

// Less reports whether v is an improvement over d, treating the invalid
// state as infinitely far.
func (d Distance) Less(v float64) bool {
	return !d.valid || v < d.d
}

// Nearest scans pts for the point closest to q under the given norm order.
// An empty set yields the invalid Distance.
func Nearest(q field.State, pts []field.State, normOrd int) Distance {
	var best Distance
	for i, p := range pts {
		v := q.Sub(p).Norm(normOrd)
		if best.Less(v) {
			best = Distance{d: v, index: i, valid: true}
		}
	}
	return best
}
