package field

import (
	"fmt"
	"sort"
	"strings"
)

// Point is an ordered mapping from coordinate names to values, tagged with
// the norm order used for distance comparisons. Points are value types:
// methods never mutate the receiver.
type Point struct {
	names   []string
	values  State
	normOrd int
}

// NewPoint copies its inputs. A non-positive norm order defaults to 2.
func NewPoint(names []string, values []float64, normOrd int) Point {
	if normOrd < 1 {
		normOrd = 2
	}
	p := Point{
		names:   make([]string, len(names)),
		values:  make(State, len(values)),
		normOrd: normOrd,
	}
	copy(p.names, names)
	copy(p.values, values)
	return p
}

// PointFrom builds a Point from a name/value mapping with names sorted
// alphabetically, matching the ordering used for sub-system coordinates.
func PointFrom(coords map[string]float64, normOrd int) Point {
	names := make([]string, 0, len(coords))
	for k := range coords {
		names = append(names, k)
	}
	sort.Strings(names)
	values := make([]float64, len(names))
	for i, k := range names {
		values[i] = coords[k]
	}
	return NewPoint(names, values, normOrd)
}

func (p Point) Len() int     { return len(p.values) }
func (p Point) NormOrd() int { return p.normOrd }

func (p Point) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// State returns a copy of the coordinate values in declaration order.
func (p Point) State() State {
	return p.values.Clone()
}

func (p Point) At(i int) float64 { return p.values[i] }

func (p Point) Coord(name string) (float64, bool) {
	for i, n := range p.names {
		if n == name {
			return p.values[i], true
		}
	}
	return 0, false
}

// With returns a copy of p with one coordinate replaced, appending the
// coordinate if p does not carry it.
func (p Point) With(name string, v float64) Point {
	q := NewPoint(p.names, p.values, p.normOrd)
	for i, n := range q.names {
		if n == name {
			q.values[i] = v
			return q
		}
	}
	q.names = append(q.names, name)
	q.values = append(q.values, v)
	return q
}

// Translate returns p moved by the vector dx (in declaration order).
func (p Point) Translate(dx State) Point {
	return NewPoint(p.names, p.values.Add(dx), p.normOrd)
}

// Sub returns the displacement vector p - q over p's coordinates.
func (p Point) Sub(q Point) State {
	out := make(State, len(p.values))
	for i, n := range p.names {
		qv, _ := q.Coord(n)
		out[i] = p.values[i] - qv
	}
	return out
}

// Dist is the distance from p to q under p's norm order.
func (p Point) Dist(q Point) float64 {
	return p.Sub(q).Norm(p.normOrd)
}

// Select returns the sub-point over the given coordinate names, in the
// order given.
func (p Point) Select(names []string) (Point, error) {
	values := make([]float64, len(names))
	for i, n := range names {
		v, ok := p.Coord(n)
		if !ok {
			return Point{}, fmt.Errorf("%w: %s", ErrUnknownVariable, n)
		}
		values[i] = v
	}
	return NewPoint(names, values, p.normOrd), nil
}

func (p Point) String() string {
	parts := make([]string, len(p.names))
	for i, n := range p.names {
		parts[i] = fmt.Sprintf("%s=%.6g", n, p.values[i])
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
