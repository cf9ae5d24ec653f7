package field

import "math"

// State is a flat vector of coordinate values.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Norm returns the p-norm of s for a positive integer order.
// Orders below 1 fall back to the Euclidean norm.
func (s State) Norm(ord int) float64 {
	if ord < 1 {
		ord = 2
	}
	switch ord {
	case 1:
		sum := 0.0
		for _, v := range s {
			sum += math.Abs(v)
		}
		return sum
	case 2:
		sum := 0.0
		for _, v := range s {
			sum += v * v
		}
		return math.Sqrt(sum)
	default:
		sum := 0.0
		for _, v := range s {
			sum += math.Pow(math.Abs(v), float64(ord))
		}
		return math.Pow(sum, 1/float64(ord))
	}
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

// Unit returns s scaled to unit length under the given norm order.
// The zero vector is returned unchanged.
func (s State) Unit(ord int) State {
	n := s.Norm(ord)
	if n == 0 {
		return s.Clone()
	}
	return s.Scale(1 / n)
}

// Perp returns the clockwise perpendicular of a 2D vector.
func Perp(v State) State {
	return State{v[1], -v[0]}
}

// Params maps parameter names to values.
type Params map[string]float64

func (p Params) Clone() Params {
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// Matrix is a dense row-major matrix, used for Jacobians.
type Matrix [][]float64

func NewMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

// Submatrix selects the given row/column indices, in order.
func (m Matrix) Submatrix(ixs []int) Matrix {
	out := NewMatrix(len(ixs), len(ixs))
	for i, ri := range ixs {
		for j, ci := range ixs {
			out[i][j] = m[ri][ci]
		}
	}
	return out
}

// Interval is a closed range of one coordinate.
type Interval struct {
	Lo, Hi float64
}

func (iv Interval) Finite() bool {
	return !math.IsInf(iv.Lo, 0) && !math.IsInf(iv.Hi, 0) &&
		!math.IsNaN(iv.Lo) && !math.IsNaN(iv.Hi)
}

func (iv Interval) Width() float64 {
	return math.Abs(iv.Hi - iv.Lo)
}

func (iv Interval) Contains(v float64) bool {
	return v >= iv.Lo && v <= iv.Hi
}

// Expand widens the interval by frac of its width on each side.
func (iv Interval) Expand(frac float64) Interval {
	w := iv.Width()
	return Interval{Lo: iv.Lo - frac*w, Hi: iv.Hi + frac*w}
}

// Clamp returns v limited to the interval.
func (iv Interval) Clamp(v float64) float64 {
	if v < iv.Lo {
		return iv.Lo
	}
	if v > iv.Hi {
		return iv.Hi
	}
	return v
}

func (iv Interval) Mid() float64 {
	return (iv.Lo + iv.Hi) / 2
}
