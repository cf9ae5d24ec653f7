package store

import (
	"github.com/san-kum/phaseplane/internal/phase"
)

// Result is the serializable outcome of one phase-plane analysis run.
type Result struct {
	Model       string             `json:"model"`
	XVar        string             `json:"x_var"`
	YVar        string             `json:"y_var"`
	Params      map[string]float64 `json:"params,omitempty"`
	FixedPoints []FixedPointRecord `json:"fixed_points,omitempty"`
	Nullclines  []NullclineRecord  `json:"nullclines,omitempty"`
	Manifolds   []ManifoldRecord   `json:"manifolds,omitempty"`
}

type FixedPointRecord struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Class      string  `json:"class"`
	Stability  string  `json:"stability"`
	Degenerate bool    `json:"degenerate"`
	// Eigenvalues as (re, im) pairs; order carries no meaning.
	Eigenvalues [2][2]float64 `json:"eigenvalues"`
}

type NullclineRecord struct {
	Var     string       `json:"var"`
	Ordered bool         `json:"ordered"`
	Points  [][2]float64 `json:"points"`
}

type ManifoldRecord struct {
	Kind       string       `json:"kind"`
	Arclengths []float64    `json:"arclengths"`
	Points     [][2]float64 `json:"points"`
}

// RecordFixedPoint flattens a classified equilibrium.
func RecordFixedPoint(fp *phase.FixedPoint) FixedPointRecord {
	rec := FixedPointRecord{
		X:          fp.Point.At(0),
		Y:          fp.Point.At(1),
		Class:      fp.Class.String(),
		Stability:  fp.Stability.String(),
		Degenerate: fp.Degenerate,
	}
	for i, ev := range fp.Eigenvalues {
		rec.Eigenvalues[i] = [2]float64{real(ev), imag(ev)}
	}
	return rec
}

// RecordNullcline flattens a nullcline.
func RecordNullcline(n *phase.Nullcline) NullclineRecord {
	rec := NullclineRecord{Var: n.Var, Ordered: n.Ordered}
	rec.Points = make([][2]float64, len(n.Points))
	for i, pt := range n.Points {
		rec.Points[i] = [2]float64{pt[0], pt[1]}
	}
	return rec
}

// RecordBranch flattens a saddle manifold branch.
func RecordBranch(b *phase.Branch) ManifoldRecord {
	rec := ManifoldRecord{
		Kind:       b.Kind.String(),
		Arclengths: b.Arclengths,
	}
	rec.Points = make([][2]float64, len(b.Points))
	for i, pt := range b.Points {
		rec.Points[i] = [2]float64{pt[0], pt[1]}
	}
	return rec
}
