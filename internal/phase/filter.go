package phase

import (
	"github.com/san-kum/phaseplane/internal/field"
)

// FilterFinite drops points containing NaN or infinite coordinates.
func FilterFinite(pts []field.State) []field.State {
	out := make([]field.State, 0, len(pts))
	for _, p := range pts {
		if p.IsValid() {
			out = append(out, p)
		}
	}
	return out
}

// Crop keeps only 2D points inside the given x and y intervals.
func Crop(pts []field.State, xiv, yiv field.Interval) []field.State {
	out := make([]field.State, 0, len(pts))
	for _, p := range pts {
		if xiv.Contains(p[0]) && yiv.Contains(p[1]) {
			out = append(out, p)
		}
	}
	return out
}

// InBounds reports whether every 2D point lies inside both intervals.
func InBounds(pts []field.State, xiv, yiv field.Interval) bool {
	for _, p := range pts {
		if !xiv.Contains(p[0]) || !yiv.Contains(p[1]) {
			return false
		}
	}
	return true
}

// FilterClose removes points closer than eps to an earlier point, under
// the given norm order. The first representative of each cluster is kept.
func FilterClose(pts []field.State, eps float64, normOrd int) []field.State {
	removed := make([]bool, len(pts))
	for i, p := range pts {
		if removed[i] {
			continue
		}
		for j := i + 1; j < len(pts); j++ {
			if removed[j] {
				continue
			}
			if p.Sub(pts[j]).Norm(normOrd) < eps {
				removed[j] = true
			}
		}
	}
	out := make([]field.State, 0, len(pts))
	for i, p := range pts {
		if !removed[i] {
			out = append(out, p)
		}
	}
	return out
}
