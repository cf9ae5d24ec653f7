package phase

import (
	"math"
	"testing"

	"github.com/san-kum/phaseplane/internal/field"
)

func TestFilterFinite(t *testing.T) {
	pts := []field.State{
		{1, 2},
		{math.NaN(), 0},
		{3, math.Inf(1)},
		{-4, 5},
	}
	got := FilterFinite(pts)
	if len(got) != 2 {
		t.Fatalf("kept %d points, want 2", len(got))
	}
	if got[0][0] != 1 || got[1][0] != -4 {
		t.Errorf("wrong points kept: %v", got)
	}
}

func TestCropAndInBounds(t *testing.T) {
	xiv := field.Interval{Lo: -1, Hi: 1}
	yiv := field.Interval{Lo: 0, Hi: 2}
	pts := []field.State{{0, 1}, {2, 1}, {0.5, 3}, {-1, 0}}
	got := Crop(pts, xiv, yiv)
	if len(got) != 2 {
		t.Fatalf("kept %d points, want 2", len(got))
	}
	if InBounds(pts, xiv, yiv) {
		t.Error("InBounds must reject a set with outliers")
	}
	if !InBounds(got, xiv, yiv) {
		t.Error("cropped set must be in bounds")
	}
}

func TestFilterClose(t *testing.T) {
	pts := []field.State{
		{0, 0},
		{0, 1e-9}, // duplicate of the first
		{1, 0},
		{1 + 1e-9, 0}, // duplicate of the third
		{2, 2},
	}
	got := FilterClose(pts, 1e-6, 2)
	if len(got) != 3 {
		t.Fatalf("kept %d points, want 3", len(got))
	}
	// first representative of each cluster survives
	if got[0][1] != 0 || got[1][0] != 1 || got[2][0] != 2 {
		t.Errorf("wrong representatives: %v", got)
	}
}
