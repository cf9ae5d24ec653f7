package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/phaseplane/internal/store"
)

func sampleResult() *store.Result {
	return &store.Result{
		Model: "saddle",
		XVar:  "x",
		YVar:  "y",
		FixedPoints: []store.FixedPointRecord{
			{X: 0, Y: 0, Class: "saddle", Stability: "unstable"},
			{X: 1, Y: 0, Class: "node", Stability: "stable"},
		},
		Nullclines: []store.NullclineRecord{
			{Var: "x", Points: [][2]float64{{0, -1}, {0, 0}, {0, 1}}},
		},
		Manifolds: []store.ManifoldRecord{
			{Kind: "unstable", Points: [][2]float64{{-1, 0}, {1, 0}}},
		},
	}
}

func TestResultToSVG(t *testing.T) {
	svg := ResultToSVG(sampleResult(), 400, 300)
	if !strings.HasPrefix(svg, `<?xml`) {
		t.Error("missing XML header")
	}
	for _, want := range []string{"<svg", "</svg>", "<path", "<circle", "saddle: y vs x"} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	// one polyline per nullcline and manifold, plus the saddle cross
	if n := strings.Count(svg, "<path"); n != 3 {
		t.Errorf("%d path elements, want 3", n)
	}
}

func TestFixedPointMarkers(t *testing.T) {
	res := &store.Result{
		Model: "vanderpol",
		XVar:  "x",
		YVar:  "y",
		FixedPoints: []store.FixedPointRecord{
			{X: 0, Y: 0, Class: "saddle", Stability: "unstable"},
			{X: 1, Y: 1, Class: "node", Stability: "stable"},
			{X: -1, Y: -1, Class: "spiral", Stability: "unstable"},
		},
	}
	svg := ResultToSVG(res, 400, 300)
	if strings.Contains(svg, "%!") {
		t.Fatalf("malformed verb in output:\n%s", svg)
	}
	if !strings.Contains(svg, `r="4" fill="`+fpColor+`"`) {
		t.Error("stable point missing a filled circle marker")
	}
	if !strings.Contains(svg, `fill="none" stroke="`+fpColor+`"`) {
		t.Error("unstable non-saddle point missing an open circle marker")
	}
	for _, marker := range []string{"<circle", "cy=", "cx="} {
		if n := strings.Count(svg, marker); n != 2 {
			t.Errorf("%d %s occurrences, want 2", n, marker)
		}
	}
}

func TestResultToSVGEmpty(t *testing.T) {
	if svg := ResultToSVG(&store.Result{}, 400, 300); svg != "" {
		t.Error("empty result must render nothing")
	}
}

func TestWriteSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	if err := WriteSVG(path, sampleResult(), 400, 300); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "</svg>") {
		t.Error("written file is not a complete SVG")
	}
	if err := WriteSVG(filepath.Join(t.TempDir(), "empty.svg"), &store.Result{}, 400, 300); err == nil {
		t.Error("expected an error for an empty result")
	}
}
