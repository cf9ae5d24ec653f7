package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func testResult() *Result {
	return &Result{
		Model: "duffing",
		XVar:  "x",
		YVar:  "v",
		Params: map[string]float64{
			"alpha": -1, "beta": 1, "delta": 0.2,
		},
		FixedPoints: []FixedPointRecord{
			{X: 0, Y: 0, Class: "saddle", Stability: "unstable",
				Eigenvalues: [2][2]float64{{0.905, 0}, {-1.105, 0}}},
			{X: 1, Y: 0, Class: "spiral", Stability: "stable",
				Eigenvalues: [2][2]float64{{-0.1, 1.41}, {-0.1, -1.41}}},
		},
		Nullclines: []NullclineRecord{
			{Var: "x", Ordered: true, Points: [][2]float64{{-1, 0}, {0, 0}, {1, 0}}},
		},
		Manifolds: []ManifoldRecord{
			{Kind: "stable", Arclengths: []float64{-0.01, 0.01},
				Points: [][2]float64{{-0.007, 0.007}, {0.007, -0.007}}},
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Model != "duffing" {
		t.Errorf("expected model 'duffing', got '%s'", meta.Model)
	}
	if len(meta.FixedPoints) != 2 {
		t.Errorf("expected 2 fixed points, got %d", len(meta.FixedPoints))
	}
	if meta.FixedPoints[0].Class != "saddle" {
		t.Errorf("expected saddle, got %s", meta.FixedPoints[0].Class)
	}
	if meta.Nullclines != 1 || meta.Manifolds != 1 {
		t.Errorf("expected 1 nullcline and 1 manifold, got %d/%d",
			meta.Nullclines, meta.Manifolds)
	}

	nulls, err := st.LoadNullclines(runID)
	if err != nil {
		t.Fatalf("load nullclines failed: %v", err)
	}
	if len(nulls["x"]) != 3 {
		t.Errorf("expected 3 x-nullcline points, got %d", len(nulls["x"]))
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(testResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "nullclines.csv", "manifolds.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ExportJSON(path, testResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Model != "duffing" || len(res.Manifolds) != 1 {
		t.Errorf("round trip mismatch: %+v", res)
	}
}
