package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "saddle" {
		t.Errorf("expected model saddle, got %s", cfg.Model)
	}
	if cfg.FixedPts.GridN <= 0 {
		t.Error("fixed point grid should be positive")
	}
	if cfg.Manifolds.Dx <= 0 {
		t.Error("manifold dx should be positive")
	}
	if cfg.Window != nil {
		t.Error("default window should be the full domain")
	}
}

func TestFillDefaults(t *testing.T) {
	cfg := &Config{Model: "duffing"}
	cfg.FillDefaults()

	if cfg.FixedPts.GridN != DefaultGridN {
		t.Errorf("grid_n = %d, want %d", cfg.FixedPts.GridN, DefaultGridN)
	}
	if cfg.Manifolds.ShrinkFactor != DefaultShrinkFactor {
		t.Errorf("shrink_factor = %g, want %g", cfg.Manifolds.ShrinkFactor, DefaultShrinkFactor)
	}
}

func TestFillDefaultsKeepsExplicit(t *testing.T) {
	cfg := &Config{FixedPts: FixedPointConfig{GridN: 9}}
	cfg.FillDefaults()

	if cfg.FixedPts.GridN != 9 {
		t.Errorf("explicit grid_n overwritten: got %d", cfg.FixedPts.GridN)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := DefaultConfig()
	cfg.Model = "pendulum"
	cfg.XVar = "theta"
	cfg.YVar = "omega"
	cfg.Params = map[string]float64{"damping": 0}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Model != "pendulum" || got.XVar != "theta" || got.YVar != "omega" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Params["damping"] != 0 {
		t.Errorf("params not preserved: %v", got.Params)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("duffing", "wells")
	if cfg == nil {
		t.Fatal("expected duffing/wells preset")
	}
	if cfg.Model != "duffing" {
		t.Errorf("preset model = %s", cfg.Model)
	}
	if GetPreset("duffing", "nope") != nil {
		t.Error("unknown preset should be nil")
	}
	if GetPreset("nope", "wells") != nil {
		t.Error("unknown model should be nil")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets("pendulum")
	if len(names) == 0 {
		t.Fatal("expected pendulum presets")
	}
}
