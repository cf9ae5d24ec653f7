package config

// Presets are named analysis setups per model, keyed model -> preset.
var Presets = map[string]map[string]*Config{
	"saddle": {
		"basic": {
			Model: "saddle",
			Window: &WindowConfig{
				XMin: -2, XMax: 2, YMin: -2, YMax: 2,
			},
		},
	},
	"duffing": {
		"wells": {
			Model: "duffing",
			Nullclines: NullclineConfig{
				GridN: 20, MaxStep: 0.05, MaxPoints: 1000,
			},
			Manifolds: ManifoldConfig{
				Dx: 0.02, DxGamma: 0.2, DxPerp: 0.002, Tmax: 60,
				MaxLen: 8, MaxPoints: 1000, ShrinkFactor: 0.75,
			},
		},
		"undamped": {
			Model:  "duffing",
			Params: map[string]float64{"delta": 0},
		},
	},
	"pendulum": {
		"full": {
			Model: "pendulum",
			FixedPts: FixedPointConfig{
				GridN: 9, MaxSearch: 2000, Eps: 1e-8,
			},
		},
		"frictionless": {
			Model:  "pendulum",
			Params: map[string]float64{"damping": 0},
		},
	},
	"vanderpol": {
		"relaxation": {
			Model:  "vanderpol",
			Params: map[string]float64{"mu": 5},
			Window: &WindowConfig{
				XMin: -3, XMax: 3, YMin: -8, YMax: 8,
			},
		},
	},
	"fitzhugh-nagumo": {
		"excitable": {
			Model:  "fitzhugh-nagumo",
			Params: map[string]float64{"I": 0},
			Nullclines: NullclineConfig{
				GridN: 20, MaxStep: 0.02, MaxPoints: 2000,
			},
		},
		"oscillating": {
			Model:  "fitzhugh-nagumo",
			Params: map[string]float64{"I": 0.5},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
