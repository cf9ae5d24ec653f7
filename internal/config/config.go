package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGridN        = 5
	DefaultMaxSearch    = 1000
	DefaultEps          = 1e-8
	DefaultNullclineN   = 10
	DefaultMaxPoints    = 1000
	DefaultManifoldDx   = 0.01
	DefaultDxGamma      = 0.1
	DefaultDxPerp       = 0.001
	DefaultTmax         = 50.0
	DefaultMaxLen       = 5.0
	DefaultShrinkFactor = 0.75
)

type Config struct {
	Model      string             `yaml:"model"`
	XVar       string             `yaml:"x_var"`
	YVar       string             `yaml:"y_var"`
	Params     map[string]float64 `yaml:"params"`
	Window     *WindowConfig      `yaml:"window"`
	FixedPts   FixedPointConfig   `yaml:"fixed_points"`
	Nullclines NullclineConfig    `yaml:"nullclines"`
	Manifolds  ManifoldConfig     `yaml:"manifolds"`
}

// WindowConfig restricts analysis to a rectangle inside the model's domain.
// Nil means the full domain.
type WindowConfig struct {
	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	YMin float64 `yaml:"y_min"`
	YMax float64 `yaml:"y_max"`
}

type FixedPointConfig struct {
	GridN     int     `yaml:"grid_n"`
	MaxSearch int     `yaml:"max_search"`
	Eps       float64 `yaml:"eps"`
}

type NullclineConfig struct {
	GridN     int     `yaml:"grid_n"`
	MaxStep   float64 `yaml:"max_step"` // 0 disables continuation refinement
	MaxPoints int     `yaml:"max_points"`
}

type ManifoldConfig struct {
	Dx           float64 `yaml:"dx"`
	DxGamma      float64 `yaml:"dx_gamma"`
	DxPerp       float64 `yaml:"dx_perp"`
	Tmax         float64 `yaml:"tmax"`
	MaxLen       float64 `yaml:"max_len"`
	MaxPoints    int     `yaml:"max_points"`
	ShrinkFactor float64 `yaml:"shrink_factor"`
}

func DefaultConfig() *Config {
	return &Config{
		Model: "saddle",
		FixedPts: FixedPointConfig{
			GridN:     DefaultGridN,
			MaxSearch: DefaultMaxSearch,
			Eps:       DefaultEps,
		},
		Nullclines: NullclineConfig{
			GridN:     DefaultNullclineN,
			MaxPoints: DefaultMaxPoints,
		},
		Manifolds: ManifoldConfig{
			Dx:           DefaultManifoldDx,
			DxGamma:      DefaultDxGamma,
			DxPerp:       DefaultDxPerp,
			Tmax:         DefaultTmax,
			MaxLen:       DefaultMaxLen,
			MaxPoints:    DefaultMaxPoints,
			ShrinkFactor: DefaultShrinkFactor,
		},
	}
}

// FillDefaults replaces zero-valued tuning fields with the package
// defaults. Presets only spell out what they change.
func (c *Config) FillDefaults() {
	if c.FixedPts.GridN == 0 {
		c.FixedPts.GridN = DefaultGridN
	}
	if c.FixedPts.MaxSearch == 0 {
		c.FixedPts.MaxSearch = DefaultMaxSearch
	}
	if c.FixedPts.Eps == 0 {
		c.FixedPts.Eps = DefaultEps
	}
	if c.Nullclines.GridN == 0 {
		c.Nullclines.GridN = DefaultNullclineN
	}
	if c.Nullclines.MaxPoints == 0 {
		c.Nullclines.MaxPoints = DefaultMaxPoints
	}
	if c.Manifolds.Dx == 0 {
		c.Manifolds.Dx = DefaultManifoldDx
	}
	if c.Manifolds.DxGamma == 0 {
		c.Manifolds.DxGamma = DefaultDxGamma
	}
	if c.Manifolds.DxPerp == 0 {
		c.Manifolds.DxPerp = DefaultDxPerp
	}
	if c.Manifolds.Tmax == 0 {
		c.Manifolds.Tmax = DefaultTmax
	}
	if c.Manifolds.MaxLen == 0 {
		c.Manifolds.MaxLen = DefaultMaxLen
	}
	if c.Manifolds.MaxPoints == 0 {
		c.Manifolds.MaxPoints = DefaultMaxPoints
	}
	if c.Manifolds.ShrinkFactor == 0 {
		c.Manifolds.ShrinkFactor = DefaultShrinkFactor
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
