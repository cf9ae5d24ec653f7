package models

import (
	"fmt"

	"github.com/san-kum/phaseplane/internal/field"
)

// param returns the override from p when present, else the model default.
func param(p field.Params, name string, def float64) float64 {
	if p != nil {
		if v, ok := p[name]; ok {
			return v
		}
	}
	return def
}

func checkDim(x field.State, dim int) error {
	if len(x) != dim {
		return fmt.Errorf("models: state has %d components, want %d", len(x), dim)
	}
	return nil
}

func domainOf(doms map[string]field.Interval, name string) (field.Interval, error) {
	iv, ok := doms[name]
	if !ok {
		return field.Interval{}, fmt.Errorf("%w: %s", field.ErrUnknownVariable, name)
	}
	return iv, nil
}
