package models

import (
	"fmt"
	"sort"

	"github.com/san-kum/phaseplane/internal/field"
)

// Registry maps model names to constructors so the CLI and config layer can
// build fields by name.
type Registry struct {
	fields map[string]func() field.Field
}

func NewRegistry() *Registry {
	r := &Registry{fields: make(map[string]func() field.Field)}

	r.fields["saddle"] = func() field.Field { return NewLinearSaddle() }
	r.fields["vanderpol"] = func() field.Field { return NewVanDerPol() }
	r.fields["duffing"] = func() field.Field { return NewDuffing() }
	r.fields["pendulum"] = func() field.Field { return NewPendulum() }
	r.fields["fitzhugh-nagumo"] = func() field.Field { return NewFitzHughNagumo() }

	return r
}

// Get builds a fresh instance of the named model.
func (r *Registry) Get(name string) (field.Field, error) {
	fn, ok := r.fields[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

// List returns the registered model names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
