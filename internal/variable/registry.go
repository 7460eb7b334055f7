package variable

import (
	"fmt"

	"github.com/wupperinst/itom/internal/labels"
	"github.com/wupperinst/itom/internal/sets"
)

// Registry binds the variable catalog of a run to its loaded sets and owns
// the column numbering.
type Registry struct {
	columns *labels.Registry
	specs   map[string]Spec
	order   []Spec
}

// NewRegistry declares every spec over the sets in s.
func NewRegistry(s *sets.Registry, specs []Spec) (*Registry, error) {
	reg := &Registry{
		columns: labels.NewRegistry(),
		specs:   make(map[string]Spec, len(specs)),
		order:   specs,
	}
	for _, spec := range specs {
		domains := make([]*sets.Set, len(spec.Signature))
		for i, name := range spec.Signature {
			set, ok := s.Get(name)
			if !ok {
				return nil, fmt.Errorf("variable %s: set %s not loaded", spec.Name, name)
			}
			domains[i] = set
		}
		if err := reg.columns.Declare(spec.Name, domains...); err != nil {
			return nil, fmt.Errorf("declaring variable %s: %w", spec.Name, err)
		}
		reg.specs[spec.Name] = spec
	}
	return reg, nil
}

// Spec returns the declaration of a family.
func (r *Registry) Spec(name string) (Spec, bool) {
	s, ok := r.specs[name]
	return s, ok
}

// Specs returns all declared families in declaration order.
func (r *Registry) Specs() []Spec { return r.order }

// Column returns the column for (name, t), assigning one on first use.
func (r *Registry) Column(name string, t labels.Tuple) (int, error) {
	return r.columns.Label(name, t)
}

// Len returns the number of materialized columns.
func (r *Registry) Len() int { return r.columns.Len() }

// Entry returns the family and tuple behind a column.
func (r *Registry) Entry(col int) labels.Entry { return r.columns.Entry(col) }

// Domain returns the domain of a materialized column.
func (r *Registry) Domain(col int) Domain {
	return r.specs[r.columns.Entry(col).Family].Domain
}

// Labels exposes the underlying label registry for decoding tables.
func (r *Registry) Labels() *labels.Registry { return r.columns }
