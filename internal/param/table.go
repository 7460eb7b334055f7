package param

import (
	"fmt"
	"sort"

	"github.com/wupperinst/itom/internal/labels"
)

// Table is a sparse map from tuple to value. Lookups never fail: a tuple
// without an override resolves to the default.
type Table struct {
	spec   Spec
	def    float64
	values map[labels.Tuple]float64
}

// NewTable creates an empty table. Unbounded parameters default to sentinel.
func NewTable(spec Spec, sentinel float64) *Table {
	def := spec.Default
	if spec.Unbounded {
		def = sentinel
	}
	return &Table{spec: spec, def: def, values: make(map[labels.Tuple]float64)}
}

func (t *Table) Spec() Spec { return t.spec }

func (t *Table) Default() float64 { return t.def }

// Set stores an override. It is only called during load.
func (t *Table) Set(tu labels.Tuple, v float64) {
	if tu.Len() != len(t.spec.Signature) {
		panic(fmt.Sprintf("param %s: tuple arity %d, signature has %d", t.spec.Name, tu.Len(), len(t.spec.Signature)))
	}
	t.values[tu] = v
}

// At returns the value for tu.
func (t *Table) At(tu labels.Tuple) float64 {
	if v, ok := t.values[tu]; ok {
		return v
	}
	return t.def
}

// Get returns the value at the given member ordinals.
func (t *Table) Get(pos ...int) float64 {
	return t.At(labels.T(pos...))
}

// Is reports whether a 0/1 flag parameter is set at the given ordinals.
func (t *Table) Is(pos ...int) bool {
	return t.Get(pos...) == 1
}

// Len returns the number of overrides.
func (t *Table) Len() int { return len(t.values) }

// Override is one stored tuple and its value.
type Override struct {
	Tuple labels.Tuple
	Value float64
}

// Overrides returns all stored overrides in lexicographic tuple order.
func (t *Table) Overrides() []Override {
	out := make([]Override, 0, len(t.values))
	for tu, v := range t.values {
		out = append(out, Override{Tuple: tu, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tuple.Less(out[j].Tuple) })
	return out
}

// Store holds one table per declared parameter.
type Store struct {
	sentinel float64
	specs    []Spec
	tables   map[string]*Table
}

// NewStore creates empty tables for specs.
func NewStore(specs []Spec, sentinel float64) *Store {
	s := &Store{
		sentinel: sentinel,
		specs:    specs,
		tables:   make(map[string]*Table, len(specs)),
	}
	for _, spec := range specs {
		s.tables[spec.Name] = NewTable(spec, sentinel)
	}
	return s
}

// Sentinel returns the "no effective limit" value.
func (s *Store) Sentinel() float64 { return s.sentinel }

// Specs returns the declared parameters in declaration order.
func (s *Store) Specs() []Spec { return s.specs }

// Lookup returns the table for name.
func (s *Store) Lookup(name string) (*Table, bool) {
	t, ok := s.tables[name]
	return t, ok
}

// Table returns the table for name. Asking for an undeclared parameter is a
// programming error and panics.
func (s *Store) Table(name string) *Table {
	t, ok := s.tables[name]
	if !ok {
		panic(fmt.Sprintf("param: %s is not declared for this run", name))
	}
	return t
}
