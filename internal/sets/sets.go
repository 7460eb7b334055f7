// Package sets holds the named index domains of the model. A set is an
// ordered list of labels fixed at load time; everything else in the
// assembler refers to members by their ordinal position.
package sets

import (
	"fmt"
	"sort"
	"strings"
)

// Names of the model's index sets. They double as input file names.
const (
	Year          = "YEAR"
	Technology    = "TECHNOLOGY"
	TransportMode = "TRANSPORTMODE"
	Product       = "PRODUCT"
	Region        = "REGION"
	Location      = "LOCATION"
	Emission      = "EMISSION"
	Mode          = "MODE_OF_OPERATION"
)

// All lists every set the model declares, in declaration order.
var All = []string{Year, Technology, TransportMode, Product, Region, Location, Emission, Mode}

// DomainError reports a label that does not belong to a set, or a set
// definition that cannot be accepted.
type DomainError struct {
	Set    string
	Label  string
	Reason string
}

func (e *DomainError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("set %s: %s", e.Set, e.Reason)
	}
	return fmt.Sprintf("set %s: label %q: %s", e.Set, e.Label, e.Reason)
}

// Set is an immutable, ordered membership list.
type Set struct {
	name    string
	members []string
	index   map[string]int
}

// New builds a set. Labels must be unique, non-empty and free of the ';'
// separator used by textual tuple identifiers.
func New(name string, members []string) (*Set, error) {
	s := &Set{
		name:    name,
		members: make([]string, 0, len(members)),
		index:   make(map[string]int, len(members)),
	}
	for _, m := range members {
		if m == "" {
			return nil, &DomainError{Set: name, Reason: "empty label"}
		}
		if strings.ContainsRune(m, ';') {
			return nil, &DomainError{Set: name, Label: m, Reason: "label must not contain ';'"}
		}
		if _, dup := s.index[m]; dup {
			return nil, &DomainError{Set: name, Label: m, Reason: "duplicate label"}
		}
		s.index[m] = len(s.members)
		s.members = append(s.members, m)
	}
	return s, nil
}

// MustNew is New for fixtures and tests; it panics on invalid input.
func MustNew(name string, members ...string) *Set {
	s, err := New(name, members)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Set) Name() string { return s.name }

func (s *Set) Len() int { return len(s.members) }

// Member returns the label at ordinal i.
func (s *Set) Member(i int) string { return s.members[i] }

// Members returns a copy of the membership list.
func (s *Set) Members() []string {
	out := make([]string, len(s.members))
	copy(out, s.members)
	return out
}

// Pos returns the ordinal of label.
func (s *Set) Pos(label string) (int, bool) {
	i, ok := s.index[label]
	return i, ok
}

// Lookup is Pos with a DomainError for unknown labels.
func (s *Set) Lookup(label string) (int, error) {
	i, ok := s.index[label]
	if !ok {
		return 0, &DomainError{Set: s.name, Label: label, Reason: "not a member"}
	}
	return i, nil
}

// Registry maps set names to sets. It is filled during load and read-only
// afterwards.
type Registry struct {
	sets map[string]*Set
}

func NewRegistry() *Registry {
	return &Registry{sets: make(map[string]*Set)}
}

// Add registers s. Registering the same name twice is an error.
func (r *Registry) Add(s *Set) error {
	if _, exists := r.sets[s.name]; exists {
		return &DomainError{Set: s.name, Reason: "declared twice"}
	}
	r.sets[s.name] = s
	return nil
}

// Get returns the set called name.
func (r *Registry) Get(name string) (*Set, bool) {
	s, ok := r.sets[name]
	return s, ok
}

// MustGet returns the set called name and panics when it is missing. Only
// assembler code that runs after a successful load should use it.
func (r *Registry) MustGet(name string) *Set {
	s, ok := r.sets[name]
	if !ok {
		panic(fmt.Sprintf("sets: %s not loaded", name))
	}
	return s
}

// Names returns the registered set names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sets))
	for n := range r.sets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
