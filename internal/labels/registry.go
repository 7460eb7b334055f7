// Package labels owns the mapping between (family, tuple) pairs and the
// integer columns or rows the emitted linear system uses.
//
// Numbers are handed out sequentially in request order and never change once
// assigned, so two runs that declare the same families and request the same
// tuples in the same order produce the same numbering.
package labels

import (
	"errors"
	"fmt"
	"sync"

	"github.com/wupperinst/itom/internal/sets"
	"github.com/wupperinst/itom/internal/tupleid"
)

// ErrUnknownFamily is returned when a label is requested for a family that
// was never declared.
var ErrUnknownFamily = errors.New("labels: unknown family")

// DomainError reports a tuple that does not fit its family signature.
type DomainError struct {
	Family   string
	Tuple    Tuple
	Position int // -1 when the arity is wrong
	Reason   string
}

func (e *DomainError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("family %s: tuple %s: %s", e.Family, e.Tuple, e.Reason)
	}
	return fmt.Sprintf("family %s: tuple %s position %d: %s", e.Family, e.Tuple, e.Position, e.Reason)
}

// Entry is one assigned label.
type Entry struct {
	ID     int
	Family string
	Tuple  Tuple
}

type family struct {
	id      int
	name    string
	domains []*sets.Set
}

type key struct {
	family int
	tuple  Tuple
}

// Registry interns (family, tuple) pairs. It is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	families map[string]*family
	order    []*family
	ids      map[key]int
	entries  []Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		families: make(map[string]*family),
		ids:      make(map[key]int),
	}
}

// Declare creates a family over the given domains. Declaring an existing
// family again is allowed only with the same signature.
func (r *Registry) Declare(name string, domains ...*sets.Set) error {
	if len(domains) > MaxArity {
		return fmt.Errorf("family %s: arity %d exceeds %d", name, len(domains), MaxArity)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.families[name]; ok {
		if !sameSignature(existing.domains, domains) {
			return fmt.Errorf("family %s: redeclared with a different signature", name)
		}
		return nil
	}
	f := &family{id: len(r.order), name: name, domains: domains}
	r.families[name] = f
	r.order = append(r.order, f)
	return nil
}

func sameSignature(a, b []*sets.Set) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Label returns the number for (name, t), assigning the next free number on
// first request.
func (r *Registry) Label(name string, t Tuple) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.families[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownFamily, name)
	}
	if err := check(f, t); err != nil {
		return 0, err
	}
	k := key{family: f.id, tuple: t}
	if id, ok := r.ids[k]; ok {
		return id, nil
	}
	id := len(r.entries)
	r.ids[k] = id
	r.entries = append(r.entries, Entry{ID: id, Family: name, Tuple: t})
	return id, nil
}

// Lookup returns the number of an already labelled tuple.
func (r *Registry) Lookup(name string, t Tuple) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.families[name]
	if !ok {
		return 0, false
	}
	id, ok := r.ids[key{family: f.id, tuple: t}]
	return id, ok
}

func check(f *family, t Tuple) error {
	if t.Len() != len(f.domains) {
		return &DomainError{
			Family:   f.name,
			Tuple:    t,
			Position: -1,
			Reason:   fmt.Sprintf("arity %d, signature has %d", t.Len(), len(f.domains)),
		}
	}
	for i, d := range f.domains {
		if p := t.At(i); p < 0 || p >= d.Len() {
			return &DomainError{
				Family:   f.name,
				Tuple:    t,
				Position: i,
				Reason:   fmt.Sprintf("ordinal %d outside %s (%d members)", p, d.Name(), d.Len()),
			}
		}
	}
	return nil
}

// Len returns the number of assigned labels.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Entry returns the assigned label id.
func (r *Registry) Entry(id int) Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[id]
}

// Entries returns a copy of all assigned labels in id order.
func (r *Registry) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Signature returns the domains of a declared family.
func (r *Registry) Signature(name string) ([]*sets.Set, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.families[name]
	if !ok {
		return nil, false
	}
	return f.domains, true
}

// Families returns the declared family names in declaration order.
func (r *Registry) Families() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.order))
	for i, f := range r.order {
		names[i] = f.name
	}
	return names
}

// ID converts an entry into its textual identifier.
func (r *Registry) ID(e Entry) *tupleid.ID {
	domains, _ := r.Signature(e.Family)
	labels := make([]string, e.Tuple.Len())
	for i := range labels {
		labels[i] = domains[i].Member(e.Tuple.At(i))
	}
	return tupleid.New(e.Family, labels...)
}
