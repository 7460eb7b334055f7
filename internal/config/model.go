package config

import (
	"fmt"
	"sort"
	"strings"
)

// Model is the unified representation of every configured run.
type Model struct {
	Runs map[string]*Run
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Runs: make(map[string]*Run)}
}

// Add registers r. Two runs with the same name are an error.
func (m *Model) Add(r *Run) error {
	if r.Name == "" {
		return fmt.Errorf("run name must not be empty")
	}
	if _, dup := m.Runs[r.Name]; dup {
		return fmt.Errorf("run %q is defined twice", r.Name)
	}
	m.Runs[r.Name] = r
	return nil
}

// Names returns the run names in sorted order.
func (m *Model) Names() []string {
	names := make([]string, 0, len(m.Runs))
	for n := range m.Runs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Select returns the run called name. An empty name selects the only run of
// a single-run model.
func (m *Model) Select(name string) (*Run, error) {
	if name == "" {
		if len(m.Runs) != 1 {
			return nil, fmt.Errorf("configuration defines %d runs (%s); choose one", len(m.Runs), strings.Join(m.Names(), ", "))
		}
		return m.Runs[m.Names()[0]], nil
	}
	r, ok := m.Runs[name]
	if !ok {
		return nil, fmt.Errorf("run %q is not defined; known runs: %s", name, strings.Join(m.Names(), ", "))
	}
	return r, nil
}
