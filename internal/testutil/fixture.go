package testutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wupperinst/itom/internal/capability"
	"github.com/wupperinst/itom/internal/labels"
	"github.com/wupperinst/itom/internal/param"
	"github.com/wupperinst/itom/internal/sets"
)

type entry struct {
	name   string
	labels []string
	value  float64
}

// Fixture describes a small model by set labels. Sets that are never given
// members are declared empty.
type Fixture struct {
	t        testing.TB
	Caps     capability.Set
	Sentinel float64
	members  map[string][]string
	entries  []entry
}

// NewFixture starts an empty model for a run with caps.
func NewFixture(t testing.TB, caps capability.Set) *Fixture {
	return &Fixture{t: t, Caps: caps, Sentinel: 1e20, members: make(map[string][]string)}
}

// Set declares the members of a set.
func (f *Fixture) Set(name string, members ...string) *Fixture {
	f.members[name] = members
	return f
}

// Param overrides one parameter value. Labels follow the parameter signature.
func (f *Fixture) Param(name string, value float64, labels ...string) *Fixture {
	f.entries = append(f.entries, entry{name: name, labels: labels, value: value})
	return f
}

// Build resolves every label and returns the loaded sets and parameters.
func (f *Fixture) Build() (*sets.Registry, *param.Store) {
	f.t.Helper()
	reg := sets.NewRegistry()
	for _, name := range sets.All {
		s, err := sets.New(name, f.members[name])
		require.NoError(f.t, err)
		require.NoError(f.t, reg.Add(s))
	}

	store := param.NewStore(param.Catalog(f.Caps), f.Sentinel)
	for _, e := range f.entries {
		tbl, ok := store.Lookup(e.name)
		require.True(f.t, ok, "parameter %s is not declared for %s", e.name, f.Caps)
		sig := tbl.Spec().Signature
		require.Len(f.t, e.labels, len(sig), "parameter %s labels", e.name)
		pos := make([]int, len(sig))
		for i, setName := range sig {
			p, err := reg.MustGet(setName).Lookup(e.labels[i])
			require.NoError(f.t, err, "parameter %s", e.name)
			pos[i] = p
		}
		tbl.Set(labels.T(pos...), e.value)
	}
	return reg, store
}

// WriteCSV writes the fixture as an input directory: one file per set and
// one per parameter that has overrides.
func (f *Fixture) WriteCSV(dir string) {
	f.t.Helper()
	require.NoError(f.t, os.MkdirAll(dir, 0o755))
	for _, name := range sets.All {
		rows := [][]string{{"VALUE"}}
		for _, m := range f.members[name] {
			rows = append(rows, []string{m})
		}
		writeCSV(f.t, filepath.Join(dir, name+".csv"), rows)
	}

	byName := make(map[string][][]string)
	var order []string
	for _, e := range f.entries {
		if _, ok := byName[e.name]; !ok {
			header := make([]string, 0, len(e.labels)+1)
			for i := range e.labels {
				header = append(header, fmt.Sprintf("INDEX%d", i+1))
			}
			byName[e.name] = [][]string{append(header, "VALUE")}
			order = append(order, e.name)
		}
		row := append(append([]string{}, e.labels...), strconv.FormatFloat(e.value, 'g', -1, 64))
		byName[e.name] = append(byName[e.name], row)
	}
	for _, name := range order {
		writeCSV(f.t, filepath.Join(dir, name+".csv"), byName[name])
	}
}

func writeCSV(t testing.TB, path string, rows [][]string) {
	t.Helper()
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	w := csv.NewWriter(file)
	require.NoError(t, w.WriteAll(rows))
}
