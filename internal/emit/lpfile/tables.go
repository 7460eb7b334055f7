package lpfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wupperinst/itom/internal/emit"
	"github.com/wupperinst/itom/internal/emit/symbolic"
	"github.com/wupperinst/itom/internal/labels"
)

// Table file names written next to the LP file.
const (
	VariablesFile           = "variables.txt"
	VariablesOverviewFile   = "variables_overview.txt"
	ConstraintsFile         = "constraints.txt"
	ConstraintsOverviewFile = "constraints_overview.txt"
)

// WriteTables writes the four decoding tables of sys into dir.
func WriteTables(dir string, sys *emit.System) error {
	cols := sys.Variables.Labels()
	if err := writeCSV(filepath.Join(dir, VariablesFile), idRows("x", "var_name", "var_index", cols, symbolic.ColName)); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, VariablesOverviewFile), overviewRows("var_name", cols)); err != nil {
		return err
	}
	rows := sys.Constraints
	if err := writeCSV(filepath.Join(dir, ConstraintsFile), idRows("c", "con_name", "con_index", rows, symbolic.RowName)); err != nil {
		return err
	}
	return writeCSV(filepath.Join(dir, ConstraintsOverviewFile), overviewRows("con_name", rows))
}

func idRows(key, name, index string, reg *labels.Registry, short func(int) string) [][]string {
	entries := reg.Entries()
	out := make([][]string, 0, len(entries)+1)
	out = append(out, []string{key, name, index})
	for _, e := range entries {
		id := reg.ID(e)
		out = append(out, []string{short(e.ID), id.Family, id.Index()})
	}
	return out
}

func overviewRows(name string, reg *labels.Registry) [][]string {
	out := [][]string{{name, "index_length", "index_sets"}}
	for _, family := range reg.Families() {
		domains, _ := reg.Signature(family)
		setNames := make([]string, len(domains))
		for i, d := range domains {
			setNames[i] = d.Name()
		}
		out = append(out, []string{family, strconv.Itoa(len(domains)), strings.Join(setNames, ";")})
	}
	return out
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
