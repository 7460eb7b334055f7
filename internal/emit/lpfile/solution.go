package lpfile

import (
	"math"

	"github.com/wupperinst/itom/internal/emit/symbolic"
)

// SolutionSuffix is appended to the run name for the solved values file.
const SolutionSuffix = "_variables.csv"

// WriteSolution writes the columns whose value is farther than tol from zero
// as x,value rows in column order.
func WriteSolution(path string, values []float64, tol float64) error {
	rows := [][]string{{"x", "value"}}
	for col, v := range values {
		if math.Abs(v) <= tol {
			continue
		}
		rows = append(rows, []string{symbolic.ColName(col), formatFloat(v)})
	}
	return writeCSV(path, rows)
}
