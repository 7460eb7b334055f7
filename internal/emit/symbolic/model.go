// Package symbolic holds the in-memory sparse form of a linear system, laid
// out the way column-oriented LP solvers take their input.
package symbolic

import (
	"fmt"
	"math"

	"github.com/wupperinst/itom/internal/emit"
	"github.com/wupperinst/itom/internal/linear"
	"github.com/wupperinst/itom/internal/variable"
)

// Nonzero is one entry of the constraint matrix.
type Nonzero struct {
	Row int
	Col int
	Val float64
}

// Model is a minimization problem. Infinite bounds are math.Inf.
type Model struct {
	ColCosts []float64
	ColLower []float64
	ColUpper []float64
	RowLower []float64
	RowUpper []float64
	Nonzeros []Nonzero
	ColNames []string
	RowNames []string
}

// ColName and RowName are the short names shared with the LP text format.
func ColName(col int) string { return fmt.Sprintf("x%d", col) }

func RowName(row int) string { return fmt.Sprintf("c%d", row) }

// DomainBounds returns the column bounds of a variable domain.
func DomainBounds(d variable.Domain) (lower, upper float64) {
	if d == variable.Reals {
		return math.Inf(-1), math.Inf(1)
	}
	return 0, math.Inf(1)
}

// SenseBounds returns the row bounds of sense with right-hand side rhs.
func SenseBounds(s linear.Sense, rhs float64) (lower, upper float64) {
	switch s {
	case linear.LE:
		return math.Inf(-1), rhs
	case linear.GE:
		return rhs, math.Inf(1)
	}
	return rhs, rhs
}

// FromSystem lays out sys. Nonzeros are in row order and, within a row, in
// term order.
func FromSystem(sys *emit.System) *Model {
	nc, nr := sys.NumCols(), sys.NumRows()
	m := &Model{
		ColCosts: make([]float64, nc),
		ColLower: make([]float64, nc),
		ColUpper: make([]float64, nc),
		RowLower: make([]float64, nr),
		RowUpper: make([]float64, nr),
		Nonzeros: make([]Nonzero, 0, sys.Nonzeros()),
		ColNames: make([]string, nc),
		RowNames: make([]string, nr),
	}
	for col := 0; col < nc; col++ {
		m.ColLower[col], m.ColUpper[col] = DomainBounds(sys.Domain(col))
		m.ColNames[col] = ColName(col)
	}
	for _, c := range sys.Objective {
		m.ColCosts[c.Col] += c.Val
	}
	for i, row := range sys.Rows {
		m.RowLower[i], m.RowUpper[i] = SenseBounds(row.Sense, row.RHS)
		m.RowNames[i] = RowName(i)
		for _, c := range row.Coefs {
			m.Nonzeros = append(m.Nonzeros, Nonzero{Row: i, Col: c.Col, Val: c.Val})
		}
	}
	return m
}

// NumCols returns the number of columns.
func (m *Model) NumCols() int { return len(m.ColCosts) }

// NumRows returns the number of rows.
func (m *Model) NumRows() int { return len(m.RowLower) }

// Evaluate returns the objective value at x.
func (m *Model) Evaluate(x []float64) float64 {
	var sum float64
	for j, c := range m.ColCosts {
		sum += c * x[j]
	}
	return sum
}

// Violation returns the largest bound or row violation at x.
func (m *Model) Violation(x []float64) float64 {
	var worst float64
	for j, v := range x {
		worst = math.Max(worst, math.Max(m.ColLower[j]-v, v-m.ColUpper[j]))
	}
	activity := make([]float64, m.NumRows())
	for _, nz := range m.Nonzeros {
		activity[nz.Row] += nz.Val * x[nz.Col]
	}
	for i, a := range activity {
		worst = math.Max(worst, math.Max(m.RowLower[i]-a, a-m.RowUpper[i]))
	}
	return worst
}
