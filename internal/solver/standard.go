package solver

import (
	"math"

	"github.com/wupperinst/itom/internal/emit/symbolic"
)

// column maps one model column onto standard-form columns:
// x = shift + x[pos] - x[neg], with neg < 0 when there is no negative part.
type column struct {
	shift float64
	pos   int
	neg   int
}

// standardForm is min c.x subject to A x = b, x >= 0, with A stored row
// major and every row linearly independent.
type standardForm struct {
	cols    int
	a       []float64
	b       []float64
	c       []float64
	mapping []column

	infeasible bool
	unbounded  bool
}

func (sf *standardForm) recover(x []float64) []float64 {
	out := make([]float64, len(sf.mapping))
	for j, col := range sf.mapping {
		v := col.shift
		if col.pos >= 0 {
			v += x[col.pos]
		}
		if col.neg >= 0 {
			v -= x[col.neg]
		}
		out[j] = v
	}
	return out
}

// builder collects sparse rows of the standard form before densifying.
type builder struct {
	mapping []column
	costs   []float64
	rows    []map[int]float64
	rhs     []float64
}

func (bd *builder) newCol(cost float64) int {
	bd.costs = append(bd.costs, cost)
	return len(bd.costs) - 1
}

func (bd *builder) addRow(coefs map[int]float64, rhs float64) {
	bd.rows = append(bd.rows, coefs)
	bd.rhs = append(bd.rhs, rhs)
}

// limits returns lo and hi with every bound of magnitude at least infinity
// replaced by the matching infinity. Such bounds cannot bind, and keeping
// them leaves the phase one basis numerically singular.
func limits(lo, hi, infinity float64) (float64, float64) {
	if infinity <= 0 {
		return lo, hi
	}
	if lo <= -infinity {
		lo = math.Inf(-1)
	}
	if hi >= infinity {
		hi = math.Inf(1)
	}
	return lo, hi
}

func standardize(m *symbolic.Model, tol, infinity float64) (*standardForm, error) {
	bd := &builder{mapping: make([]column, m.NumCols())}

	// Columns: shift finite lower bounds to zero, split free columns, and
	// turn finite upper bounds into rows.
	var upperRows []int
	colUpper := make([]float64, m.NumCols())
	for j := 0; j < m.NumCols(); j++ {
		lo, hi := limits(m.ColLower[j], m.ColUpper[j], infinity)
		cost := m.ColCosts[j]
		colUpper[j] = hi
		switch {
		case !math.IsInf(lo, -1):
			bd.mapping[j] = column{shift: lo, pos: bd.newCol(cost), neg: -1}
			if !math.IsInf(hi, 1) {
				upperRows = append(upperRows, j)
			}
		case !math.IsInf(hi, 1):
			// x = hi - x', x' >= 0.
			bd.mapping[j] = column{shift: hi, pos: -1, neg: bd.newCol(-cost)}
		default:
			bd.mapping[j] = column{pos: bd.newCol(cost), neg: bd.newCol(-cost)}
		}
	}

	rowCoefs := make([]map[int]float64, m.NumRows())
	rowShift := make([]float64, m.NumRows())
	for i := range rowCoefs {
		rowCoefs[i] = make(map[int]float64)
	}
	for _, nz := range m.Nonzeros {
		col := bd.mapping[nz.Col]
		rowShift[nz.Row] += nz.Val * col.shift
		if col.pos >= 0 {
			rowCoefs[nz.Row][col.pos] += nz.Val
		}
		if col.neg >= 0 {
			rowCoefs[nz.Row][col.neg] -= nz.Val
		}
	}

	for i := 0; i < m.NumRows(); i++ {
		rowLo, rowHi := limits(m.RowLower[i], m.RowUpper[i], infinity)
		lo, hi := rowLo-rowShift[i], rowHi-rowShift[i]
		loInf, hiInf := math.IsInf(rowLo, -1), math.IsInf(rowHi, 1)
		switch {
		case loInf && hiInf:
		case !loInf && !hiInf && rowLo == rowHi:
			bd.addRow(rowCoefs[i], lo)
		default:
			if !hiInf {
				coefs := clone(rowCoefs[i])
				coefs[bd.newCol(0)] = 1
				bd.addRow(coefs, hi)
			}
			if !loInf {
				coefs := clone(rowCoefs[i])
				coefs[bd.newCol(0)] = -1
				bd.addRow(coefs, lo)
			}
		}
	}
	for _, j := range upperRows {
		col := bd.mapping[j]
		bd.addRow(map[int]float64{col.pos: 1, bd.newCol(0): 1}, colUpper[j]-col.shift)
	}

	return bd.densify(tol), nil
}

func clone(in map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}

// densify drops linearly dependent rows and columns that appear in no row.
// A dependent row with an inconsistent right-hand side makes the system
// infeasible; an unused column with negative cost makes it unbounded.
func (bd *builder) densify(tol float64) *standardForm {
	n := len(bd.costs)
	sf := &standardForm{mapping: bd.mapping}

	var basis [][]float64 // reduced rows, each with a pivot
	var pivots []int
	var kept []int
	for i, coefs := range bd.rows {
		row := make([]float64, n+1)
		for k, v := range coefs {
			row[k] = v
		}
		row[n] = bd.rhs[i]
		for bi, br := range basis {
			p := pivots[bi]
			if f := row[p]; f != 0 {
				for k := range row {
					row[k] -= f * br[k]
				}
			}
		}
		p, largest := -1, tol
		for k := 0; k < n; k++ {
			if a := math.Abs(row[k]); a > largest {
				p, largest = k, a
			}
		}
		if p < 0 {
			if math.Abs(row[n]) > tol*math.Max(1, math.Abs(bd.rhs[i])) {
				sf.infeasible = true
				return sf
			}
			continue
		}
		scale := row[p]
		for k := range row {
			row[k] /= scale
		}
		basis = append(basis, row)
		pivots = append(pivots, p)
		kept = append(kept, i)
	}

	used := make([]bool, n)
	for _, i := range kept {
		for k, v := range bd.rows[i] {
			if v != 0 {
				used[k] = true
			}
		}
	}
	index := make([]int, n)
	for k := 0; k < n; k++ {
		index[k] = -1
		if used[k] {
			index[k] = sf.cols
			sf.cols++
			sf.c = append(sf.c, bd.costs[k])
		} else if bd.costs[k] < 0 {
			sf.unbounded = true
			return sf
		}
	}
	for j, col := range sf.mapping {
		sf.mapping[j] = column{shift: col.shift, pos: remap(index, col.pos), neg: remap(index, col.neg)}
	}

	sf.a = make([]float64, len(kept)*sf.cols)
	sf.b = make([]float64, len(kept))
	for r, i := range kept {
		// Simplex starts from a phase one that expects b >= 0.
		sign := 1.0
		if bd.rhs[i] < 0 {
			sign = -1
		}
		for k, v := range bd.rows[i] {
			if index[k] >= 0 {
				sf.a[r*sf.cols+index[k]] = sign * v
			}
		}
		sf.b[r] = sign * bd.rhs[i]
	}
	return sf
}

func remap(index []int, k int) int {
	if k < 0 {
		return -1
	}
	return index[k]
}
