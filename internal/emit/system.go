package emit

import (
	"context"
	"fmt"

	"github.com/wupperinst/itom/internal/ctxlog"
	"github.com/wupperinst/itom/internal/equation"
	"github.com/wupperinst/itom/internal/labels"
	"github.com/wupperinst/itom/internal/linear"
	"github.com/wupperinst/itom/internal/sets"
	"github.com/wupperinst/itom/internal/variable"
)

// Coef is one nonzero of a row or of the objective.
type Coef struct {
	Col int
	Val float64
}

// Row is a numbered constraint.
type Row struct {
	Coefs []Coef
	Sense linear.Sense
	RHS   float64
}

// System is the complete linear model: minimize Objective subject to Rows,
// every column bounded by its variable domain.
type System struct {
	Objective   []Coef
	Rows        []Row
	Variables   *variable.Registry
	Constraints *labels.Registry
}

// NumCols returns the number of materialized columns.
func (s *System) NumCols() int { return s.Variables.Len() }

// NumRows returns the number of rows.
func (s *System) NumRows() int { return len(s.Rows) }

// Nonzeros counts the constraint matrix entries.
func (s *System) Nonzeros() int {
	n := 0
	for _, r := range s.Rows {
		n += len(r.Coefs)
	}
	return n
}

// Domain returns the bound class of a column.
func (s *System) Domain(col int) variable.Domain { return s.Variables.Domain(col) }

// ColumnID returns the textual identity of a column, e.g. NewCapacity(R1;BF;2020).
func (s *System) ColumnID(col int) string {
	return s.Variables.Labels().ID(s.Variables.Entry(col)).String()
}

// RowID returns the textual identity of a row.
func (s *System) RowID(row int) string {
	return s.Constraints.ID(s.Constraints.Entry(row)).String()
}

const cancelCheckEvery = 8192

// Build numbers the objective variables first and then every record in
// order. vars must be a fresh registry: its columns are assigned here.
// Each row is interned under its family so that a (family, index) pair can
// occur at most once.
func Build(ctx context.Context, s *sets.Registry, families []equation.Family, records []linear.Record, obj linear.Objective, vars *variable.Registry) (*System, error) {
	logger := ctxlog.FromContext(ctx)
	if vars.Len() != 0 {
		panic("emit: variable registry already has columns")
	}

	constraints := labels.NewRegistry()
	for _, f := range families {
		domains := make([]*sets.Set, len(f.Signature))
		for i, name := range f.Signature {
			set, ok := s.Get(name)
			if !ok {
				return nil, fmt.Errorf("constraint family %s: set %s not loaded", f.Name, name)
			}
			domains[i] = set
		}
		if err := constraints.Declare(f.Name, domains...); err != nil {
			return nil, fmt.Errorf("declaring constraint family %s: %w", f.Name, err)
		}
	}

	sys := &System{
		Objective:   make([]Coef, 0, len(obj.Terms)),
		Rows:        make([]Row, 0, len(records)),
		Variables:   vars,
		Constraints: constraints,
	}

	for _, term := range obj.Terms {
		col, err := vars.Column(term.Ref.Var, term.Ref.Tuple)
		if err != nil {
			return nil, fmt.Errorf("objective term %s%s: %w", term.Ref.Var, term.Ref.Tuple, err)
		}
		sys.Objective = append(sys.Objective, Coef{Col: col, Val: term.Coef})
	}

	for i, rec := range records {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		id, err := constraints.Label(rec.Family, rec.Index)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if id != len(sys.Rows) {
			return nil, fmt.Errorf("row %s%s emitted twice", rec.Family, rec.Index)
		}
		if len(rec.Terms) == 0 {
			return nil, fmt.Errorf("row %s%s has no terms", rec.Family, rec.Index)
		}
		row := Row{Coefs: make([]Coef, len(rec.Terms)), Sense: rec.Sense, RHS: rec.RHS}
		for j, term := range rec.Terms {
			col, err := vars.Column(term.Ref.Var, term.Ref.Tuple)
			if err != nil {
				return nil, fmt.Errorf("row %s%s term %s%s: %w", rec.Family, rec.Index, term.Ref.Var, term.Ref.Tuple, err)
			}
			row.Coefs[j] = Coef{Col: col, Val: term.Coef}
		}
		sys.Rows = append(sys.Rows, row)
	}

	logger.Info("Linear system built.", "rows", sys.NumRows(), "columns", sys.NumCols(), "nonzeros", sys.Nonzeros())
	return sys, nil
}
