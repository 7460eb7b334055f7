// Package solver is a reference LP solver for small models. It converts a
// symbolic model into equality standard form and hands it to gonum's simplex
// implementation. It is meant for tests and for checking small instances,
// not for production-sized systems.
package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/wupperinst/itom/internal/ctxlog"
	"github.com/wupperinst/itom/internal/emit/symbolic"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Status is the outcome of a solve.
type Status int

const (
	StatusOptimal Status = iota
	StatusInfeasible
	StatusUnbounded
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Solution holds column values in the model's column order. Objective and
// ColValues are only meaningful when Status is StatusOptimal.
type Solution struct {
	Status    Status
	Objective float64
	ColValues []float64
}

// Options bounds the size of models the dense reference solver accepts.
type Options struct {
	MaxColumns int
	Tolerance  float64
	// Infinity is the magnitude from which a bound counts as absent. Zero
	// means only infinite bounds are absent.
	Infinity float64
}

// DefaultOptions suits models with a few thousand columns whose "no limit"
// sentinel is 1e20.
func DefaultOptions() Options {
	return Options{MaxColumns: 4000, Tolerance: 1e-9, Infinity: 1e18}
}

// Solve minimizes m. An infeasible or unbounded model is reported through
// Solution.Status, not as an error.
func Solve(ctx context.Context, m *symbolic.Model, opts Options) (*Solution, error) {
	logger := ctxlog.FromContext(ctx)
	if m.NumCols() > opts.MaxColumns {
		return nil, fmt.Errorf("model has %d columns, the reference solver accepts at most %d", m.NumCols(), opts.MaxColumns)
	}

	sf, err := standardize(m, opts.Tolerance, opts.Infinity)
	if err != nil {
		return nil, err
	}
	if sf.infeasible {
		logger.Info("Model solved.", "status", StatusInfeasible)
		return &Solution{Status: StatusInfeasible}, nil
	}
	if sf.unbounded {
		logger.Info("Model solved.", "status", StatusUnbounded)
		return &Solution{Status: StatusUnbounded}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	x := make([]float64, sf.cols)
	if len(sf.b) > 0 {
		opt, err := simplex(sf, opts.Tolerance)
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			logger.Info("Model solved.", "status", StatusInfeasible)
			return &Solution{Status: StatusInfeasible}, nil
		case errors.Is(err, lp.ErrUnbounded):
			logger.Info("Model solved.", "status", StatusUnbounded)
			return &Solution{Status: StatusUnbounded}, nil
		case err != nil:
			return nil, fmt.Errorf("simplex failed: %w", err)
		}
		copy(x, opt)
	}

	sol := &Solution{Status: StatusOptimal, ColValues: sf.recover(x)}
	sol.Objective = m.Evaluate(sol.ColValues)
	logger.Info("Model solved.", "status", sol.Status, "objective", sol.Objective)
	return sol, nil
}

// simplex runs gonum's solver on sf. The solver panics on some degenerate
// inputs; those panics come back as errors.
func simplex(sf *standardForm, tol float64) (x []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			x, err = nil, fmt.Errorf("simplex panicked: %v", r)
		}
	}()
	A := mat.NewDense(len(sf.b), sf.cols, sf.a)
	_, x, err = lp.Simplex(sf.c, A, sf.b, tol, nil)
	return x, err
}
