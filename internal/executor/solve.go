package executor

import (
	"context"
	"fmt"

	"github.com/wupperinst/itom/internal/ctxlog"
	"github.com/wupperinst/itom/internal/emit"
	"github.com/wupperinst/itom/internal/emit/symbolic"
	"github.com/wupperinst/itom/internal/labels"
	"github.com/wupperinst/itom/internal/solver"
)

// Solve hands sys to the reference solver through the symbolic backend.
func Solve(ctx context.Context, sys *emit.System, opts solver.Options) (*solver.Solution, error) {
	logger := ctxlog.FromContext(ctx)
	m := symbolic.FromSystem(sys)
	sol, err := solver.Solve(ctx, m, opts)
	if err != nil {
		return nil, fmt.Errorf("solve failed: %w", err)
	}
	if sol.Status != solver.StatusOptimal {
		logger.Warn("Model has no optimal solution.", "status", sol.Status.String())
	}
	return sol, nil
}

// Value returns the solved value of the variable family at the ordinals pos.
// ok is false when no row or objective term ever referenced that column.
func Value(sys *emit.System, sol *solver.Solution, family string, pos ...int) (v float64, ok bool) {
	col, ok := sys.Variables.Labels().Lookup(family, labels.T(pos...))
	if !ok {
		return 0, false
	}
	return sol.ColValues[col], true
}
