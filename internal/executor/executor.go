// Package executor runs the assembly pipeline over a loaded input: it derives
// the model, generates every constraint family, assembles the objective and
// numbers the resulting linear system.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/wupperinst/itom/internal/capability"
	"github.com/wupperinst/itom/internal/ctxlog"
	"github.com/wupperinst/itom/internal/emit"
	"github.com/wupperinst/itom/internal/equation"
	"github.com/wupperinst/itom/internal/loader"
	"github.com/wupperinst/itom/internal/objective"
	"github.com/wupperinst/itom/internal/sets"
	"github.com/wupperinst/itom/internal/variable"
)

// Observer receives per-family statistics and the final system size.
type Observer interface {
	equation.Observer
	SystemBuilt(rows, columns int)
}

// Executor assembles one run.
type Executor struct {
	caps     capability.Set
	opts     equation.Options
	input    *loader.Input
	observer Observer
}

// Result is everything a successful assembly produced.
type Result struct {
	Model  *equation.Model
	Stats  []equation.Stats
	System *emit.System
}

// New creates an executor for input. observer may be nil.
func New(caps capability.Set, opts equation.Options, input *loader.Input, observer Observer) *Executor {
	return &Executor{caps: caps, opts: opts, input: input, observer: observer}
}

// Execute runs generation and numbering. Any error leaves no partial result.
func (e *Executor) Execute(ctx context.Context) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()
	logger.Debug("Assembly started.", "capabilities", e.caps.String(), "workers", e.opts.Workers)

	m, err := equation.NewModel(ctx, e.caps, e.opts, e.input.Sets, e.input.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare model: %w", err)
	}

	var obs equation.Observer
	if e.observer != nil {
		obs = e.observer
	}
	families := equation.Families(e.caps)
	out, err := equation.Run(ctx, m, families, obs)
	if err != nil {
		return nil, fmt.Errorf("constraint generation failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	obj := objective.Build(e.input.Sets.MustGet(sets.Region))
	vars, err := variable.NewRegistry(e.input.Sets, variable.Catalog(e.caps))
	if err != nil {
		return nil, fmt.Errorf("failed to declare variables: %w", err)
	}
	sys, err := emit.Build(ctx, e.input.Sets, families, out.Records, obj, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to build linear system: %w", err)
	}
	if e.observer != nil {
		e.observer.SystemBuilt(sys.NumRows(), sys.NumCols())
	}

	logger.Info("Assembly finished.", "rows", sys.NumRows(), "columns", sys.NumCols(), "nonzeros", sys.Nonzeros(), "elapsed", time.Since(start))
	return &Result{Model: m, Stats: out.Stats, System: sys}, nil
}
