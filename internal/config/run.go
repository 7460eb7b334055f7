package config

import (
	"context"
	"fmt"
	"math"
	"path/filepath"

	"github.com/wupperinst/itom/internal/capability"
	"github.com/wupperinst/itom/internal/ctxlog"
	"github.com/wupperinst/itom/internal/equation"
	"github.com/wupperinst/itom/internal/finance"
	"github.com/wupperinst/itom/internal/solver"
)

// Output kinds a run can write.
const (
	OutputLP     = "lp"
	OutputTables = "tables"
)

// Run is one model run: where its input lives, which capabilities it
// assembles and the numeric choices of its variant. Zero values mean
// "use the default"; Validate fills them in.
type Run struct {
	Name      string
	InputDir  string
	OutputDir string

	Hub        bool
	Retrofit   bool
	Impurities bool

	Sentinel float64
	// SalvageOffset is "horizon_end" or "half_step". Empty selects the
	// default of the capability set.
	SalvageOffset string
	// EmissionRatioTest is "positive" or "non_zero". Empty selects the
	// default of the capability set.
	EmissionRatioTest string
	RetrofitSlack     *float64
	KeepSaturatedRows bool
	Workers           int

	Outputs []string

	Solve            bool
	SolverTolerance  float64
	SolverMaxColumns int
}

// Caps returns the capability set of the run.
func (r *Run) Caps() capability.Set {
	return capability.Set{Hub: r.Hub, Retrofit: r.Retrofit, Impurities: r.Impurities}
}

// Validate fills in defaults and rejects values the assembler cannot use.
func (r *Run) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("run name must not be empty")
	}
	if r.InputDir == "" {
		r.InputDir = filepath.Join("input", r.Name)
	}
	if r.OutputDir == "" {
		r.OutputDir = filepath.Join("output", r.Name)
	}

	switch {
	case r.Sentinel == 0:
		r.Sentinel = equation.DefaultSentinel
	case r.Sentinel < 0 || math.IsNaN(r.Sentinel) || math.IsInf(r.Sentinel, 0):
		return fmt.Errorf("run %s: sentinel must be a positive finite number, got %g", r.Name, r.Sentinel)
	}
	if r.SalvageOffset != "" {
		if _, err := finance.ParseOffset(r.SalvageOffset); err != nil {
			return fmt.Errorf("run %s: %w", r.Name, err)
		}
	}
	if r.EmissionRatioTest != "" {
		if _, err := equation.ParseRatioTest(r.EmissionRatioTest); err != nil {
			return fmt.Errorf("run %s: %w", r.Name, err)
		}
	}
	if r.RetrofitSlack != nil && (*r.RetrofitSlack < 0 || math.IsNaN(*r.RetrofitSlack)) {
		return fmt.Errorf("run %s: retrofit slack must not be negative, got %g", r.Name, *r.RetrofitSlack)
	}
	if r.Workers < 0 {
		return fmt.Errorf("run %s: workers must not be negative, got %d", r.Name, r.Workers)
	}

	if r.Outputs == nil {
		r.Outputs = []string{OutputLP, OutputTables}
	}
	for _, o := range r.Outputs {
		if o != OutputLP && o != OutputTables {
			return fmt.Errorf("run %s: unknown output %q: must be '%s' or '%s'", r.Name, o, OutputLP, OutputTables)
		}
	}

	defaults := solver.DefaultOptions()
	if r.SolverTolerance == 0 {
		r.SolverTolerance = defaults.Tolerance
	}
	if r.SolverMaxColumns == 0 {
		r.SolverMaxColumns = defaults.MaxColumns
	}
	if r.SolverTolerance < 0 || r.SolverMaxColumns < 0 {
		return fmt.Errorf("run %s: solver tolerance and column limit must not be negative", r.Name)
	}
	return nil
}

// Writes reports whether output kind o is enabled.
func (r *Run) Writes(o string) bool {
	for _, have := range r.Outputs {
		if have == o {
			return true
		}
	}
	return false
}

// Options resolves the assembler options of a validated run.
func (r *Run) Options(ctx context.Context) (equation.Options, error) {
	logger := ctxlog.FromContext(ctx)
	caps := r.Caps()
	opts := equation.DefaultOptions(caps)
	opts.Sentinel = r.Sentinel
	opts.KeepSaturatedRows = r.KeepSaturatedRows
	if r.Workers > 0 {
		opts.Workers = r.Workers
	}
	if r.RetrofitSlack != nil {
		opts.RetrofitSlack = *r.RetrofitSlack
	}

	if r.SalvageOffset == "" {
		if caps.Hub {
			logger.Warn("Using the hub default salvage offset; set salvage_offset to choose explicitly.", "run", r.Name, "salvage_offset", opts.SalvageOffset.String())
		}
	} else {
		o, err := finance.ParseOffset(r.SalvageOffset)
		if err != nil {
			return equation.Options{}, fmt.Errorf("run %s: %w", r.Name, err)
		}
		opts.SalvageOffset = o
	}

	if r.EmissionRatioTest != "" {
		rt, err := equation.ParseRatioTest(r.EmissionRatioTest)
		if err != nil {
			return equation.Options{}, fmt.Errorf("run %s: %w", r.Name, err)
		}
		opts.EmissionRatioTest = rt
	}
	return opts, nil
}

// SolverOptions returns the reference solver limits of a validated run.
// Bounds within two orders of magnitude of the sentinel count as absent, so
// sentinel limits shifted by finite data are dropped as well.
func (r *Run) SolverOptions() solver.Options {
	return solver.Options{
		MaxColumns: r.SolverMaxColumns,
		Tolerance:  r.SolverTolerance,
		Infinity:   r.Sentinel / 100,
	}
}
