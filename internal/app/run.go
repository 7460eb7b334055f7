package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wupperinst/itom/internal/config"
	"github.com/wupperinst/itom/internal/ctxlog"
	"github.com/wupperinst/itom/internal/emit"
	"github.com/wupperinst/itom/internal/emit/lpfile"
	"github.com/wupperinst/itom/internal/executor"
	"github.com/wupperinst/itom/internal/hcl"
	"github.com/wupperinst/itom/internal/loader"
	"github.com/wupperinst/itom/internal/solver"
)

// ProblemFile is the name of the LP file in the output directory.
const ProblemFile = "problem.lp"

// Run loads the input of the configured run, assembles it and writes the
// outputs. With solving enabled it also solves the system and writes the
// non-zero column values.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger.With("run", a.run.Name))
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	if a.config.MetricsPort > 0 {
		a.startHealthcheckServer(a.config.MetricsPort)
		defer func() {
			if cerr := a.closeHealthcheckServer(context.WithoutCancel(ctx)); cerr != nil && err == nil {
				err = cerr
			}
		}()
	}

	opts, err := a.run.Options(ctx)
	if err != nil {
		return err
	}
	caps := a.run.Caps()
	in, err := loader.Load(ctx, loader.Options{
		Dir:      a.run.InputDir,
		Caps:     caps,
		Sentinel: opts.Sentinel,
		Workers:  opts.Workers,
	})
	if err != nil {
		return fmt.Errorf("failed to load input: %w", err)
	}

	res, err := executor.New(caps, opts, in, a.metrics).Execute(ctx)
	if err != nil {
		return err
	}

	if err := a.writeOutputs(ctx, res.System); err != nil {
		return err
	}

	if a.run.Solve {
		if err := a.solve(ctx, res.System); err != nil {
			return err
		}
	}
	logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) writeOutputs(ctx context.Context, sys *emit.System) error {
	logger := ctxlog.FromContext(ctx)
	dir := a.run.OutputDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if a.run.Writes(config.OutputLP) {
		path := filepath.Join(dir, ProblemFile)
		if err := writeFile(path, func(w io.Writer) error { return lpfile.Write(w, sys) }); err != nil {
			return err
		}
		logger.Info("LP file written.", "path", path)
	}
	if a.run.Writes(config.OutputTables) {
		if err := lpfile.WriteTables(dir, sys); err != nil {
			return err
		}
		logger.Info("ID tables written.", "dir", dir)
	}

	path := filepath.Join(dir, hcl.SnapshotFile)
	if err := writeFile(path, func(w io.Writer) error { return hcl.WriteSnapshot(w, a.run) }); err != nil {
		return err
	}
	logger.Debug("Run snapshot written.", "path", path)
	return nil
}

func (a *App) solve(ctx context.Context, sys *emit.System) error {
	logger := ctxlog.FromContext(ctx)
	sol, err := executor.Solve(ctx, sys, a.run.SolverOptions())
	if err != nil {
		return err
	}
	if sol.Status != solver.StatusOptimal {
		logger.Info("Solve finished without a solution.", "status", sol.Status.String())
		return nil
	}

	path := filepath.Join(a.run.OutputDir, a.run.Name+lpfile.SolutionSuffix)
	if err := lpfile.WriteSolution(path, sol.ColValues, a.run.SolverTolerance); err != nil {
		return err
	}
	logger.Info("Solution written.", "objective", sol.Objective, "path", path)
	return nil
}

// writeFile creates path and hands fn a buffered writer on it.
func writeFile(path string, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := fn(w); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
