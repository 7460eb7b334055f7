package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/wupperinst/itom/internal/config"
	"github.com/wupperinst/itom/internal/ctxlog"
	"github.com/wupperinst/itom/internal/equation"
	"github.com/wupperinst/itom/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Extension is the suffix of HCL configuration files.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load parses every .hcl file under paths and collects their run blocks.
// Paths that do not exist are skipped.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := config.NewModel()
	parser := hclparse.NewParser()
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		for _, block := range root.Runs {
			run, err := translateRun(block)
			if err != nil {
				return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, err)
			}
			if err := model.Add(run); err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			logger.Debug("Run block decoded.", "run", run.Name, "file", file)
		}
	}

	logger.Debug("HCL loading complete.", "runs", len(model.Runs))
	return model, nil
}

// findAllHCLFiles expands directories and returns each .hcl file once.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		found, err := fsutil.FindFilesByExtension(path, Extension)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if _, ok := seen[f]; !ok {
				seen[f] = struct{}{}
				all = append(all, f)
			}
		}
	}
	return all, nil
}

// evalContext is the scope of expressions inside run "name" { ... }.
// unbounded is the run's sentinel.
func evalContext(name string, sentinel float64) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"unbounded": cty.NumberFloatVal(sentinel),
			"run":       cty.ObjectVal(map[string]cty.Value{"name": cty.StringVal(name)}),
		},
		Functions: map[string]function.Function{
			"lower":  stdlib.LowerFunc,
			"upper":  stdlib.UpperFunc,
			"format": stdlib.FormatFunc,
		},
	}
}

// runSentinel decodes only the sentinel attribute. Inside it, unbounded is
// the default sentinel.
func runSentinel(block *runBlock) (float64, error) {
	var head sentinelBody
	if diags := gohcl.DecodeBody(block.Body, evalContext(block.Name, equation.DefaultSentinel), &head); diags.HasErrors() {
		return 0, fmt.Errorf("run %q: %w", block.Name, diags)
	}
	if head.Sentinel == nil || *head.Sentinel == 0 {
		return equation.DefaultSentinel, nil
	}
	return *head.Sentinel, nil
}

func translateRun(block *runBlock) (*config.Run, error) {
	sentinel, err := runSentinel(block)
	if err != nil {
		return nil, err
	}
	var body runBody
	if diags := gohcl.DecodeBody(block.Body, evalContext(block.Name, sentinel), &body); diags.HasErrors() {
		return nil, fmt.Errorf("run %q: %w", block.Name, diags)
	}
	r := &config.Run{
		Name:              block.Name,
		InputDir:          body.InputDir,
		OutputDir:         body.OutputDir,
		Hub:               body.Hub,
		Retrofit:          body.Retrofit,
		Impurities:        body.Impurities,
		Sentinel:          body.Sentinel,
		SalvageOffset:     body.SalvageOffset,
		EmissionRatioTest: body.EmissionRatioTest,
		RetrofitSlack:     body.RetrofitSlack,
		KeepSaturatedRows: body.KeepSaturatedRows,
		Workers:           body.Workers,
		Outputs:           body.Outputs,
	}
	if s := body.Solve; s != nil {
		r.Solve = s.Enabled == nil || *s.Enabled
		r.SolverTolerance = s.Tolerance
		r.SolverMaxColumns = s.MaxColumns
	}
	return r, nil
}
