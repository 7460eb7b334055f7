// Package yamlconfig loads run configurations written in the scenario
// config.yaml layout:
//
//	model_run_code: hub
//	transport:
//	  hub: true
//	processes:
//	  retrofit: false
//	  impurities: false
//	framework:
//	  keep_LP: true
//	  keep_files: true
//	solver:
//	  name: simplex
//	  feasTol: 1.0e-9
//
// Each file describes one run. The optional assembly and paths sections
// carry the settings that have no place in the scenario layout.
package yamlconfig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wupperinst/itom/internal/config"
	"github.com/wupperinst/itom/internal/ctxlog"
	"github.com/wupperinst/itom/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Extensions accepted by the loader.
var Extensions = []string{".yaml", ".yml"}

// SolverName is the only solver the assembler can run itself.
const SolverName = "simplex"

type file struct {
	ModelRunCode string `yaml:"model_run_code"`
	Transport    struct {
		Hub bool `yaml:"hub"`
	} `yaml:"transport"`
	Processes struct {
		Retrofit   bool `yaml:"retrofit"`
		Impurities bool `yaml:"impurities"`
	} `yaml:"processes"`
	Framework struct {
		KeepLP    *bool `yaml:"keep_LP"`
		KeepFiles *bool `yaml:"keep_files"`
	} `yaml:"framework"`
	Solver struct {
		Name       string  `yaml:"name"`
		Solve      bool    `yaml:"solve"`
		FeasTol    float64 `yaml:"feasTol"`
		MaxColumns int     `yaml:"max_columns"`
	} `yaml:"solver"`
	Assembly struct {
		Sentinel          float64  `yaml:"sentinel"`
		SalvageOffset     string   `yaml:"salvage_offset"`
		EmissionRatioTest string   `yaml:"emission_ratio_test"`
		RetrofitSlack     *float64 `yaml:"retrofit_slack"`
		KeepSaturatedRows bool     `yaml:"keep_saturated_rows"`
		Workers           int      `yaml:"workers"`
	} `yaml:"assembly"`
	Paths struct {
		Input  string `yaml:"input"`
		Output string `yaml:"output"`
	} `yaml:"paths"`
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load reads every YAML file under paths as one run.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	model := config.NewModel()
	for _, path := range paths {
		files, err := findYAMLFiles(path)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			run, err := loadFile(f)
			if err != nil {
				return nil, err
			}
			if err := model.Add(run); err != nil {
				return nil, fmt.Errorf("%s: %w", f, err)
			}
			logger.Debug("Run file decoded.", "run", run.Name, "file", f)
		}
	}
	logger.Debug("YAML loading complete.", "runs", len(model.Runs))
	return model, nil
}

func findYAMLFiles(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}
	var out []string
	for _, ext := range Extensions {
		found, err := fsutil.FindFilesByExtension(path, ext)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

func loadFile(path string) (*config.Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	run, err := Decode(bytes.NewReader(data), runName(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return run, nil
}

// runName derives a run name from a file such as hub_config.yaml.
func runName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.TrimSuffix(base, "_config")
}

// Decode reads one run. fallbackName is used when model_run_code is absent.
// Unknown keys are rejected.
func Decode(r io.Reader, fallbackName string) (*config.Run, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}

	if f.Solver.Name != "" && f.Solver.Name != SolverName && f.Solver.Solve {
		return nil, fmt.Errorf("solver %q is not available; only %q can be run in-process", f.Solver.Name, SolverName)
	}

	run := &config.Run{
		Name:              f.ModelRunCode,
		InputDir:          f.Paths.Input,
		OutputDir:         f.Paths.Output,
		Hub:               f.Transport.Hub,
		Retrofit:          f.Processes.Retrofit,
		Impurities:        f.Processes.Impurities,
		Sentinel:          f.Assembly.Sentinel,
		SalvageOffset:     f.Assembly.SalvageOffset,
		EmissionRatioTest: f.Assembly.EmissionRatioTest,
		RetrofitSlack:     f.Assembly.RetrofitSlack,
		KeepSaturatedRows: f.Assembly.KeepSaturatedRows,
		Workers:           f.Assembly.Workers,
		Solve:             f.Solver.Solve,
		SolverTolerance:   f.Solver.FeasTol,
		SolverMaxColumns:  f.Solver.MaxColumns,
	}
	if run.Name == "" {
		run.Name = fallbackName
	}
	if f.Framework.KeepLP != nil || f.Framework.KeepFiles != nil {
		run.Outputs = []string{}
		if f.Framework.KeepLP == nil || *f.Framework.KeepLP {
			run.Outputs = append(run.Outputs, config.OutputLP)
		}
		if f.Framework.KeepFiles == nil || *f.Framework.KeepFiles {
			run.Outputs = append(run.Outputs, config.OutputTables)
		}
	}
	return run, nil
}
