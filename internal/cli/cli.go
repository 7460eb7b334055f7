package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/wupperinst/itom/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("itom", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
itom - assembles the linear optimization model of an industry transformation run.

Usage:
  itom [options] [CONFIG_PATH]

Arguments:
  CONFIG_PATH
    Path to a .hcl or .yaml run configuration, or a directory of them.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the run configuration file or directory.")
	cFlag := flagSet.String("c", "", "Path to the run configuration file or directory (shorthand).")
	runFlag := flagSet.String("run", "", "Name of the run to assemble. Required when the configuration defines several.")
	inputFlag := flagSet.String("input", "", "Override the input directory of the run.")
	outputFlag := flagSet.String("output", "", "Override the output directory of the run.")
	solveFlag := flagSet.Bool("solve", false, "Solve the assembled model with the reference solver.")
	metricsPortFlag := flagSet.Int("metrics-port", 0, "Port for the /health and /metrics HTTP server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 0, "Number of families generated in parallel. 0 keeps the configured value.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *configFlag != "" {
		path = *configFlag
	} else if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Configuration path determined.", "path", path)

	if path == "" {
		slog.Debug("No configuration path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *metricsPortFlag < 0 || *metricsPortFlag > 65535 {
		return nil, false, &ExitError{Code: 2, Message: "invalid metrics-port: must be between 0 and 65535"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath:  path,
		RunName:     *runFlag,
		InputDir:    *inputFlag,
		OutputDir:   *outputFlag,
		Workers:     *workersFlag,
		Solve:       *solveFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		MetricsPort: *metricsPortFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
