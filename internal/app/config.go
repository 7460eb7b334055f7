package app

import "errors"

// Config holds the process-level settings of one invocation. Settings that
// describe the model run itself live in the configuration file.
type Config struct {
	ConfigPath string // .hcl or .yaml file, or a directory of them
	RunName    string // run to execute; empty selects the only run

	// Overrides applied on top of the selected run. Zero values keep the
	// configured setting.
	InputDir  string
	OutputDir string
	Workers   int
	Solve     bool

	LogFormat   string
	LogLevel    string
	MetricsPort int
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.Workers < 0 {
		return nil, errors.New("workers must not be negative")
	}
	return &cfg, nil
}
