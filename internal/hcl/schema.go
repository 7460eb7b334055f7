package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top-level blocks of a configuration file.
type fileRoot struct {
	Runs   []*runBlock `hcl:"run,block"`
	Remain hcl.Body    `hcl:",remain"`
}

// runBlock only splits off the label so the body can be decoded with a
// context that knows the run name.
type runBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// sentinelBody is decoded ahead of runBody so the other attributes can refer
// to the run's own sentinel as unbounded.
type sentinelBody struct {
	Sentinel *float64 `hcl:"sentinel,optional"`
	Remain   hcl.Body `hcl:",remain"`
}

type runBody struct {
	InputDir  string `hcl:"input_dir,optional"`
	OutputDir string `hcl:"output_dir,optional"`

	Hub        bool `hcl:"hub,optional"`
	Retrofit   bool `hcl:"retrofit,optional"`
	Impurities bool `hcl:"impurities,optional"`

	Sentinel          float64  `hcl:"sentinel,optional"`
	SalvageOffset     string   `hcl:"salvage_offset,optional"`
	EmissionRatioTest string   `hcl:"emission_ratio_test,optional"`
	RetrofitSlack     *float64 `hcl:"retrofit_slack,optional"`
	KeepSaturatedRows bool     `hcl:"keep_saturated_rows,optional"`
	Workers           int      `hcl:"workers,optional"`
	Outputs           []string `hcl:"outputs,optional"`

	Solve *solveBlock `hcl:"solve,block"`
}

type solveBlock struct {
	// Enabled defaults to true: declaring the block asks for a solve.
	Enabled    *bool   `hcl:"enabled,optional"`
	Tolerance  float64 `hcl:"tolerance,optional"`
	MaxColumns int     `hcl:"max_columns,optional"`
}
