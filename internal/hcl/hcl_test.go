package hcl

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wupperinst/itom/internal/config"
	"github.com/wupperinst/itom/internal/testutil"
)

const runsHCL = `
run "base" {}

run "hub" {
  input_dir           = "data/${run.name}"
  output_dir          = format("out/%s", upper(run.name))
  hub                 = true
  retrofit            = true
  sentinel            = unbounded
  salvage_offset      = "horizon_end"
  emission_ratio_test = "non_zero"
  retrofit_slack      = 0.2
  workers             = 8
  outputs             = ["lp"]

  solve {
    tolerance   = 1e-7
    max_columns = 500
  }
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "runs.hcl", runsHCL)
	writeFile(t, dir, "notes.txt", "not configuration")

	model, err := NewLoader().Load(testutil.Context(t, &testutil.SafeBuffer{}), dir, filepath.Join(dir, "missing.hcl"))
	require.NoError(t, err)
	require.Equal(t, []string{"base", "hub"}, model.Names())

	slack := 0.2
	want := &config.Run{
		Name:              "hub",
		InputDir:          "data/hub",
		OutputDir:         "out/HUB",
		Hub:               true,
		Retrofit:          true,
		Sentinel:          1e20,
		SalvageOffset:     "horizon_end",
		EmissionRatioTest: "non_zero",
		RetrofitSlack:     &slack,
		Workers:           8,
		Outputs:           []string{"lp"},
		Solve:             true,
		SolverTolerance:   1e-7,
		SolverMaxColumns:  500,
	}
	if diff := cmp.Diff(want, model.Runs["hub"]); diff != "" {
		t.Errorf("hub run mismatch (-want +got):\n%s", diff)
	}

	base := model.Runs["base"]
	assert.False(t, base.Solve)
	assert.Nil(t, base.Outputs)
	require.NoError(t, base.Validate())
	assert.Equal(t, filepath.Join("input", "base"), base.InputDir)
}

func TestLoader_UnboundedFollowsSentinel(t *testing.T) {
	testCases := []struct {
		name      string
		content   string
		wantSlack float64
	}{
		{name: "default sentinel", content: `run "x" { retrofit_slack = unbounded }`, wantSlack: 1e20},
		{name: "own sentinel", content: `run "x" {
  sentinel       = 1e15
  retrofit_slack = unbounded
}`, wantSlack: 1e15},
		{name: "sentinel from unbounded", content: `run "x" {
  sentinel       = unbounded / 10
  retrofit_slack = unbounded
}`, wantSlack: 1e19},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "run.hcl", tc.content)
			model, err := NewLoader().Load(testutil.Context(t, &testutil.SafeBuffer{}), path)
			require.NoError(t, err)
			run := model.Runs["x"]
			require.NotNil(t, run.RetrofitSlack)
			assert.InEpsilon(t, tc.wantSlack, *run.RetrofitSlack, 1e-12)
		})
	}
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "syntax", content: `run "x" {`, wantErr: "failed to parse HCL file"},
		{name: "unknown attribute", content: `run "x" { colour = "blue" }`, wantErr: "Unsupported argument"},
		{name: "wrong type", content: `run "x" { workers = "many" }`, wantErr: "Unsuitable value type"},
		{name: "unknown variable", content: `run "x" { input_dir = var.dir }`, wantErr: "Unknown variable"},
		{name: "duplicate run", content: "run \"x\" {}\nrun \"x\" {}\n", wantErr: `run "x" is defined twice`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "run.hcl", tc.content)
			_, err := NewLoader().Load(testutil.Context(t, &testutil.SafeBuffer{}), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestWriteSnapshot_RoundTrip(t *testing.T) {
	slack := 0.05
	testCases := []struct {
		name string
		run  config.Run
	}{
		{name: "defaults", run: config.Run{Name: "base"}},
		{name: "everything set", run: config.Run{
			Name:              "hub",
			InputDir:          "in",
			OutputDir:         "out",
			Hub:               true,
			Impurities:        true,
			Sentinel:          1e15,
			SalvageOffset:     "half_step",
			EmissionRatioTest: "positive",
			RetrofitSlack:     &slack,
			KeepSaturatedRows: true,
			Workers:           3,
			Outputs:           []string{"tables"},
			Solve:             true,
			SolverTolerance:   1e-8,
			SolverMaxColumns:  100,
		}},
		{name: "no outputs", run: config.Run{Name: "dry", Outputs: []string{}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			want := tc.run
			require.NoError(t, want.Validate())

			var buf bytes.Buffer
			require.NoError(t, WriteSnapshot(&buf, &want))
			path := writeFile(t, t.TempDir(), SnapshotFile, buf.String())

			model, err := NewLoader().Load(testutil.Context(t, &testutil.SafeBuffer{}), path)
			require.NoError(t, err)
			got := model.Runs[want.Name]
			require.NotNil(t, got, "snapshot:\n%s", buf.String())
			require.NoError(t, got.Validate())

			if diff := cmp.Diff(&want, got, cmpopts.EquateApprox(1e-12, 0), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("snapshot round trip (-want +got):\n%s\nsnapshot:\n%s", diff, buf.String())
			}
		})
	}
}
