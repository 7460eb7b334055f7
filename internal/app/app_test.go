package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wupperinst/itom/internal/emit/lpfile"
	"github.com/wupperinst/itom/internal/hcl"
	"github.com/wupperinst/itom/internal/testutil"
	"github.com/wupperinst/itom/internal/yamlconfig"
)

// workspace writes the small model as input and a config file naming it.
func workspace(t *testing.T, name, content string) (cfgPath, inputDir, outputDir string) {
	t.Helper()
	root := t.TempDir()
	inputDir = filepath.Join(root, "input")
	outputDir = filepath.Join(root, "output")
	testutil.SmallModel(t).WriteCSV(inputDir)

	cfgPath = filepath.Join(root, name)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))
	return cfgPath, inputDir, outputDir
}

func TestApp_RunWritesOutputs(t *testing.T) {
	cfgPath, in, out := workspace(t, "runs.hcl", `
run "small" {
  solve {}
}
`)
	a, logs := SetupAppTest(t, &Config{ConfigPath: cfgPath, InputDir: in, OutputDir: out, Workers: 2})
	require.NoError(t, a.Run(context.Background()))

	for _, name := range []string{
		ProblemFile,
		lpfile.VariablesFile,
		lpfile.VariablesOverviewFile,
		lpfile.ConstraintsFile,
		lpfile.ConstraintsOverviewFile,
		hcl.SnapshotFile,
		"small" + lpfile.SolutionSuffix,
	} {
		assert.FileExists(t, filepath.Join(out, name))
	}

	lp, err := os.ReadFile(filepath.Join(out, ProblemFile))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(lp), "Objective\nmin:"))
	assert.True(t, strings.HasSuffix(string(lp), "End\n"))

	snapshot, err := os.ReadFile(filepath.Join(out, hcl.SnapshotFile))
	require.NoError(t, err)
	assert.Contains(t, string(snapshot), `run "small"`)
	assert.Contains(t, string(snapshot), "workers")

	output := logs.String()
	assert.Contains(t, output, "Assembly finished.")
	assert.Contains(t, output, "Solution written.")
	assert.Contains(t, output, "run=small")
}

func TestApp_YAMLConfigWithoutTables(t *testing.T) {
	cfgPath, in, out := workspace(t, "small_config.yaml", `
framework:
  keep_LP: true
  keep_files: false
`)
	a, _ := SetupAppTest(t, &Config{ConfigPath: cfgPath, InputDir: in, OutputDir: out})
	assert.Equal(t, "small", a.RunConfig().Name)
	require.NoError(t, a.Run(context.Background()))

	assert.FileExists(t, filepath.Join(out, ProblemFile))
	assert.NoFileExists(t, filepath.Join(out, lpfile.VariablesFile))
	assert.NoFileExists(t, filepath.Join(out, "small"+lpfile.SolutionSuffix))
}

func TestApp_InputErrorsSurface(t *testing.T) {
	cfgPath, in, out := workspace(t, "runs.hcl", `run "small" {}`)
	require.NoError(t, os.Remove(filepath.Join(in, "YEAR.csv")))

	a, _ := SetupAppTest(t, &Config{ConfigPath: cfgPath, InputDir: in, OutputDir: out})
	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load input")
	assert.NoDirExists(t, out)
}

func TestNewApp_PanicsOnBadConfiguration(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantMsg string
	}{
		{name: "syntax", content: `run "x" {`, wantMsg: "failed to load configuration"},
		{name: "two runs", content: "run \"a\" {}\nrun \"b\" {}\n", wantMsg: "failed to select run"},
		{name: "invalid", content: `run "a" { salvage_offset = "midpoint" }`, wantMsg: "invalid configuration"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "run.hcl")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			defer func() {
				r := recover()
				require.NotNil(t, r, "NewApp should panic")
				err, ok := r.(error)
				require.True(t, ok)
				assert.Contains(t, err.Error(), tc.wantMsg)
			}()
			NewApp(io.Discard, &Config{ConfigPath: path}, LoaderFor(path))
		})
	}
}

func TestLoaderFor(t *testing.T) {
	yamlDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(yamlDir, "a.yaml"), nil, 0o644))

	assert.IsType(t, &yamlconfig.Loader{}, LoaderFor("runs/base_config.yaml"))
	assert.IsType(t, &yamlconfig.Loader{}, LoaderFor("runs/base.YML"))
	assert.IsType(t, &hcl.Loader{}, LoaderFor("runs/base.hcl"))
	assert.IsType(t, &yamlconfig.Loader{}, LoaderFor(yamlDir))
	assert.IsType(t, &hcl.Loader{}, LoaderFor(t.TempDir()))
}

func TestApp_HealthAndMetrics(t *testing.T) {
	cfgPath, in, out := workspace(t, "runs.hcl", `run "small" {}`)
	a, _ := SetupAppTest(t, &Config{ConfigPath: cfgPath, InputDir: in, OutputDir: out})
	require.NoError(t, a.Run(context.Background()))

	srv := httptest.NewServer(a.mux())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK\n", string(body))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "itom_rows_emitted_total")
	assert.Contains(t, string(body), "itom_columns")
}
