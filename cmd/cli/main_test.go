package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wupperinst/itom/internal/testutil"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// A syntax error makes app.NewApp panic while loading the configuration.
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "run.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte("run \"base\" {\n  hub = true\n"), 0o600))

	out := &bytes.Buffer{}
	runErr := run(out, []string{filePath})

	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")
	require.Contains(t, runErr.Error(), "application startup panicked")
	require.Contains(t, runErr.Error(), "failed to parse")
}

func TestRun_RuntimeErrorsAreNotStartupPanics(t *testing.T) {
	t.Parallel()

	// The configuration is valid; the input directory is not there.
	root := t.TempDir()
	cfg := filepath.Join(root, "run.hcl")
	require.NoError(t, os.WriteFile(cfg, []byte(`run "small" {}`), 0o600))

	out := &bytes.Buffer{}
	err := run(out, []string{"-input", filepath.Join(root, "missing"), "-output", filepath.Join(root, "output"), cfg})

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load input")
	require.NotContains(t, err.Error(), "application startup panicked")
}

func TestRun_SolvesWithSaturatedRows(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	input := filepath.Join(root, "input")
	output := filepath.Join(root, "output")
	testutil.SmallModel(t).WriteCSV(input)
	cfg := filepath.Join(root, "run.hcl")
	require.NoError(t, os.WriteFile(cfg, []byte("run \"shadow\" {\n  keep_saturated_rows = true\n}\n"), 0o600))

	out := &bytes.Buffer{}
	var err error
	require.NotPanics(t, func() {
		err = run(out, []string{"-input", input, "-output", output, "-solve", cfg})
	})

	require.NoError(t, err, out.String())
	require.FileExists(t, filepath.Join(output, "shadow_variables.csv"))
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_AssemblesAndSolves(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	input := filepath.Join(root, "input")
	output := filepath.Join(root, "output")
	testutil.SmallModel(t).WriteCSV(input)
	cfg := filepath.Join(root, "run.hcl")
	require.NoError(t, os.WriteFile(cfg, []byte(`run "small" {}`), 0o600))

	out := &bytes.Buffer{}
	err := run(out, []string{"-input", input, "-output", output, "-solve", "-log-format", "json", cfg})

	require.NoError(t, err, out.String())
	require.FileExists(t, filepath.Join(output, "problem.lp"))
	require.FileExists(t, filepath.Join(output, "small_variables.csv"))
	require.Contains(t, out.String(), `"msg":"Solution written."`)
}
