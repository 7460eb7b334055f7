package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wupperinst/itom/internal/labels"
	"github.com/wupperinst/itom/internal/param"
	"github.com/wupperinst/itom/internal/sets"
	"github.com/wupperinst/itom/internal/testutil"
)

func options(dir string) Options {
	return Options{Dir: dir, Sentinel: 1e20, Workers: 4}
}

func TestLoad_MatchesFixture(t *testing.T) {
	f := testutil.SmallModel(t)
	dir := t.TempDir()
	f.WriteCSV(dir)

	buf := &testutil.SafeBuffer{}
	in, err := Load(testutil.Context(t, buf), options(dir))
	require.NoError(t, err)

	wantSets, wantParams := f.Build()
	for _, name := range sets.All {
		assert.Equal(t, wantSets.MustGet(name).Members(), in.Sets.MustGet(name).Members(), name)
	}
	for _, spec := range wantParams.Specs() {
		want := wantParams.Table(spec.Name).Overrides()
		got := in.Params.Table(spec.Name).Overrides()
		if diff := cmp.Diff(want, got, cmp.AllowUnexported(labels.Tuple{})); diff != "" {
			t.Errorf("%s overrides (-want +got):\n%s", spec.Name, diff)
		}
	}

	// No DiscountRate file: the default applies everywhere.
	assert.Equal(t, 0.05, in.Params.Table(param.DiscountRate).Get(0))
	assert.Equal(t, 1e20, in.Params.Table(param.TotalAnnualMaxCapacity).Get(0, 0, 0))
	assert.NotContains(t, buf.String(), "Ignoring input file")
}

func TestLoad_WarnsAboutUnusedFiles(t *testing.T) {
	dir := t.TempDir()
	testutil.TwoRegionHub(t).WriteCSV(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Notes.csv"), []byte("VALUE\nx\n"), 0o644))

	buf := &testutil.SafeBuffer{}
	_, err := Load(testutil.Context(t, buf), options(dir))
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, "Ignoring input file not used by this run.")
	assert.Contains(t, logs, "Notes.csv")
	// Hub tables are not declared without the hub capability.
	assert.Contains(t, logs, "HubLocation.csv")
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(t *testing.T, dir string)
		check   func(t *testing.T, err error)
		wantMsg string
	}{
		{
			name:   "missing set file",
			mutate: func(t *testing.T, dir string) { require.NoError(t, os.Remove(filepath.Join(dir, "EMISSION.csv"))) },
			check:  func(t *testing.T, err error) { assert.True(t, errors.Is(err, ErrMissingSet)) },
		},
		{
			name:    "label outside its set",
			mutate:  write("Demand.csv", "INDEX1,INDEX2,INDEX3,VALUE\nR1,STEEL,2020,1\nR1,IRON,2020,2\n"),
			check:   domainError(sets.Product, "IRON"),
			wantMsg: "Demand.csv:3:",
		},
		{
			name:    "wrong column count",
			mutate:  write("Demand.csv", "INDEX1,INDEX2,VALUE\nR1,STEEL,1\n"),
			wantMsg: "3 columns, want 3 index columns and a value",
		},
		{
			name:    "unparsable value",
			mutate:  write("Demand.csv", "INDEX1,INDEX2,INDEX3,VALUE\nR1,STEEL,2020,ten\n"),
			wantMsg: "value: strconv.ParseFloat",
		},
		{
			name:    "duplicate entry",
			mutate:  write("Demand.csv", "INDEX1,INDEX2,INDEX3,VALUE\nR1,STEEL,2020,1\nR1,STEEL,2020,2\n"),
			wantMsg: "duplicate entry, first given on line 2",
		},
		{
			name:   "duplicate set member",
			mutate: write("REGION.csv", "VALUE\nR1\nR1\n"),
			check:  domainError(sets.Region, "R1"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			testutil.SmallModel(t).WriteCSV(dir)
			tc.mutate(t, dir)

			in, err := Load(testutil.Context(t, &testutil.SafeBuffer{}), options(dir))
			require.Error(t, err)
			assert.Nil(t, in)

			var fe *FileError
			require.ErrorAs(t, err, &fe)
			if tc.check != nil {
				tc.check(t, err)
			}
			if tc.wantMsg != "" {
				assert.Contains(t, err.Error(), tc.wantMsg)
			}
		})
	}
}

func write(name, content string) func(t *testing.T, dir string) {
	return func(t *testing.T, dir string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func domainError(set, label string) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		var de *sets.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, set, de.Set)
		assert.Equal(t, label, de.Label)
	}
}
