package executor

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wupperinst/itom/internal/emit/lpfile"
	"github.com/wupperinst/itom/internal/emit/symbolic"
	"github.com/wupperinst/itom/internal/equation"
	"github.com/wupperinst/itom/internal/finance"
	"github.com/wupperinst/itom/internal/loader"
	"github.com/wupperinst/itom/internal/param"
	"github.com/wupperinst/itom/internal/solver"
	"github.com/wupperinst/itom/internal/testutil"
	"github.com/wupperinst/itom/internal/variable"
)

type recorder struct {
	mu       sync.Mutex
	families []string
	rows     int
	columns  int
}

func (r *recorder) FamilyDone(s equation.Stats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.families = append(r.families, s.Family)
}

func (r *recorder) SystemBuilt(rows, columns int) {
	r.rows, r.columns = rows, columns
}

func execute(t *testing.T, f *testutil.Fixture, tweak func(*equation.Options), obs Observer) (*Result, error) {
	t.Helper()
	s, p := f.Build()
	opts := equation.DefaultOptions(f.Caps)
	if tweak != nil {
		tweak(&opts)
	}
	ctx := testutil.Context(t, &testutil.SafeBuffer{})
	return New(f.Caps, opts, &loader.Input{Sets: s, Params: p}, obs).Execute(ctx)
}

func mustExecute(t *testing.T, f *testutil.Fixture, tweak func(*equation.Options)) *Result {
	t.Helper()
	res, err := execute(t, f, tweak, nil)
	require.NoError(t, err)
	return res
}

func solve(t *testing.T, m *symbolic.Model) *solver.Solution {
	t.Helper()
	sol, err := solver.Solve(testutil.Context(t, &testutil.SafeBuffer{}), m, solver.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, solver.StatusOptimal, sol.Status)
	return sol
}

func TestExecute_BackendsAgree(t *testing.T) {
	res := mustExecute(t, testutil.SmallModel(t), nil)

	direct := symbolic.FromSystem(res.System)
	var text bytes.Buffer
	require.NoError(t, lpfile.Write(&text, res.System))
	parsed, err := lpfile.Read(&text)
	require.NoError(t, err)

	if diff := cmp.Diff(direct, parsed, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("LP text does not describe the symbolic model (-symbolic +lp):\n%s", diff)
	}

	a, b := solve(t, direct), solve(t, parsed)
	assert.InDelta(t, a.Objective, b.Objective, 1e-6)
	assert.Greater(t, a.Objective, 0.0)
	assert.LessOrEqual(t, direct.Violation(a.ColValues), 1e-6)
}

func TestExecute_HubTradeFlows(t *testing.T) {
	res := mustExecute(t, testutil.TwoRegionHub(t), nil)
	sol, err := Solve(testutil.Context(t, &testutil.SafeBuffer{}), res.System, solver.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, solver.StatusOptimal, sol.Status)

	// Regions A=0, B=1; STEEL=0; 2020=0.
	imp, ok := Value(res.System, sol, variable.Import, 1, 0, 0)
	require.True(t, ok, "Import(B;STEEL;2020) has no column")
	exp, ok := Value(res.System, sol, variable.Export, 0, 0, 0)
	require.True(t, ok, "Export(A;STEEL;2020) has no column")
	assert.Greater(t, imp, 0.0)
	assert.Greater(t, exp, 0.0)

	// Locations A1=0 and B1=3 are in different regions and neither is a hub.
	_, ok = Value(res.System, sol, variable.Transport, 0, 3, 0, 0, 0)
	assert.False(t, ok, "regular locations of different regions must not trade directly")
}

func TestExecute_SaturatedRowsDoNotChangeTheOptimum(t *testing.T) {
	testCases := []struct {
		name    string
		fixture func(testing.TB) *testutil.Fixture
	}{
		{name: "small model", fixture: testutil.SmallModel},
		{name: "two region hub", fixture: testutil.TwoRegionHub},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			base := mustExecute(t, tc.fixture(t), nil)
			shadow := mustExecute(t, tc.fixture(t), func(o *equation.Options) { o.KeepSaturatedRows = true })

			assert.Greater(t, shadow.System.NumRows(), base.System.NumRows())
			a := solve(t, symbolic.FromSystem(base.System))
			b := solve(t, symbolic.FromSystem(shadow.System))
			assert.InDelta(t, a.Objective, b.Objective, 1e-6)
		})
	}
}

func TestExecute_ReportsToObserver(t *testing.T) {
	obs := &recorder{}
	f := testutil.SmallModel(t)
	res, err := execute(t, f, nil, obs)
	require.NoError(t, err)

	assert.Len(t, obs.families, len(equation.Families(f.Caps)))
	assert.Len(t, res.Stats, len(obs.families))
	assert.Equal(t, res.System.NumRows(), obs.rows)
	assert.Equal(t, res.System.NumCols(), obs.columns)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("zero time step", func(t *testing.T) {
		obs := &recorder{}
		f := testutil.SmallModel(t).Param(param.TimeStep, 0, "2030")
		res, err := execute(t, f, nil, obs)
		require.Error(t, err)
		assert.Nil(t, res)

		var pe *finance.PreconditionError
		require.ErrorAs(t, err, &pe)
		assert.Empty(t, obs.families, "generation must not start")
	})

	t.Run("cancelled", func(t *testing.T) {
		f := testutil.SmallModel(t)
		s, p := f.Build()
		ctx, cancel := context.WithCancel(testutil.Context(t, &testutil.SafeBuffer{}))
		cancel()
		res, err := New(f.Caps, equation.DefaultOptions(f.Caps), &loader.Input{Sets: s, Params: p}, nil).Execute(ctx)
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, res)
	})
}
