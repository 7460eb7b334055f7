package hub

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wupperinst/itom/internal/capability"
	"github.com/wupperinst/itom/internal/ctxlog"
	"github.com/wupperinst/itom/internal/labels"
	"github.com/wupperinst/itom/internal/param"
	"github.com/wupperinst/itom/internal/sets"
)

// Two regions. A has A1, A2 and hub HA. B has B1 and hub HB.
func twoRegions(t *testing.T) (*sets.Registry, *param.Store) {
	t.Helper()
	reg := sets.NewRegistry()
	require.NoError(t, reg.Add(sets.MustNew(sets.Location, "A1", "A2", "HA", "B1", "HB")))
	require.NoError(t, reg.Add(sets.MustNew(sets.Technology, "PLANT", "TERMINAL")))
	require.NoError(t, reg.Add(sets.MustNew(sets.Region, "A", "B")))

	store := param.NewStore(param.Catalog(capability.Set{Hub: true}), 1e20)
	geo := store.Table(param.Geography)
	for _, l := range []int{0, 1, 2} {
		geo.Set(labels.T(0, l), 1)
	}
	for _, l := range []int{3, 4} {
		geo.Set(labels.T(1, l), 1)
	}
	store.Table(param.HubLocation).Set(labels.T(2), 1)
	store.Table(param.HubLocation).Set(labels.T(4), 1)
	store.Table(param.HubTechnology).Set(labels.T(1), 1)
	return reg, store
}

func testContext(buf *bytes.Buffer) context.Context {
	logger := slog.New(slog.NewTextHandler(buf, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func TestView_PairTruthTable(t *testing.T) {
	reg, store := twoRegions(t)
	v := New(true, reg, store)

	testCases := []struct {
		name  string
		hubL  bool
		hubT  bool
		l, tt int
		want  Kind
	}{
		{name: "regular location, regular technology", l: 0, tt: 0, want: Regular},
		{name: "regular location, hub technology", hubT: true, l: 0, tt: 1, want: Mismatch},
		{name: "hub location, regular technology", hubL: true, l: 2, tt: 0, want: Mismatch},
		{name: "hub location, hub technology", hubL: true, hubT: true, l: 2, tt: 1, want: Hub},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.hubL, v.IsHubLocation(tc.l))
			require.Equal(t, tc.hubT, v.IsHubTechnology(tc.tt))
			assert.Equal(t, tc.want, v.Pair(tc.l, tc.tt))
		})
	}
}

func TestView_ExactlyOneKindPerPair(t *testing.T) {
	reg, store := twoRegions(t)
	v := New(true, reg, store)

	counts := map[Kind]int{}
	for l := 0; l < 5; l++ {
		for tt := 0; tt < 2; tt++ {
			k := v.Pair(l, tt)
			assert.Contains(t, []Kind{Hub, Regular, Mismatch}, k)
			counts[k]++
		}
	}
	assert.Equal(t, 10, counts[Hub]+counts[Regular]+counts[Mismatch])
	assert.Equal(t, 2, counts[Hub])
	assert.Equal(t, 3, counts[Regular])
}

func TestView_Locations(t *testing.T) {
	reg, store := twoRegions(t)
	v := New(true, reg, store)

	assert.Equal(t, []int{2, 4}, v.Relevant(1))
	assert.Equal(t, []int{0, 1, 3}, v.Relevant(0))
	assert.Equal(t, []int{0, 1, 3}, v.RegularLocations())
	assert.Equal(t, []int{0, 1, 2}, v.Members(0))
	assert.True(t, v.InRegion(1, 3))
	assert.False(t, v.InRegion(1, 0))

	h, ok := v.HubOf(1)
	require.True(t, ok)
	assert.Equal(t, 4, h)
}

func TestView_Disabled(t *testing.T) {
	reg, store := twoRegions(t)
	v := New(false, reg, store)

	assert.False(t, v.Enabled())
	assert.Equal(t, Regular, v.Pair(2, 1))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, v.Relevant(1))
	assert.Empty(t, v.HubLocations())
	require.NoError(t, v.Validate(testContext(&bytes.Buffer{})))
}

func TestView_Validate(t *testing.T) {
	t.Run("two hubs in one region", func(t *testing.T) {
		reg, store := twoRegions(t)
		store.Table(param.HubLocation).Set(labels.T(1), 1)
		err := New(true, reg, store).Validate(testContext(&bytes.Buffer{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "region A has 2 hub locations")
	})

	t.Run("region without hub warns", func(t *testing.T) {
		reg, store := twoRegions(t)
		store.Table(param.HubLocation).Set(labels.T(4), 0)
		var buf bytes.Buffer
		require.NoError(t, New(true, reg, store).Validate(testContext(&buf)))
		assert.Contains(t, buf.String(), "Region has no hub location.")
		assert.Contains(t, buf.String(), "region=B")
	})
}
