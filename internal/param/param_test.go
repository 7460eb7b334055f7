package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wupperinst/itom/internal/capability"
	"github.com/wupperinst/itom/internal/labels"
)

func names(specs []Spec) map[string]bool {
	out := make(map[string]bool, len(specs))
	for _, s := range specs {
		out[s.Name] = true
	}
	return out
}

func TestCatalog_Capabilities(t *testing.T) {
	testCases := []struct {
		name    string
		caps    capability.Set
		present []string
		absent  []string
	}{
		{
			name:    "base",
			caps:    capability.Set{},
			present: []string{Geography, TimeStep, TransportRoute},
			absent:  []string{HubLocation, TransportCostInterReg, RetrofitTechnology, MaxImpurity},
		},
		{
			name:    "hub",
			caps:    capability.Set{Hub: true},
			present: []string{HubLocation, HubTechnology, TransportCostInterReg},
			absent:  []string{MatchTechnologyRetrofit},
		},
		{
			name:    "all",
			caps:    capability.Set{Hub: true, Retrofit: true, Impurities: true},
			present: []string{RetrofitTechnology, TechnologyToRetrofit, MatchTechnologyRetrofit, MaxImpurity},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := names(Catalog(tc.caps))
			for _, n := range tc.present {
				assert.True(t, got[n], "expected %s", n)
			}
			for _, n := range tc.absent {
				assert.False(t, got[n], "did not expect %s", n)
			}
		})
	}
}

func TestCatalog_SignaturesFitTuples(t *testing.T) {
	for _, s := range Catalog(capability.Set{Hub: true, Retrofit: true, Impurities: true}) {
		assert.LessOrEqual(t, len(s.Signature), labels.MaxArity, s.Name)
		assert.NotEmpty(t, s.Signature, s.Name)
	}
}

func TestTable_Defaults(t *testing.T) {
	store := NewStore(Catalog(capability.Set{}), 1e20)

	assert.Equal(t, 0.05, store.Table(DiscountRate).Get(3))
	assert.Equal(t, 1e20, store.Table(TotalAnnualMaxCapacity).Get(0, 0, 0))
	assert.Equal(t, 1.0, store.Table(OperationalLife).Get(0, 1))
	assert.Equal(t, 1e20, store.Sentinel())

	_, ok := store.Lookup(HubLocation)
	assert.False(t, ok)
	assert.Panics(t, func() { store.Table(HubLocation) })
}

func TestTable_Overrides(t *testing.T) {
	store := NewStore(Catalog(capability.Set{}), 1e20)
	geo := store.Table(Geography)
	geo.Set(labels.T(1, 0), 1)
	geo.Set(labels.T(0, 2), 1)
	geo.Set(labels.T(0, 1), 0.5)

	assert.True(t, geo.Is(1, 0))
	assert.False(t, geo.Is(0, 1))
	assert.Equal(t, 0.0, geo.Get(1, 1))
	require.Equal(t, 3, geo.Len())

	ov := geo.Overrides()
	assert.Equal(t, labels.T(0, 1), ov[0].Tuple)
	assert.Equal(t, labels.T(0, 2), ov[1].Tuple)
	assert.Equal(t, labels.T(1, 0), ov[2].Tuple)

	assert.Panics(t, func() { geo.Set(labels.T(1), 1) })
}
