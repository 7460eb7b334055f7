package labels

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wupperinst/itom/internal/sets"
)

func fixture(t *testing.T) (*Registry, *sets.Set, *sets.Set) {
	t.Helper()
	loc := sets.MustNew(sets.Location, "L1", "L2", "HUB")
	year := sets.MustNew(sets.Year, "2020", "2030")
	r := NewRegistry()
	require.NoError(t, r.Declare("LocalTotalCapacity", loc, year))
	require.NoError(t, r.Declare("ModelPeriodCost"))
	return r, loc, year
}

func TestRegistry_LabelIsMemoized(t *testing.T) {
	r, _, _ := fixture(t)

	a, err := r.Label("LocalTotalCapacity", T(1, 0))
	require.NoError(t, err)
	b, err := r.Label("ModelPeriodCost", T())
	require.NoError(t, err)
	again, err := r.Label("LocalTotalCapacity", T(1, 0))
	require.NoError(t, err)

	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
	assert.Equal(t, a, again)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_DomainErrors(t *testing.T) {
	r, _, _ := fixture(t)

	testCases := []struct {
		name     string
		family   string
		tuple    Tuple
		position int
	}{
		{name: "wrong arity", family: "LocalTotalCapacity", tuple: T(0), position: -1},
		{name: "ordinal past end", family: "LocalTotalCapacity", tuple: T(3, 0), position: 0},
		{name: "negative ordinal", family: "LocalTotalCapacity", tuple: T(0, -1), position: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Label(tc.family, tc.tuple)
			var domainErr *DomainError
			require.True(t, errors.As(err, &domainErr), "expected DomainError, got %v", err)
			assert.Equal(t, tc.position, domainErr.Position)
		})
	}

	_, err := r.Label("Nope", T())
	assert.ErrorIs(t, err, ErrUnknownFamily)
}

func TestRegistry_Redeclare(t *testing.T) {
	r, loc, year := fixture(t)
	require.NoError(t, r.Declare("LocalTotalCapacity", loc, year))
	require.Error(t, r.Declare("LocalTotalCapacity", year, loc))
	assert.Equal(t, []string{"LocalTotalCapacity", "ModelPeriodCost"}, r.Families())
}

func TestRegistry_ID(t *testing.T) {
	r, _, _ := fixture(t)
	id, err := r.Label("LocalTotalCapacity", T(2, 1))
	require.NoError(t, err)

	tid := r.ID(r.Entry(id))
	assert.Equal(t, "LocalTotalCapacity(HUB;2030)", tid.String())
}

func TestRegistry_ConcurrentLabelsAreUnique(t *testing.T) {
	r, _, _ := fixture(t)

	var wg sync.WaitGroup
	results := make([][]int, 8)
	for w := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for l := 0; l < 3; l++ {
				for y := 0; y < 2; y++ {
					id, err := r.Label("LocalTotalCapacity", T(l, y))
					assert.NoError(t, err)
					results[w] = append(results[w], id)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 6, r.Len())
	for _, ids := range results[1:] {
		assert.Equal(t, results[0], ids)
	}
}

func TestTuple(t *testing.T) {
	a := T(1, 2, 3)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, []int{1, 2, 3}, a.Slice())
	assert.Equal(t, "(1,2,3)", a.String())
	assert.True(t, T(1, 2).Less(T(1, 3)))
	assert.True(t, T(1).Less(T(1, 0)))
	assert.False(t, T(2).Less(T(1, 9)))
	assert.Equal(t, T(4, 5), T(4, 5))
	assert.Panics(t, func() { T(1, 2, 3, 4, 5, 6) })
	assert.Panics(t, func() { a.At(3) })
}
