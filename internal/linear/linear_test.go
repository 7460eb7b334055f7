package linear

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wupperinst/itom/internal/labels"
)

func TestExpr_MergesAndDropsZeros(t *testing.T) {
	x := V("Transport", 0, 0, 0, 0, 0)
	y := V("Transport", 1, 0, 0, 0, 0)
	z := V("LocalProduction", 0, 0, 0)

	e := NewExpr().
		Add(1, x).
		Add(1, y).
		Add(1, x).
		Add(0, z).
		AddEach([]float64{-1, 1}, []Ref{y, z})

	want := []Term{
		{Coef: 2, Ref: x},
		{Coef: 1, Ref: z},
	}
	if diff := cmp.Diff(want, e.Terms(), cmp.AllowUnexported(labels.Tuple{})); diff != "" {
		t.Errorf("terms mismatch (-want +got):\n%s", diff)
	}
}

func TestExpr_AddEachLengthMismatch(t *testing.T) {
	assert.Panics(t, func() {
		NewExpr().AddEach([]float64{1}, nil)
	})
}

func TestResult(t *testing.T) {
	emitted := Emit(NewExpr().Add(1, V("Import", 0, 0, 0)), GE, 3)
	require.Equal(t, KindEmit, emitted.Kind())
	row, ok := emitted.Row()
	require.True(t, ok)
	assert.Equal(t, GE, row.Sense)
	assert.Equal(t, 3.0, row.RHS)
	assert.Len(t, row.Terms, 1)

	skipped := Skip(SkipSaturated)
	_, ok = skipped.Row()
	assert.False(t, ok)
	assert.Equal(t, KindSkip, skipped.Kind())
	assert.Equal(t, "saturated", skipped.Reason().String())
}

func TestSense_String(t *testing.T) {
	assert.Equal(t, "<=", LE.String())
	assert.Equal(t, "==", EQ.String())
	assert.Equal(t, ">=", GE.String())
}
