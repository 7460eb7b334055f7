package finance

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decadeAxis(t *testing.T) *Axis {
	t.Helper()
	a, err := NewAxis([]string{"2020", "2030"}, []float64{10, 10})
	require.NoError(t, err)
	return a
}

func TestNewAxis(t *testing.T) {
	testCases := []struct {
		name         string
		labels       []string
		steps        []float64
		expectErr    bool
		precondition bool
	}{
		{name: "valid", labels: []string{"2020", "2025", "2030"}, steps: []float64{5, 5, 5}},
		{name: "non integer year", labels: []string{"2020", "later"}, steps: []float64{1, 1}, expectErr: true},
		{name: "not increasing", labels: []string{"2030", "2020"}, steps: []float64{1, 1}, expectErr: true},
		{name: "zero time step", labels: []string{"2020", "2030"}, steps: []float64{10, 0}, expectErr: true, precondition: true},
		{name: "empty axis", expectErr: true, precondition: true},
		{name: "length mismatch", labels: []string{"2020"}, steps: []float64{1, 1}, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := NewAxis(tc.labels, tc.steps)
			if !tc.expectErr {
				require.NoError(t, err)
				assert.Equal(t, len(tc.labels), a.Len())
				return
			}
			require.Error(t, err)
			var pe *PreconditionError
			assert.Equal(t, tc.precondition, errors.As(err, &pe))
		})
	}
}

func TestAxis_Periods(t *testing.T) {
	a := decadeAxis(t)

	assert.Equal(t, 0.0, a.CapitalPeriods(0))
	assert.Equal(t, 10.0, a.CapitalPeriods(1))
	// First interval starts at 2016; 2020 is its fifth year.
	assert.Equal(t, 5.0, a.MidIntervalPeriods(0))
	assert.Equal(t, 15.0, a.MidIntervalPeriods(1))
	// 2016 through 2035.
	assert.Equal(t, 20.0, a.SalvagePeriods())

	pos, ok := a.Pos(2030)
	require.True(t, ok)
	assert.Equal(t, 1, pos)
	_, ok = a.Pos(2025)
	assert.False(t, ok)
}

func TestDiscount(t *testing.T) {
	assert.Equal(t, 0.0, Discount(0, 0.05, 7), "zero stays zero")
	assert.Equal(t, 120.0, Discount(120, 0.05, 0), "base year is not discounted")
	assert.InDelta(t, 100.0, Discount(110.25, 0.05, 2), 1e-9)
	assert.Equal(t, 1.0, Factor(0, 12))
}

func TestCheckRate(t *testing.T) {
	require.NoError(t, CheckRate(0))
	require.NoError(t, CheckRate(0.07))

	var pe *PreconditionError
	require.ErrorAs(t, CheckRate(-1), &pe)
	assert.Equal(t, "discount rate", pe.What)
}

func TestSalvage(t *testing.T) {
	a := decadeAxis(t)
	declining := 1 - (math.Pow(1.05, 10)-1)/(math.Pow(1.05, 20)-1)

	testCases := []struct {
		name         string
		pos          int
		method       float64
		life         float64
		rate         float64
		offset       Offset
		wantCase     Case
		wantFraction float64
		wantClamped  bool
	}{
		{name: "declining balance", pos: 1, method: DecliningBalance, life: 20, rate: 0.05, wantCase: CaseDeclining, wantFraction: declining},
		{name: "straight line to horizon end", pos: 1, method: StraightLine, life: 20, rate: 0.05, wantCase: CaseStraight, wantFraction: 0.95},
		{name: "straight line half step", pos: 1, method: StraightLine, life: 20, rate: 0.05, offset: OffsetHalfStep, wantCase: CaseStraight, wantFraction: 0.5},
		{name: "declining at zero rate is straight", pos: 1, method: DecliningBalance, life: 20, rate: 0, wantCase: CaseStraight, wantFraction: 0.95},
		{name: "life ends inside horizon", pos: 0, method: StraightLine, life: 5, wantCase: CaseZero},
		{name: "negative fraction clamps to zero", pos: 1, method: StraightLine, life: 9, offset: OffsetHalfStep, wantCase: CaseZero, wantClamped: true},
		{name: "unknown method", pos: 1, method: 3, life: 20, rate: 0.05, wantCase: CaseZero},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			credit, err := a.Salvage(tc.pos, tc.method, tc.life, tc.rate, tc.offset)
			require.NoError(t, err)
			assert.Equal(t, tc.wantCase, credit.Case)
			assert.InDelta(t, tc.wantFraction, credit.Fraction, 1e-12)
			assert.GreaterOrEqual(t, credit.Fraction, 0.0)
			assert.Equal(t, tc.wantClamped, credit.Clamped)
			if tc.wantClamped {
				assert.LessOrEqual(t, credit.Formula, 0.0)
			}
		})
	}
}

func TestSalvage_NonPositiveLife(t *testing.T) {
	a := decadeAxis(t)
	_, err := a.Salvage(0, StraightLine, 0, 0.05, OffsetHorizonEnd)

	var pe *PreconditionError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, err.Error(), "operational life")
}

func TestParseOffset(t *testing.T) {
	o, err := ParseOffset("HALF_STEP")
	require.NoError(t, err)
	assert.Equal(t, OffsetHalfStep, o)
	assert.Equal(t, "half_step", o.String())

	_, err = ParseOffset("midpoint")
	assert.Error(t, err)
}

func TestAxis_Factors(t *testing.T) {
	a := decadeAxis(t)

	assert.Equal(t, 1.0, a.CapitalFactor(0.05, 0))
	assert.InDelta(t, 1/math.Pow(1.05, 10), a.CapitalFactor(0.05, 1), 1e-12)
	assert.InDelta(t, 1/math.Pow(1.05, 15), a.MidIntervalFactor(0.05, 1), 1e-12)
	assert.InDelta(t, 1/math.Pow(1.05, 20), a.SalvageFactor(0.05), 1e-12)
}
