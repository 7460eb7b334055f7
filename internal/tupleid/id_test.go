package tupleid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_String(t *testing.T) {
	testCases := []struct {
		name        string
		id          *ID
		expectedStr string
	}{
		{
			name:        "three labels",
			id:          New("LocalNewCapacity", "L1", "EAF", "2030"),
			expectedStr: "LocalNewCapacity(L1;EAF;2030)",
		},
		{
			name:        "scalar family",
			id:          New("ModelPeriodCost"),
			expectedStr: "ModelPeriodCost()",
		},
		{
			name:        "nil id",
			id:          nil,
			expectedStr: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStr, tc.id.String())
		})
	}
}

func TestID_RoundTrip(t *testing.T) {
	testIDs := []string{
		"Transport(L1;HUB_A;steel;road;2030)",
		"ModelPeriodCostByRegion(DE)",
		"ModelPeriodCost()",
		"TF1b_Transport_1b(A(north);B;ship;2040)",
	}

	for _, raw := range testIDs {
		t.Run(raw, func(t *testing.T) {
			id, err := Parse(raw)
			require.NoError(t, err)

			roundTrip := id.String()
			assert.Equal(t, raw, roundTrip)

			again, err := Parse(roundTrip)
			require.NoError(t, err)
			assert.True(t, id.Equal(again))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		rawID string
	}{
		{name: "empty string", rawID: ""},
		{name: "no parentheses", rawID: "Transport"},
		{name: "empty label", rawID: "Transport(a;;b)"},
		{name: "leading digit", rawID: "1Transport(a)"},
		{name: "unterminated", rawID: "Transport(a;b"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.rawID)
			require.Error(t, err)
		})
	}
}

func TestID_Equal(t *testing.T) {
	a, _ := Parse("Import(A;steel;2030)")
	b, _ := Parse("Import(A;steel;2030)")
	c, _ := Parse("Import(B;steel;2030)")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
	assert.True(t, (*ID)(nil).Equal(nil))
	assert.Equal(t, "A;steel;2030", a.Index())
}
