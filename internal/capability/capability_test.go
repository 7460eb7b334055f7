package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Has(t *testing.T) {
	testCases := []struct {
		name string
		have Set
		want Set
		ok   bool
	}{
		{name: "empty requirement", have: Set{}, want: Set{}, ok: true},
		{name: "hub required and present", have: Set{Hub: true, Retrofit: true}, want: Set{Hub: true}, ok: true},
		{name: "retrofit missing", have: Set{Hub: true}, want: Set{Retrofit: true}, ok: false},
		{name: "impurities missing", have: Set{Hub: true, Retrofit: true}, want: Set{Impurities: true}, ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, tc.have.Has(tc.want))
		})
	}
}

func TestSet_String(t *testing.T) {
	assert.Equal(t, "base", Set{}.String())
	assert.Equal(t, "hub+retrofit", Set{Hub: true, Retrofit: true}.String())
	assert.Equal(t, "hub+retrofit+impurities", Set{Hub: true, Retrofit: true, Impurities: true}.String())
}
