package equation

import (
	"fmt"
	"strings"

	"github.com/wupperinst/itom/internal/capability"
	"github.com/wupperinst/itom/internal/finance"
)

// RatioTest decides when an emission activity ratio produces a coupling row
// in E1.
type RatioTest int

const (
	// RatioPositive couples only strictly positive ratios.
	RatioPositive RatioTest = iota
	// RatioNonZero also couples negative ratios, which model capture.
	RatioNonZero
)

func (r RatioTest) String() string {
	if r == RatioNonZero {
		return "non_zero"
	}
	return "positive"
}

// ParseRatioTest reads "positive" or "non_zero".
func ParseRatioTest(s string) (RatioTest, error) {
	switch strings.ToLower(s) {
	case "positive":
		return RatioPositive, nil
	case "non_zero", "nonzero":
		return RatioNonZero, nil
	}
	return 0, fmt.Errorf("unknown emission ratio test %q: must be 'positive' or 'non_zero'", s)
}

func (r RatioTest) pass(v float64) bool {
	if r == RatioNonZero {
		return v != 0
	}
	return v > 0
}

// DefaultSentinel is the value that stands for "no limit".
const DefaultSentinel = 1e20

// Options carries the numeric choices that differ between model variants.
type Options struct {
	Sentinel          float64
	SalvageOffset     finance.Offset
	RetrofitSlack     float64
	EmissionRatioTest RatioTest
	// KeepSaturatedRows emits the trivially satisfied row instead of skipping
	// a tuple whose bound is the sentinel or a zero floor.
	KeepSaturatedRows bool
	Workers           int
}

// DefaultOptions returns the options each capability set has always been run
// with: the hub variant uses the half-step salvage offset and the non-zero
// emission ratio test.
func DefaultOptions(caps capability.Set) Options {
	o := Options{
		Sentinel:          DefaultSentinel,
		SalvageOffset:     finance.OffsetHorizonEnd,
		RetrofitSlack:     0.1,
		EmissionRatioTest: RatioPositive,
		Workers:           4,
	}
	if caps.Hub {
		o.SalvageOffset = finance.OffsetHalfStep
		o.EmissionRatioTest = RatioNonZero
	}
	return o
}
