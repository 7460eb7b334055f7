package finance

import (
	"fmt"
	"math"
	"strings"
)

// Case is the salvage formula that applies to a (region, technology, year).
type Case int

const (
	// CaseZero: the capacity reaches end of life inside the horizon.
	CaseZero Case = iota
	// CaseDeclining: declining balance with a positive discount rate.
	CaseDeclining
	// CaseStraight: straight line, or declining balance at a zero rate.
	CaseStraight
)

func (c Case) String() string {
	switch c {
	case CaseDeclining:
		return "declining"
	case CaseStraight:
		return "straight"
	}
	return "zero"
}

// Offset selects how the straight-line case measures the remaining life.
type Offset int

const (
	// OffsetHorizonEnd uses maxY - y + 1 years of use.
	OffsetHorizonEnd Offset = iota
	// OffsetHalfStep measures from the start of the interval of y to the end
	// of the last interval, the same span the declining case uses.
	OffsetHalfStep
)

func (o Offset) String() string {
	if o == OffsetHalfStep {
		return "half_step"
	}
	return "horizon_end"
}

// ParseOffset reads "horizon_end" or "half_step".
func ParseOffset(s string) (Offset, error) {
	switch strings.ToLower(s) {
	case "horizon_end":
		return OffsetHorizonEnd, nil
	case "half_step":
		return OffsetHalfStep, nil
	}
	return 0, fmt.Errorf("unknown salvage offset %q: must be 'horizon_end' or 'half_step'", s)
}

// Depreciation methods as encoded in the DepreciationMethod parameter.
const (
	DecliningBalance = 1
	StraightLine     = 2
)

// Credit is the salvage outcome of one investment year.
type Credit struct {
	Case Case
	// Fraction of the capital cost credited back. It is positive for
	// CaseDeclining and CaseStraight and exactly zero for CaseZero.
	Fraction float64
	// Clamped is set when the declining or straight formula gave Formula <= 0
	// and the credit was reported as CaseZero instead.
	Clamped bool
	Formula float64
}

// Salvage returns the salvage credit for an investment made in year ordinal i.
func (a *Axis) Salvage(i int, method, life, rate float64, offset Offset) (Credit, error) {
	if life <= 0 || math.IsNaN(life) {
		return Credit{}, &PreconditionError{What: "operational life", Detail: fmt.Sprintf("life %g in year %d", life, a.years[i])}
	}
	maxY, maxStep := a.last()
	y := float64(a.years[i])
	step := a.steps[i]

	outlivesHorizon := y+step/2+life-1 > maxY+maxStep/2
	if !outlivesHorizon {
		return Credit{}, nil
	}

	// k is the number of years from the start of the interval of y
	// to the end of the last interval.
	k := maxY + maxStep/2 - (y - step/2 + 1) + 1

	var c Case
	var fraction float64
	switch {
	case method == DecliningBalance && rate > 0:
		if err := CheckRate(rate); err != nil {
			return Credit{}, err
		}
		c = CaseDeclining
		fraction = 1 - (math.Pow(1+rate, k)-1)/(math.Pow(1+rate, life)-1)
	case method == DecliningBalance && rate == 0, method == StraightLine:
		c = CaseStraight
		used := maxY - y + 1
		if offset == OffsetHalfStep {
			used = k
		}
		fraction = 1 - used/life
	default:
		return Credit{}, nil
	}
	if fraction <= 0 {
		return Credit{Clamped: true, Formula: fraction}, nil
	}
	return Credit{Case: c, Fraction: fraction, Formula: fraction}, nil
}
