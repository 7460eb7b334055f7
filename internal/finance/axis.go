// Package finance implements the discounting and salvage formulas of the
// model. Everything here is a pure function of the year axis and the
// parameter values passed in.
package finance

import (
	"fmt"
	"math"
	"strconv"
)

// PreconditionError reports input that would make a formula divide by zero
// or otherwise produce a non-finite coefficient.
type PreconditionError struct {
	What   string
	Detail string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition violated: %s: %s", e.What, e.Detail)
}

// Axis is the ordered list of model years and the length of the time step
// each year stands for.
type Axis struct {
	years []int
	steps []float64
	pos   map[int]int
}

// NewAxis parses year labels and pairs them with their time steps. Years must
// be integers in strictly increasing order and every step must be positive.
func NewAxis(labels []string, steps []float64) (*Axis, error) {
	if len(labels) == 0 {
		return nil, &PreconditionError{What: "year axis", Detail: "YEAR is empty"}
	}
	if len(labels) != len(steps) {
		return nil, fmt.Errorf("year axis: %d years but %d time steps", len(labels), len(steps))
	}
	a := &Axis{
		years: make([]int, len(labels)),
		steps: make([]float64, len(steps)),
		pos:   make(map[int]int, len(labels)),
	}
	for i, label := range labels {
		y, err := strconv.Atoi(label)
		if err != nil {
			return nil, fmt.Errorf("year axis: label %q is not an integer year: %w", label, err)
		}
		if i > 0 && y <= a.years[i-1] {
			return nil, fmt.Errorf("year axis: %d does not follow %d", y, a.years[i-1])
		}
		if steps[i] <= 0 || math.IsNaN(steps[i]) || math.IsInf(steps[i], 0) {
			return nil, &PreconditionError{What: "time step", Detail: fmt.Sprintf("TimeStep(%d) = %g", y, steps[i])}
		}
		a.years[i] = y
		a.steps[i] = steps[i]
		a.pos[y] = i
	}
	return a, nil
}

func (a *Axis) Len() int { return len(a.years) }

// Year returns the calendar year at ordinal i.
func (a *Axis) Year(i int) int { return a.years[i] }

// Step returns the time step of the year at ordinal i.
func (a *Axis) Step(i int) float64 { return a.steps[i] }

// Pos returns the ordinal of a calendar year.
func (a *Axis) Pos(year int) (int, bool) {
	i, ok := a.pos[year]
	return i, ok
}

func (a *Axis) first() (float64, float64) {
	return float64(a.years[0]), a.steps[0]
}

func (a *Axis) last() (float64, float64) {
	n := len(a.years) - 1
	return float64(a.years[n]), a.steps[n]
}

// CapitalPeriods is the exponent that discounts an investment made in year i
// back to the first model year.
func (a *Axis) CapitalPeriods(i int) float64 {
	minY, _ := a.first()
	return float64(a.years[i]) - minY
}

// MidIntervalPeriods is the exponent applied to annual costs of year i: they
// are discounted from the year itself back to the first year of the first
// interval.
func (a *Axis) MidIntervalPeriods(i int) float64 {
	minY, minStep := a.first()
	return 1 + float64(a.years[i]) - (minY - minStep/2 + 1)
}

// SalvagePeriods is the exponent bringing a value at the end of the last
// interval back to the start of the first.
func (a *Axis) SalvagePeriods() float64 {
	minY, minStep := a.first()
	maxY, maxStep := a.last()
	return 1 + maxY + maxStep/2 - (minY - minStep/2 + 1)
}

// CheckRate rejects discount rates that make the compounding base zero or
// negative.
func CheckRate(rate float64) error {
	if 1+rate <= 0 || math.IsNaN(rate) {
		return &PreconditionError{What: "discount rate", Detail: fmt.Sprintf("rate %g gives a non-positive compounding base", rate)}
	}
	return nil
}

// Factor is 1/(1+rate)^periods.
func Factor(rate, periods float64) float64 {
	return 1 / math.Pow(1+rate, periods)
}

// Discount returns value/(1+rate)^periods.
func Discount(value, rate, periods float64) float64 {
	return value * Factor(rate, periods)
}

// CapitalFactor discounts an investment in year ordinal i to the first year.
func (a *Axis) CapitalFactor(rate float64, i int) float64 {
	return Factor(rate, a.CapitalPeriods(i))
}

// MidIntervalFactor discounts an annual cost of year ordinal i.
func (a *Axis) MidIntervalFactor(rate float64, i int) float64 {
	return Factor(rate, a.MidIntervalPeriods(i))
}

// SalvageFactor discounts a value at the end of the horizon.
func (a *Axis) SalvageFactor(rate float64) float64 {
	return Factor(rate, a.SalvagePeriods())
}
