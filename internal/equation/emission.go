package equation

import (
	"iter"

	"github.com/wupperinst/itom/internal/labels"
	"github.com/wupperinst/itom/internal/linear"
	"github.com/wupperinst/itom/internal/param"
	"github.com/wupperinst/itom/internal/sets"
	"github.com/wupperinst/itom/internal/variable"
)

func emissionFamilies() []Family {
	rtey := sig(sets.Region, sets.Technology, sets.Emission, sets.Year)
	rty := sig(sets.Region, sets.Technology, sets.Year)
	rey := sig(sets.Region, sets.Emission, sets.Year)
	re := sig(sets.Region, sets.Emission)
	return []Family{
		{
			Name:      "E1_LocalEmissionProductionByMode",
			Signature: sig(sets.Location, sets.Technology, sets.Emission, sets.Mode, sets.Year),
			Enumerate: emissionModes,
			Rule:      localEmissionByMode,
		},
		{Name: "E2_LocalEmissionProduction", Signature: sig(sets.Location, sets.Technology, sets.Emission, sets.Year), Rule: localEmission},
		{Name: "E3_AnnualEmissionProduction", Signature: rtey, Rule: annualTechnologyEmission},
		{Name: "E4_EmissionPenaltyByTechAndEmission", Signature: rtey, Rule: penaltyByEmission},
		{Name: "E5_EmissionsPenaltyByTechnology", Signature: rty, Rule: penaltyByTechnology},
		{Name: "E6_DiscountedEmissionsPenaltyByTechnology", Signature: rty, Rule: discountedPenalty},
		{Name: "E7_EmissionsAccounting1", Signature: rey, Rule: annualEmissions},
		{Name: "E8_EmissionsAccounting2", Signature: re, Rule: modelPeriodEmissions},
		{Name: "E9_AnnualEmissionsLimit", Signature: rey, Rule: annualEmissionLimit},
		{Name: "E10_ModelPeriodEmissionsLimit", Signature: re, Rule: modelPeriodEmissionLimit},
	}
}

func emissionModes(m *Model) iter.Seq[labels.Tuple] {
	nl, nt, ne, ny := m.n(sets.Location), m.n(sets.Technology), m.n(sets.Emission), m.n(sets.Year)
	return func(yield func(labels.Tuple) bool) {
		for l := 0; l < nl; l++ {
			for t := 0; t < nt; t++ {
				for em := 0; em < ne; em++ {
					for _, mo := range m.Modes(t) {
						for y := 0; y < ny; y++ {
							if !yield(labels.T(l, t, em, mo, y)) {
								return
							}
						}
					}
				}
			}
		}
	}
}

// Ratios failing the configured test pin the emission to zero instead of
// coupling it to activity.
func localEmissionByMode(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, t, em, mo, y := ix.At(0), ix.At(1), ix.At(2), ix.At(3), ix.At(4)
	if !m.par(param.ModeForTechnology).Is(t, mo) {
		return linear.Skip(linear.SkipCategory), nil
	}
	if !m.gated(l, t) {
		return linear.Skip(linear.SkipHub), nil
	}
	ear := m.par(param.EmissionActivityRatio)
	w := m.G(l, func(r int) float64 { return ear.Get(r, t, em, mo, y) })

	e := linear.NewExpr().Add(1, linear.V(variable.LocalTechnologyEmissionByMode, l, t, em, mo, y))
	if m.Opts.EmissionRatioTest.pass(w) {
		e.Add(-w, linear.V(variable.LocalActivityByMode, l, t, mo, y))
	}
	return eq(e, 0), nil
}

func localEmission(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, t, em, y := ix.At(0), ix.At(1), ix.At(2), ix.At(3)
	if !m.gated(l, t) {
		return linear.Skip(linear.SkipHub), nil
	}
	e := linear.NewExpr().Add(1, linear.V(variable.LocalTechnologyEmission, l, t, em, y))
	for _, mo := range m.Modes(t) {
		e.Add(-1, linear.V(variable.LocalTechnologyEmissionByMode, l, t, em, mo, y))
	}
	return eq(e, 0), nil
}

func annualTechnologyEmission(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, t, em, y := ix.At(0), ix.At(1), ix.At(2), ix.At(3)
	e := linear.NewExpr().Add(1, linear.V(variable.AnnualTechnologyEmission, r, t, em, y))
	m.regional(e, r, m.Hub.Relevant(t), variable.LocalTechnologyEmission, t, em, y)
	return eq(e, 0), nil
}

func penaltyByEmission(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, t, em, y := ix.At(0), ix.At(1), ix.At(2), ix.At(3)
	penalty := m.par(param.EmissionsPenalty).Get(r, em, y)
	e := linear.NewExpr().
		Add(1, linear.V(variable.AnnualTechnologyEmissionPenaltyByEmission, r, t, em, y)).
		Add(-penalty, linear.V(variable.AnnualTechnologyEmission, r, t, em, y))
	return eq(e, 0), nil
}

func penaltyByTechnology(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, t, y := ix.At(0), ix.At(1), ix.At(2)
	e := linear.NewExpr().Add(1, linear.V(variable.AnnualTechnologyEmissionsPenalty, r, t, y))
	for em := 0; em < m.n(sets.Emission); em++ {
		e.Add(-1, linear.V(variable.AnnualTechnologyEmissionPenaltyByEmission, r, t, em, y))
	}
	return eq(e, 0), nil
}

func discountedPenalty(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, t, y := ix.At(0), ix.At(1), ix.At(2)
	f := m.Axis.MidIntervalFactor(m.par(param.DiscountRate).Get(r), y)
	e := linear.NewExpr().
		Add(1, linear.V(variable.DiscountedTechnologyEmissionsPenalty, r, t, y)).
		Add(-f, linear.V(variable.AnnualTechnologyEmissionsPenalty, r, t, y))
	return eq(e, 0), nil
}

func annualEmissions(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, em, y := ix.At(0), ix.At(1), ix.At(2)
	e := linear.NewExpr().Add(1, linear.V(variable.AnnualEmissions, r, em, y))
	for t := 0; t < m.n(sets.Technology); t++ {
		e.Add(-1, linear.V(variable.AnnualTechnologyEmission, r, t, em, y))
	}
	return eq(e, 0), nil
}

func modelPeriodEmissions(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, em := ix.At(0), ix.At(1)
	e := linear.NewExpr().Add(1, linear.V(variable.ModelPeriodEmissions, r, em))
	for y := 0; y < m.n(sets.Year); y++ {
		e.Add(-1, linear.V(variable.AnnualEmissions, r, em, y))
	}
	return eq(e, m.par(param.ModelPeriodExogenousEmission).Get(r, em)), nil
}

func annualEmissionLimit(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, em, y := ix.At(0), ix.At(1), ix.At(2)
	limit := m.par(param.AnnualEmissionLimit).Get(r, em, y)
	exogenous := m.par(param.AnnualExogenousEmission).Get(r, em, y)
	e := linear.NewExpr().Add(1, linear.V(variable.AnnualEmissions, r, em, y))
	return m.bound(e, linear.LE, limit-exogenous, m.unbounded(limit)), nil
}

func modelPeriodEmissionLimit(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, em := ix.At(0), ix.At(1)
	limit := m.par(param.ModelPeriodEmissionLimit).Get(r, em)
	e := linear.NewExpr().Add(1, linear.V(variable.ModelPeriodEmissions, r, em))
	return m.bound(e, linear.LE, limit, m.unbounded(limit)), nil
}
