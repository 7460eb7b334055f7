package equation

import (
	"fmt"

	"github.com/wupperinst/itom/internal/finance"
	"github.com/wupperinst/itom/internal/labels"
	"github.com/wupperinst/itom/internal/linear"
	"github.com/wupperinst/itom/internal/param"
	"github.com/wupperinst/itom/internal/sets"
	"github.com/wupperinst/itom/internal/variable"
)

func capitalFamilies() []Family {
	rty := sig(sets.Region, sets.Technology, sets.Year)
	lty := sig(sets.Location, sets.Technology, sets.Year)
	return []Family{
		{Name: "CC1_UndiscountedCapitalInvestment", Signature: lty, Rule: capitalInvestment},
		{Name: "CC2_DiscountedCapitalInvestment_1_constraint", Signature: lty, Rule: localDiscountedCapitalInvestment},
		{Name: "CC3_DiscountedCapitalInvestment_2_constraint", Signature: rty, Rule: discountedCapitalInvestment},
		{Name: "SV1_SalvageValueAtEndOfPeriod", Signature: rty, Rule: salvageValue},
		{Name: "SV2_SalvageValueDiscountedToStartYear", Signature: rty, Rule: discountedSalvageValue},
	}
}

func operatingFamilies() []Family {
	rty := sig(sets.Region, sets.Technology, sets.Year)
	lty := sig(sets.Location, sets.Technology, sets.Year)
	return []Family{
		{Name: "OC1_OperatingCostsVariable", Signature: lty, Rule: variableOperatingCost},
		{Name: "OC2_OperatingCostsFixedAnnual", Signature: lty, Rule: fixedOperatingCost},
		{Name: "OC3_OperatingCostsTotalAnnual", Signature: lty, Rule: operatingCost},
		{Name: "OC4_DiscountedOperatingCostsTotalAnnual_1", Signature: lty, Rule: localDiscountedOperatingCost},
		{Name: "OC5_DiscountedOperatingCostsTotalAnnual_2", Signature: rty, Rule: discountedOperatingCost},
	}
}

// locationRate is the discount rate of the regions l belongs to.
func (m *Model) locationRate(l int) float64 {
	dr := m.par(param.DiscountRate)
	return m.G(l, func(r int) float64 { return dr.Get(r) })
}

func capitalInvestment(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, t, y := ix.At(0), ix.At(1), ix.At(2)
	if !m.gated(l, t) {
		return linear.Skip(linear.SkipHub), nil
	}
	cc := m.par(param.CapitalCost)
	w := m.G(l, func(r int) float64 { return cc.Get(r, t, y) })
	e := linear.NewExpr().
		Add(1, linear.V(variable.LocalCapitalInvestment, l, t, y)).
		Add(-w, linear.V(variable.LocalNewCapacity, l, t, y))
	return eq(e, 0), nil
}

func localDiscountedCapitalInvestment(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, t, y := ix.At(0), ix.At(1), ix.At(2)
	if !m.gated(l, t) {
		return linear.Skip(linear.SkipHub), nil
	}
	f := m.Axis.CapitalFactor(m.locationRate(l), y)
	e := linear.NewExpr().
		Add(1, linear.V(variable.LocalDiscountedCapitalInvestment, l, t, y)).
		Add(-f, linear.V(variable.LocalCapitalInvestment, l, t, y))
	return eq(e, 0), nil
}

func discountedCapitalInvestment(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, t, y := ix.At(0), ix.At(1), ix.At(2)
	e := linear.NewExpr().Add(1, linear.V(variable.DiscountedCapitalInvestment, r, t, y))
	m.regional(e, r, m.Hub.Relevant(t), variable.LocalDiscountedCapitalInvestment, t, y)
	return eq(e, 0), nil
}

func salvageValue(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, t, y := ix.At(0), ix.At(1), ix.At(2)
	method := m.par(param.DepreciationMethod).Get(r)
	life := m.par(param.OperationalLife).Get(r, t)
	rate := m.par(param.DiscountRate).Get(r)

	credit, err := m.Axis.Salvage(y, method, life, rate, m.Opts.SalvageOffset)
	if err != nil {
		return linear.Result{}, fmt.Errorf("salvage value: %w", err)
	}
	if credit.Clamped {
		m.logger.Debug("Salvage fraction clamped to zero.",
			"region", m.Sets.MustGet(sets.Region).Member(r),
			"technology", m.Sets.MustGet(sets.Technology).Member(t),
			"year", m.Sets.MustGet(sets.Year).Member(y),
			"formula", credit.Formula,
			"offset", m.Opts.SalvageOffset.String())
	}
	e := linear.NewExpr().Add(1, linear.V(variable.SalvageValue, r, t, y))
	if credit.Case != finance.CaseZero {
		cost := m.par(param.CapitalCost).Get(r, t, y)
		e.Add(-cost*credit.Fraction, linear.V(variable.NewCapacity, r, t, y))
	}
	return eq(e, 0), nil
}

func discountedSalvageValue(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, t, y := ix.At(0), ix.At(1), ix.At(2)
	f := m.Axis.SalvageFactor(m.par(param.DiscountRate).Get(r))
	e := linear.NewExpr().
		Add(1, linear.V(variable.DiscountedSalvageValue, r, t, y)).
		Add(-f, linear.V(variable.SalvageValue, r, t, y))
	return eq(e, 0), nil
}

func variableOperatingCost(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, t, y := ix.At(0), ix.At(1), ix.At(2)
	if !m.gated(l, t) {
		return linear.Skip(linear.SkipHub), nil
	}
	vc := m.par(param.VariableCost)
	e := linear.NewExpr().Add(1, linear.V(variable.LocalVariableOperatingCost, l, t, y))
	for _, mo := range m.Modes(t) {
		w := m.G(l, func(r int) float64 { return vc.Get(r, t, mo, y) })
		e.Add(-w, linear.V(variable.LocalActivityByMode, l, t, mo, y))
	}
	return eq(e, 0), nil
}

func fixedOperatingCost(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, t, y := ix.At(0), ix.At(1), ix.At(2)
	if !m.gated(l, t) {
		return linear.Skip(linear.SkipHub), nil
	}
	fc := m.par(param.FixedCost)
	w := m.G(l, func(r int) float64 { return fc.Get(r, t, y) })
	e := linear.NewExpr().
		Add(1, linear.V(variable.LocalFixedOperatingCost, l, t, y)).
		Add(-w, linear.V(variable.LocalTotalCapacity, l, t, y))
	return eq(e, 0), nil
}

func operatingCost(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, t, y := ix.At(0), ix.At(1), ix.At(2)
	if !m.gated(l, t) {
		return linear.Skip(linear.SkipHub), nil
	}
	e := linear.NewExpr().
		Add(1, linear.V(variable.LocalOperatingCost, l, t, y)).
		Add(-1, linear.V(variable.LocalFixedOperatingCost, l, t, y)).
		Add(-1, linear.V(variable.LocalVariableOperatingCost, l, t, y))
	return eq(e, 0), nil
}

func localDiscountedOperatingCost(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, t, y := ix.At(0), ix.At(1), ix.At(2)
	if !m.gated(l, t) {
		return linear.Skip(linear.SkipHub), nil
	}
	f := m.Axis.MidIntervalFactor(m.locationRate(l), y)
	e := linear.NewExpr().
		Add(1, linear.V(variable.LocalDiscountedOperatingCost, l, t, y)).
		Add(-f, linear.V(variable.LocalOperatingCost, l, t, y))
	return eq(e, 0), nil
}

func discountedOperatingCost(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, t, y := ix.At(0), ix.At(1), ix.At(2)
	e := linear.NewExpr().Add(1, linear.V(variable.DiscountedOperatingCost, r, t, y))
	m.regional(e, r, m.Hub.Relevant(t), variable.LocalDiscountedOperatingCost, t, y)
	return eq(e, 0), nil
}
