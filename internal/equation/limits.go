package equation

import (
	"github.com/wupperinst/itom/internal/labels"
	"github.com/wupperinst/itom/internal/linear"
	"github.com/wupperinst/itom/internal/param"
	"github.com/wupperinst/itom/internal/sets"
	"github.com/wupperinst/itom/internal/variable"
)

func limitFamilies() []Family {
	rty := sig(sets.Region, sets.Technology, sets.Year)
	lty := sig(sets.Location, sets.Technology, sets.Year)
	return []Family{
		{Name: "TCC1_TotalAnnualMaxCapacityConstraint", Signature: rty, Rule: upper(variable.TotalCapacity, param.TotalAnnualMaxCapacity, false)},
		{Name: "TCC2_TotalAnnualMinCapacityConstraint", Signature: rty, Rule: lower(variable.TotalCapacity, param.TotalAnnualMinCapacity, false)},
		{Name: "NCC1_LocalTotalAnnualMaxNewCapacityConstraint", Signature: lty, Rule: upper(variable.LocalNewCapacity, param.LocalTotalAnnualMaxCapacityInvestment, true)},
		{Name: "NCC2_LocalTotalAnnualMinNewCapacityConstraint", Signature: lty, Rule: lower(variable.LocalNewCapacity, param.LocalTotalAnnualMinCapacityInvestment, true)},
	}
}

func activityFamilies() []Family {
	rty := sig(sets.Region, sets.Technology, sets.Year)
	rt := sig(sets.Region, sets.Technology)
	return []Family{
		{Name: "AAC0_LocalAnnualTechnologyActivity", Signature: sig(sets.Location, sets.Technology, sets.Year), Rule: localActivity},
		{Name: "AAC1_TotalAnnualTechnologyActivity", Signature: rty, Rule: annualActivity},
		{Name: "AAC2_TotalAnnualTechnologyActivityUpperlimit", Signature: rty, Rule: upper(variable.Activity, param.TotalTechnologyAnnualActivityUpperLimit, false)},
		{Name: "AAC3_TotalAnnualTechnologyActivityLowerlimit", Signature: rty, Rule: lower(variable.Activity, param.TotalTechnologyAnnualActivityLowerLimit, false)},
		{Name: "TAC1_TotalModelHorizonTechnologyActivity", Signature: rt, Rule: modelPeriodActivity},
		{Name: "TAC2_TotalModelHorizonTechnologyActivityUpperLimit", Signature: rt, Rule: upper(variable.ModelPeriodActivity, param.TotalTechnologyModelPeriodActivityUpperLimit, false)},
		{Name: "TAC3_TotalModelHorizonTechnologyActivityLowerLimit", Signature: rt, Rule: lower(variable.ModelPeriodActivity, param.TotalTechnologyModelPeriodActivityLowerLimit, false)},
	}
}

// upper bounds a variable indexed like the family by a parameter indexed the
// same way. A sentinel limit has no effect. With local set, the first two
// index positions are a (location, technology) pair subject to the hub split.
func upper(name, limit string, local bool) Rule {
	return func(m *Model, ix labels.Tuple) (linear.Result, error) {
		if local && !m.gated(ix.At(0), ix.At(1)) {
			return linear.Skip(linear.SkipHub), nil
		}
		v := m.par(limit).At(ix)
		e := linear.NewExpr().Add(1, linear.Ref{Var: name, Tuple: ix})
		return m.bound(e, linear.LE, v, m.unbounded(v)), nil
	}
}

// lower is the counterpart of upper. A zero floor on a non-negative variable
// has no effect.
func lower(name, limit string, local bool) Rule {
	return func(m *Model, ix labels.Tuple) (linear.Result, error) {
		if local && !m.gated(ix.At(0), ix.At(1)) {
			return linear.Skip(linear.SkipHub), nil
		}
		v := m.par(limit).At(ix)
		e := linear.NewExpr().Add(1, linear.Ref{Var: name, Tuple: ix})
		return m.bound(e, linear.GE, v, v == 0), nil
	}
}

func localActivity(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, t, y := ix.At(0), ix.At(1), ix.At(2)
	if !m.gated(l, t) {
		return linear.Skip(linear.SkipHub), nil
	}
	e := linear.NewExpr().Add(1, linear.V(variable.LocalActivity, l, t, y))
	for _, mo := range m.Modes(t) {
		e.Add(-1, linear.V(variable.LocalActivityByMode, l, t, mo, y))
	}
	return eq(e, 0), nil
}

func annualActivity(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, t, y := ix.At(0), ix.At(1), ix.At(2)
	e := linear.NewExpr().Add(1, linear.V(variable.Activity, r, t, y))
	m.regional(e, r, m.Hub.Relevant(t), variable.LocalActivity, t, y)
	return eq(e, 0), nil
}

func modelPeriodActivity(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, t := ix.At(0), ix.At(1)
	e := linear.NewExpr().Add(1, linear.V(variable.ModelPeriodActivity, r, t))
	for y := 0; y < m.n(sets.Year); y++ {
		e.Add(-1, linear.V(variable.Activity, r, t, y))
	}
	return eq(e, 0), nil
}
