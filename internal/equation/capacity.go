package equation

import (
	"github.com/wupperinst/itom/internal/labels"
	"github.com/wupperinst/itom/internal/linear"
	"github.com/wupperinst/itom/internal/param"
	"github.com/wupperinst/itom/internal/sets"
	"github.com/wupperinst/itom/internal/variable"
)

func capacityFamilies() []Family {
	rty := sig(sets.Region, sets.Technology, sets.Year)
	lty := sig(sets.Location, sets.Technology, sets.Year)
	return []Family{
		{Name: "CA0_NewCapacity", Signature: rty, Rule: newCapacity},
		{Name: "CA1_TotalNewCapacity_1", Signature: lty, Rule: localAccumulatedNewCapacity},
		{Name: "CA2_TotalNewCapacity_2", Signature: rty, Rule: accumulatedNewCapacity},
		{Name: "CA3_TotalAnnualCapacity_1", Signature: lty, Rule: localTotalCapacity},
		{Name: "CA4_TotalAnnualCapacity_2", Signature: rty, Rule: totalCapacity},
		{Name: "CA5_ConstraintCapacity", Signature: lty, Rule: capacityLimitsActivity},
	}
}

func newCapacity(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, t, y := ix.At(0), ix.At(1), ix.At(2)
	e := linear.NewExpr().Add(1, linear.V(variable.NewCapacity, r, t, y))
	m.regional(e, r, m.Hub.Relevant(t), variable.LocalNewCapacity, t, y)
	return eq(e, 0), nil
}

// Capacity built in yy is still in service in y while y-yy is below the
// operational life.
func localAccumulatedNewCapacity(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, t, y := ix.At(0), ix.At(1), ix.At(2)
	if !m.gated(l, t) {
		return linear.Skip(linear.SkipHub), nil
	}
	ol := m.par(param.OperationalLife)
	life := m.G(l, func(r int) float64 { return ol.Get(r, t) })

	e := linear.NewExpr().Add(1, linear.V(variable.LocalAccumulatedNewCapacity, l, t, y))
	for yy := 0; yy <= y; yy++ {
		if float64(m.Axis.Year(y)-m.Axis.Year(yy)) < life {
			e.Add(-1, linear.V(variable.LocalNewCapacity, l, t, yy))
		}
	}
	return eq(e, 0), nil
}

func accumulatedNewCapacity(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, t, y := ix.At(0), ix.At(1), ix.At(2)
	e := linear.NewExpr().Add(1, linear.V(variable.AccumulatedNewCapacity, r, t, y))
	m.regional(e, r, m.Hub.Relevant(t), variable.LocalAccumulatedNewCapacity, t, y)
	return eq(e, 0), nil
}

func localTotalCapacity(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, t, y := ix.At(0), ix.At(1), ix.At(2)
	if !m.gated(l, t) {
		return linear.Skip(linear.SkipHub), nil
	}
	e := linear.NewExpr().
		Add(1, linear.V(variable.LocalAccumulatedNewCapacity, l, t, y)).
		Add(-1, linear.V(variable.LocalTotalCapacity, l, t, y))
	return eq(e, -m.par(param.LocalResidualCapacity).Get(l, t, y)), nil
}

func totalCapacity(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, t, y := ix.At(0), ix.At(1), ix.At(2)
	e := linear.NewExpr().Add(1, linear.V(variable.TotalCapacity, r, t, y))
	m.regional(e, r, m.Hub.Relevant(t), variable.LocalTotalCapacity, t, y)
	return eq(e, 0), nil
}

func capacityLimitsActivity(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, t, y := ix.At(0), ix.At(1), ix.At(2)
	if !m.gated(l, t) {
		return linear.Skip(linear.SkipHub), nil
	}
	af := m.par(param.AvailabilityFactor)
	cau := m.par(param.CapacityToActivityUnit)
	w := m.G(l, func(r int) float64 { return af.Get(r, t, y) * cau.Get(r, t) })

	e := linear.NewExpr().
		Add(1, linear.V(variable.LocalActivity, l, t, y)).
		Add(-w, linear.V(variable.LocalTotalCapacity, l, t, y))
	return linear.Emit(e, linear.LE, 0), nil
}
