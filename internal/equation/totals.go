package equation

import (
	"github.com/wupperinst/itom/internal/labels"
	"github.com/wupperinst/itom/internal/linear"
	"github.com/wupperinst/itom/internal/param"
	"github.com/wupperinst/itom/internal/sets"
	"github.com/wupperinst/itom/internal/variable"
)

func transportCostFamilies() []Family {
	lpy := sig(sets.Location, sets.Product, sets.Year)
	return []Family{
		{Name: "TC1_LocalTransportCosts", Signature: lpy, Rule: localTransportCost},
		{Name: "TC2_DiscountedLocalTransportCosts", Signature: lpy, Rule: localDiscountedTransportCost},
		{Name: "TC3_DiscountedTransportCostsByProduct", Signature: sig(sets.Region, sets.Product, sets.Year), Rule: discountedTransportCostByProduct},
		{Name: "TC4_DiscountedTransportCostsTotalAnnual", Signature: sig(sets.Region, sets.Year), Rule: discountedTransportCost},
	}
}

func totalCostFamilies() []Family {
	return []Family{
		{Name: "TDC1_TotalDiscountedCostByTechnology", Signature: sig(sets.Region, sets.Year), Rule: totalDiscountedCost},
		{Name: "TDC2_ModelPeriodCostByRegion", Signature: sig(sets.Region), Rule: modelPeriodCostByRegion},
		{Name: "TDC3_ModelPeriodCost", Signature: sig(), Rule: modelPeriodCost},
	}
}

// Transport is paid at the receiving location. Between two hubs the
// inter-regional tariff of the source and destination regions applies on top.
func localTransportCost(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, p, y := ix.At(0), ix.At(1), ix.At(2)
	byMode := m.par(param.TransportCostByMode)

	e := linear.NewExpr().Add(1, linear.V(variable.LocalTransportCost, l, p, y))
	for _, link := range m.Routes.Incoming(l, p, y) {
		tr := link.Mode
		w := m.G(l, func(r int) float64 { return byMode.Get(r, tr, y) })
		e.Add(-w, transport(link.Peer, l, p, tr, y))
	}
	if m.Hub.Enabled() && m.Hub.IsHubLocation(l) {
		interReg := m.par(param.TransportCostInterReg)
		for _, link := range m.Routes.Incoming(l, p, y) {
			ll, tr := link.Peer, link.Mode
			if !m.Hub.IsHubLocation(ll) {
				continue
			}
			var w float64
			for _, r := range m.regionsOf[l] {
				for _, rr := range m.regionsOf[ll] {
					w += interReg.Get(rr, r, tr, y) * m.Hub.Geo(r, l) * m.Hub.Geo(rr, ll)
				}
			}
			e.Add(-w, transport(ll, l, p, tr, y))
		}
	}
	return eq(e, 0), nil
}

func localDiscountedTransportCost(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, p, y := ix.At(0), ix.At(1), ix.At(2)
	f := m.Axis.MidIntervalFactor(m.locationRate(l), y)
	e := linear.NewExpr().
		Add(1, linear.V(variable.LocalDiscountedTransportCost, l, p, y)).
		Add(-f, linear.V(variable.LocalTransportCost, l, p, y))
	return eq(e, 0), nil
}

func discountedTransportCostByProduct(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, p, y := ix.At(0), ix.At(1), ix.At(2)
	e := linear.NewExpr().Add(1, linear.V(variable.DiscountedTransportCostByProduct, r, p, y))
	m.regional(e, r, m.Hub.Members(r), variable.LocalDiscountedTransportCost, p, y)
	return eq(e, 0), nil
}

func discountedTransportCost(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, y := ix.At(0), ix.At(1)
	e := linear.NewExpr().Add(1, linear.V(variable.DiscountedTransportCost, r, y))
	for p := 0; p < m.n(sets.Product); p++ {
		e.Add(-1, linear.V(variable.DiscountedTransportCostByProduct, r, p, y))
	}
	return eq(e, 0), nil
}

func totalDiscountedCost(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, y := ix.At(0), ix.At(1)
	e := linear.NewExpr().Add(1, linear.V(variable.TotalDiscountedCost, r, y))
	for t := 0; t < m.n(sets.Technology); t++ {
		e.Add(-1, linear.V(variable.DiscountedOperatingCost, r, t, y)).
			Add(-1, linear.V(variable.DiscountedCapitalInvestment, r, t, y)).
			Add(-1, linear.V(variable.DiscountedTechnologyEmissionsPenalty, r, t, y)).
			Add(1, linear.V(variable.DiscountedSalvageValue, r, t, y))
	}
	e.Add(-1, linear.V(variable.DiscountedTransportCost, r, y))
	return eq(e, 0), nil
}

func modelPeriodCostByRegion(m *Model, ix labels.Tuple) (linear.Result, error) {
	r := ix.At(0)
	e := linear.NewExpr().Add(1, linear.V(variable.ModelPeriodCostByRegion, r))
	for y := 0; y < m.n(sets.Year); y++ {
		e.Add(-1, linear.V(variable.TotalDiscountedCost, r, y))
	}
	return eq(e, 0), nil
}

func modelPeriodCost(m *Model, _ labels.Tuple) (linear.Result, error) {
	e := linear.NewExpr().Add(1, linear.V(variable.ModelPeriodCost))
	for r := 0; r < m.n(sets.Region); r++ {
		e.Add(-1, linear.V(variable.ModelPeriodCostByRegion, r))
	}
	return eq(e, 0), nil
}
