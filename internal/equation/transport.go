package equation

import (
	"iter"
	"slices"

	"github.com/wupperinst/itom/internal/labels"
	"github.com/wupperinst/itom/internal/linear"
	"github.com/wupperinst/itom/internal/param"
	"github.com/wupperinst/itom/internal/sets"
	"github.com/wupperinst/itom/internal/variable"
)

func transportFamilies() []Family {
	lpy := sig(sets.Location, sets.Product, sets.Year)
	rpy := sig(sets.Region, sets.Product, sets.Year)
	return []Family{
		{
			Name:      "TF1a_Transport_1a",
			Signature: sig(sets.Location, sets.Location, sets.Product, sets.TransportMode, sets.Year),
			Enumerate: singlePurposeRoutes,
			Rule:      singlePurposeCapacity,
		},
		{
			Name:      "TF1b_Transport_1b",
			Signature: sig(sets.Location, sets.Location, sets.TransportMode, sets.Year),
			Enumerate: multiPurposeLinks,
			Rule:      multiPurposeCapacity,
		},
		{Name: "TF2_Transport_2", Signature: lpy, Rule: shippedFromProduction},
		{Name: "TF3_Transport_3", Signature: lpy, Rule: receivedIntoUse},
		{Name: "TF4_Imports", Signature: rpy, Rule: imports},
		{Name: "TF5_Exports", Signature: rpy, Rule: exports},
	}
}

func transport(from, to, p, tr, y int) linear.Ref {
	return linear.V(variable.Transport, from, to, p, tr, y)
}

func singlePurposeRoutes(m *Model) iter.Seq[labels.Tuple] {
	mpt := m.par(param.MultiPurposeTransport)
	routes := m.Routes.Routes()
	return func(yield func(labels.Tuple) bool) {
		for _, rt := range routes {
			if mpt.Is(rt.At(3)) {
				continue
			}
			if !yield(rt) {
				return
			}
		}
	}
}

// A route used in both directions shares one capacity; the row for the
// reverse tuple is emitted from its own forward route.
func singlePurposeCapacity(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, ll, p, tr, y := ix.At(0), ix.At(1), ix.At(2), ix.At(3), ix.At(4)
	if m.par(param.MultiPurposeTransport).Is(tr) {
		return linear.Skip(linear.SkipCategory), nil
	}
	forward := m.Routes.Has(l, ll, p, tr, y)
	if !forward {
		return linear.Skip(linear.SkipStructural), nil
	}
	capacity := m.par(param.TransportCapacity).Get(l, ll, p, tr, y)
	rhs := capacity * m.par(param.TransportCapacityToActivity).Get(tr)

	e := linear.NewExpr().Add(1, transport(l, ll, p, tr, y))
	if m.Routes.Has(ll, l, p, tr, y) {
		e.Add(1, transport(ll, l, p, tr, y))
	}
	return m.bound(e, linear.LE, rhs, m.unbounded(capacity)), nil
}

func multiPurposeLinks(m *Model) iter.Seq[labels.Tuple] {
	mpt := m.par(param.MultiPurposeTransport)
	var links []labels.Tuple
	seen := make(map[labels.Tuple]struct{})
	for _, rt := range m.Routes.Routes() {
		if !mpt.Is(rt.At(3)) {
			continue
		}
		key := labels.T(rt.At(0), rt.At(1), rt.At(3), rt.At(4))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		links = append(links, key)
	}
	slices.SortFunc(links, func(a, b labels.Tuple) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return slices.Values(links)
}

// All products carried by a multi-purpose mode share one pooled capacity.
// The capacity is given per product, so the mean over the carried products
// is used.
func multiPurposeCapacity(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, ll, tr, y := ix.At(0), ix.At(1), ix.At(2), ix.At(3)
	if !m.par(param.MultiPurposeTransport).Is(tr) {
		return linear.Skip(linear.SkipCategory), nil
	}
	capacity := m.par(param.TransportCapacity)
	tca := m.par(param.TransportCapacityToActivity).Get(tr)

	e := linear.NewExpr()
	var to int
	var sum float64
	saturated := false
	for p := 0; p < m.n(sets.Product); p++ {
		if !m.Routes.Has(l, ll, p, tr, y) {
			continue
		}
		to++
		c := capacity.Get(l, ll, p, tr, y)
		saturated = saturated || m.unbounded(c)
		sum += c * tca
		e.Add(1, transport(l, ll, p, tr, y))
	}
	if to == 0 {
		return linear.Skip(linear.SkipStructural), nil
	}
	for p := 0; p < m.n(sets.Product); p++ {
		if m.Routes.Has(ll, l, p, tr, y) {
			e.Add(1, transport(ll, l, p, tr, y))
		}
	}
	return m.bound(e, linear.LE, sum/float64(to), saturated), nil
}

// A regular location may ship less than it produces; a hub forwards
// everything it handles.
func shippedFromProduction(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, p, y := ix.At(0), ix.At(1), ix.At(2)
	e := linear.NewExpr()
	for _, link := range m.Routes.Outgoing(l, p, y) {
		e.Add(1, transport(l, link.Peer, p, link.Mode, y))
	}
	e.Add(-1, linear.V(variable.LocalProduction, l, p, y))
	if m.Hub.IsHubLocation(l) {
		return eq(e, 0), nil
	}
	return linear.Emit(e, linear.LE, 0), nil
}

func receivedIntoUse(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, p, y := ix.At(0), ix.At(1), ix.At(2)
	e := linear.NewExpr()
	for _, link := range m.Routes.Incoming(l, p, y) {
		e.Add(1, transport(link.Peer, l, p, link.Mode, y))
	}
	e.Add(-1, linear.V(variable.LocalUse, l, p, y))
	return eq(e, 0), nil
}

// crossShare is the part of a flow between l and peer that crosses the border
// of region r, Geo(r,l)*(1-Geo(r,peer)). It is 0 or 1 for whole locations.
func (m *Model) crossShare(r, l, peer int) float64 {
	return m.Hub.Geo(r, l) * (1 - m.Hub.Geo(r, peer))
}

func imports(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, p, y := ix.At(0), ix.At(1), ix.At(2)
	e := linear.NewExpr().Add(1, linear.V(variable.Import, r, p, y))
	for _, l := range m.Hub.Members(r) {
		for _, link := range m.Routes.Incoming(l, p, y) {
			if w := m.crossShare(r, l, link.Peer); w != 0 {
				e.Add(-w, transport(link.Peer, l, p, link.Mode, y))
			}
		}
	}
	return eq(e, 0), nil
}

func exports(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, p, y := ix.At(0), ix.At(1), ix.At(2)
	e := linear.NewExpr().Add(1, linear.V(variable.Export, r, p, y))
	for _, l := range m.Hub.Members(r) {
		for _, link := range m.Routes.Outgoing(l, p, y) {
			if w := m.crossShare(r, l, link.Peer); w != 0 {
				e.Add(-w, transport(l, link.Peer, p, link.Mode, y))
			}
		}
	}
	return eq(e, 0), nil
}
