package equation

import (
	"iter"

	"github.com/wupperinst/itom/internal/capability"
	"github.com/wupperinst/itom/internal/labels"
	"github.com/wupperinst/itom/internal/linear"
	"github.com/wupperinst/itom/internal/param"
	"github.com/wupperinst/itom/internal/sets"
	"github.com/wupperinst/itom/internal/variable"
)

func impurityFamilies() []Family {
	return []Family{
		{
			Name:      "IP1_ImpuritiesInProductsLimit",
			Signature: sig(sets.Location, sets.Technology, sets.Product, sets.Year),
			Requires:  capability.Set{Impurities: true},
			Enumerate: impurityCandidates,
			Rule:      impurityLimit,
		},
	}
}

// mainProduct is the first product other than i that t produces.
func (m *Model) mainProduct(t, i int) (int, bool) {
	pft := m.par(param.ProductFromTechnology)
	for p := 0; p < m.n(sets.Product); p++ {
		if p != i && pft.Is(t, p) {
			return p, true
		}
	}
	return 0, false
}

func impurityCandidates(m *Model) iter.Seq[labels.Tuple] {
	pft := m.par(param.ProductFromTechnology)
	nl, nt, np, ny := m.n(sets.Location), m.n(sets.Technology), m.n(sets.Product), m.n(sets.Year)
	return func(yield func(labels.Tuple) bool) {
		for l := 0; l < nl; l++ {
			for t := 0; t < nt; t++ {
				for i := 0; i < np; i++ {
					if !pft.Is(t, i) {
						continue
					}
					if _, ok := m.mainProduct(t, i); !ok {
						continue
					}
					for y := 0; y < ny; y++ {
						if !yield(labels.T(l, t, i, y)) {
							return
						}
					}
				}
			}
		}
	}
}

// impurityLimit bounds the output of by-product i relative to the main
// product of the same technology.
func impurityLimit(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, t, i, y := ix.At(0), ix.At(1), ix.At(2), ix.At(3)
	if !m.par(param.ProductFromTechnology).Is(t, i) {
		return linear.Skip(linear.SkipCategory), nil
	}
	p, ok := m.mainProduct(t, i)
	if !ok {
		return linear.Skip(linear.SkipStructural), nil
	}
	limit := m.par(param.MaxImpurity).Get(p, i)
	if m.unbounded(limit) {
		e := linear.NewExpr().Add(1, linear.V(variable.LocalProductionByTechnology, l, t, i, y))
		return m.bound(e, linear.LE, limit, true), nil
	}
	e := linear.NewExpr().
		Add(1, linear.V(variable.LocalProductionByTechnology, l, t, i, y)).
		Add(-limit, linear.V(variable.LocalProductionByTechnology, l, t, p, y))
	return linear.Emit(e, linear.LE, 0), nil
}
