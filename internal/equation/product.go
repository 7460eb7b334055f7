package equation

import (
	"iter"

	"github.com/wupperinst/itom/internal/labels"
	"github.com/wupperinst/itom/internal/linear"
	"github.com/wupperinst/itom/internal/param"
	"github.com/wupperinst/itom/internal/sets"
	"github.com/wupperinst/itom/internal/variable"
)

// flow names the parameters and variables of one side of the product
// balance. Production and use are built by the same rules.
type flow struct {
	link         string // ProductFromTechnology or ProductToTechnology
	ratio        string // Output- or InputActivityRatio
	byMode       string
	byTechnology string
	local        string
	regional     string
}

var (
	production = flow{
		link:         param.ProductFromTechnology,
		ratio:        param.OutputActivityRatio,
		byMode:       variable.LocalProductionByMode,
		byTechnology: variable.LocalProductionByTechnology,
		local:        variable.LocalProduction,
		regional:     variable.Production,
	}
	use = flow{
		link:         param.ProductToTechnology,
		ratio:        param.InputActivityRatio,
		byMode:       variable.LocalUseByMode,
		byTechnology: variable.LocalUseByTechnology,
		local:        variable.LocalUse,
		regional:     variable.Use,
	}
)

func productFamilies() []Family {
	lptmy := sig(sets.Location, sets.Product, sets.Technology, sets.Mode, sets.Year)
	lpty := sig(sets.Location, sets.Product, sets.Technology, sets.Year)
	lpy := sig(sets.Location, sets.Product, sets.Year)
	rpy := sig(sets.Region, sets.Product, sets.Year)

	var out []Family
	for _, side := range []struct {
		names [4]string
		f     flow
	}{
		{[4]string{"PB1_Production_1", "PB2_Production_2", "PB3_Production_3", "PB4_Production_4"}, production},
		{[4]string{"PB5_Use_1", "PB6_Use_2", "PB7_Use_3", "PB8_Use_4"}, use},
	} {
		f := side.f
		out = append(out,
			Family{Name: side.names[0], Signature: lptmy, Enumerate: f.linkedByMode, Rule: f.byModeRule},
			Family{Name: side.names[1], Signature: lpty, Enumerate: f.linked, Rule: f.byTechnologyRule},
			Family{Name: side.names[2], Signature: lpy, Rule: f.localRule},
			Family{Name: side.names[3], Signature: rpy, Rule: f.regionalRule},
		)
	}
	out = append(out, Family{Name: "PB9_ProductBalance", Signature: rpy, Rule: productBalance})
	return out
}

// linked yields (l, p, t, y) for technologies linked to p.
func (f flow) linked(m *Model) iter.Seq[labels.Tuple] {
	link := m.par(f.link)
	nl, np, nt, ny := m.n(sets.Location), m.n(sets.Product), m.n(sets.Technology), m.n(sets.Year)
	return func(yield func(labels.Tuple) bool) {
		for l := 0; l < nl; l++ {
			for p := 0; p < np; p++ {
				for t := 0; t < nt; t++ {
					if !link.Is(t, p) {
						continue
					}
					for y := 0; y < ny; y++ {
						if !yield(labels.T(l, p, t, y)) {
							return
						}
					}
				}
			}
		}
	}
}

// linkedByMode yields (l, p, t, m, y) for technologies linked to p and their
// valid modes.
func (f flow) linkedByMode(m *Model) iter.Seq[labels.Tuple] {
	link := m.par(f.link)
	nl, np, nt, ny := m.n(sets.Location), m.n(sets.Product), m.n(sets.Technology), m.n(sets.Year)
	return func(yield func(labels.Tuple) bool) {
		for l := 0; l < nl; l++ {
			for p := 0; p < np; p++ {
				for t := 0; t < nt; t++ {
					if !link.Is(t, p) {
						continue
					}
					for _, mo := range m.Modes(t) {
						for y := 0; y < ny; y++ {
							if !yield(labels.T(l, p, t, mo, y)) {
								return
							}
						}
					}
				}
			}
		}
	}
}

func (f flow) byModeRule(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, p, t, mo, y := ix.At(0), ix.At(1), ix.At(2), ix.At(3), ix.At(4)
	if !m.par(param.ModeForTechnology).Is(t, mo) || !m.par(f.link).Is(t, p) {
		return linear.Skip(linear.SkipCategory), nil
	}
	if !m.gated(l, t) {
		return linear.Skip(linear.SkipHub), nil
	}
	ratio := m.par(f.ratio)
	w := m.G(l, func(r int) float64 { return ratio.Get(r, t, p, mo, y) })
	e := linear.NewExpr().
		Add(1, linear.V(f.byMode, l, t, p, mo, y)).
		Add(-w, linear.V(variable.LocalActivityByMode, l, t, mo, y))
	return eq(e, 0), nil
}

func (f flow) byTechnologyRule(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, p, t, y := ix.At(0), ix.At(1), ix.At(2), ix.At(3)
	if !m.par(f.link).Is(t, p) {
		return linear.Skip(linear.SkipCategory), nil
	}
	if !m.gated(l, t) {
		return linear.Skip(linear.SkipHub), nil
	}
	e := linear.NewExpr().Add(1, linear.V(f.byTechnology, l, t, p, y))
	for _, mo := range m.Modes(t) {
		e.Add(-1, linear.V(f.byMode, l, t, p, mo, y))
	}
	return eq(e, 0), nil
}

// localRule sums over the technologies on the same side of the hub split as l.
func (f flow) localRule(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, p, y := ix.At(0), ix.At(1), ix.At(2)
	link := m.par(f.link)
	e := linear.NewExpr().Add(1, linear.V(f.local, l, p, y))
	for t := 0; t < m.n(sets.Technology); t++ {
		if link.Is(t, p) && m.Hub.IsHubTechnology(t) == m.Hub.IsHubLocation(l) {
			e.Add(-1, linear.V(f.byTechnology, l, t, p, y))
		}
	}
	return eq(e, 0), nil
}

// Regional production and use count regular locations only; hubs pass
// product through.
func (f flow) regionalRule(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, p, y := ix.At(0), ix.At(1), ix.At(2)
	e := linear.NewExpr().Add(1, linear.V(f.regional, r, p, y))
	m.regional(e, r, m.Hub.RegularLocations(), f.local, p, y)
	return eq(e, 0), nil
}

func productBalance(m *Model, ix labels.Tuple) (linear.Result, error) {
	r, p, y := ix.At(0), ix.At(1), ix.At(2)
	e := linear.NewExpr().
		Add(1, linear.V(variable.Production, r, p, y)).
		Add(1, linear.V(variable.Import, r, p, y)).
		Add(-1, linear.V(variable.Export, r, p, y))
	return linear.Emit(e, linear.GE, m.par(param.Demand).Get(r, p, y)), nil
}
