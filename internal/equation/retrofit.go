package equation

import (
	"fmt"
	"math"

	"github.com/wupperinst/itom/internal/capability"
	"github.com/wupperinst/itom/internal/finance"
	"github.com/wupperinst/itom/internal/labels"
	"github.com/wupperinst/itom/internal/linear"
	"github.com/wupperinst/itom/internal/param"
	"github.com/wupperinst/itom/internal/sets"
	"github.com/wupperinst/itom/internal/variable"
)

func retrofitFamilies() []Family {
	lty := sig(sets.Location, sets.Technology, sets.Year)
	req := capability.Set{Retrofit: true}
	return []Family{
		{Name: "R1_RetrofitPotentialFromResidualCapacity", Signature: lty, Requires: req, Rule: retrofitFromResidual},
		{Name: "R2_RetrofitPotentialFromNewCapacity", Signature: lty, Requires: req, Rule: retrofitFromNew},
		{Name: "R3_RetrofitCapacityConstraint", Signature: lty, Requires: req, Rule: retrofitCapacity},
	}
}

// retrofitSkip applies the skips shared by R1 and R2.
func (m *Model) retrofitSkip(l, t, y int) (linear.Result, bool) {
	if m.Hub.IsHubLocation(l) {
		return linear.Skip(linear.SkipHub), true
	}
	if y == 0 || !m.par(param.TechnologyToRetrofit).Is(t) {
		return linear.Skip(linear.SkipCategory), true
	}
	return linear.Result{}, false
}

// previousYear returns the ordinal of y - TimeStep(y).
func (m *Model) previousYear(y int) (int, error) {
	step := m.Axis.Step(y)
	prev := float64(m.Axis.Year(y)) - step
	if prev != math.Trunc(prev) {
		return 0, &finance.PreconditionError{What: "time step", Detail: fmt.Sprintf("TimeStep(%d) = %g is not a whole number of years", m.Axis.Year(y), step)}
	}
	pos, ok := m.Axis.Pos(int(prev))
	if !ok {
		return 0, &finance.PreconditionError{What: "time step", Detail: fmt.Sprintf("%d - TimeStep = %d is not a model year", m.Axis.Year(y), int(prev))}
	}
	return pos, nil
}

// Residual capacity retired since the previous model year may be retrofitted.
func retrofitFromResidual(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, t, y := ix.At(0), ix.At(1), ix.At(2)
	if res, skip := m.retrofitSkip(l, t, y); skip {
		return res, nil
	}
	prev, err := m.previousYear(y)
	if err != nil {
		return linear.Result{}, err
	}
	lrc := m.par(param.LocalResidualCapacity)
	retired := math.Max(lrc.Get(l, t, prev)-lrc.Get(l, t, y), 0)
	e := linear.NewExpr().Add(1, linear.V(variable.PotentialRetrofitFromResidual, l, t, y))
	return eq(e, retired), nil
}

// New capacity reaching its end of life in y may be retrofitted.
func retrofitFromNew(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, t, y := ix.At(0), ix.At(1), ix.At(2)
	if res, skip := m.retrofitSkip(l, t, y); skip {
		return res, nil
	}
	ol := m.par(param.OperationalLife)
	life := m.G(l, func(r int) float64 { return ol.Get(r, t) })

	e := linear.NewExpr().Add(1, linear.V(variable.PotentialRetrofitFromNew, l, t, y))
	for yy := 0; yy < y; yy++ {
		if float64(m.Axis.Year(y)-m.Axis.Year(yy)) == life {
			e.Add(-1, linear.V(variable.LocalNewCapacity, l, t, yy))
		}
	}
	return eq(e, 0), nil
}

// retrofitCapacity caps the new capacity of a retrofit technology, together
// with the other retrofit options competing for the same base technologies,
// at the retrofit potential of those base technologies plus a slack.
func retrofitCapacity(m *Model, ix labels.Tuple) (linear.Result, error) {
	l, t, y := ix.At(0), ix.At(1), ix.At(2)
	if m.Hub.IsHubLocation(l) {
		return linear.Skip(linear.SkipHub), nil
	}
	rt := m.par(param.RetrofitTechnology)
	if !rt.Is(t) {
		return linear.Skip(linear.SkipCategory), nil
	}
	e := linear.NewExpr().Add(1, linear.V(variable.LocalNewCapacity, l, t, y))
	if y == 0 {
		return eq(e, 0), nil
	}

	match := m.par(param.MatchTechnologyRetrofit)
	nt := m.n(sets.Technology)
	var relevant []int
	for tech := 0; tech < nt; tech++ {
		if match.Is(tech, t) {
			relevant = append(relevant, tech)
		}
	}
	for tech := 0; tech < nt; tech++ {
		if tech == t || !rt.Is(tech) {
			continue
		}
		for _, base := range relevant {
			if match.Is(base, tech) {
				e.Add(1, linear.V(variable.LocalNewCapacity, l, tech, y))
				break
			}
		}
	}
	w := -(1 + m.Opts.RetrofitSlack)
	for _, base := range relevant {
		e.Add(w, linear.V(variable.PotentialRetrofitFromResidual, l, base, y))
	}
	for _, base := range relevant {
		e.Add(w, linear.V(variable.PotentialRetrofitFromNew, l, base, y))
	}
	return linear.Emit(e, linear.LE, 0), nil
}
