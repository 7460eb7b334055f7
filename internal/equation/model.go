package equation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wupperinst/itom/internal/capability"
	"github.com/wupperinst/itom/internal/ctxlog"
	"github.com/wupperinst/itom/internal/finance"
	"github.com/wupperinst/itom/internal/hub"
	"github.com/wupperinst/itom/internal/linear"
	"github.com/wupperinst/itom/internal/network"
	"github.com/wupperinst/itom/internal/param"
	"github.com/wupperinst/itom/internal/sets"
)

// Model is the read-only input every rule sees: loaded sets and parameters
// plus the structures derived from them once before generation.
type Model struct {
	Caps   capability.Set
	Opts   Options
	Sets   *sets.Registry
	Params *param.Store
	Axis   *finance.Axis
	Routes *network.Index
	Hub    *hub.View

	modes     [][]int
	regionsOf [][]int
	logger    *slog.Logger
}

// NewModel derives the year axis, the route index and the hub view and checks
// the numeric preconditions that apply to the whole run.
func NewModel(ctx context.Context, caps capability.Set, opts Options, s *sets.Registry, p *param.Store) (*Model, error) {
	for _, name := range sets.All {
		if _, ok := s.Get(name); !ok {
			return nil, fmt.Errorf("set %s is not loaded", name)
		}
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	years := s.MustGet(sets.Year)
	ts := p.Table(param.TimeStep)
	steps := make([]float64, years.Len())
	for i := range steps {
		steps[i] = ts.Get(i)
	}
	axis, err := finance.NewAxis(years.Members(), steps)
	if err != nil {
		return nil, fmt.Errorf("failed to build year axis: %w", err)
	}

	dr := p.Table(param.DiscountRate)
	regions := s.MustGet(sets.Region)
	for r := 0; r < regions.Len(); r++ {
		if err := finance.CheckRate(dr.Get(r)); err != nil {
			return nil, fmt.Errorf("region %s: %w", regions.Member(r), err)
		}
	}

	routes, err := network.FromTable(p.Table(param.TransportRoute))
	if err != nil {
		return nil, err
	}

	view := hub.New(caps.Hub, s, p)
	if err := view.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid hub assignment: %w", err)
	}

	m := &Model{
		Caps:   caps,
		Opts:   opts,
		Sets:   s,
		Params: p,
		Axis:   axis,
		Routes: routes,
		Hub:    view,
		logger: ctxlog.FromContext(ctx),
	}

	techs := s.MustGet(sets.Technology)
	mft := p.Table(param.ModeForTechnology)
	nModes := s.MustGet(sets.Mode).Len()
	m.modes = make([][]int, techs.Len())
	for t := range m.modes {
		for mo := 0; mo < nModes; mo++ {
			if mft.Is(t, mo) {
				m.modes[t] = append(m.modes[t], mo)
			}
		}
	}

	locs := s.MustGet(sets.Location)
	m.regionsOf = make([][]int, locs.Len())
	for l := range m.regionsOf {
		for r := 0; r < regions.Len(); r++ {
			if view.InRegion(r, l) {
				m.regionsOf[l] = append(m.regionsOf[l], r)
			}
		}
	}
	return m, nil
}

// n returns the size of a set.
func (m *Model) n(name string) int { return m.Sets.MustGet(name).Len() }

func (m *Model) par(name string) *param.Table { return m.Params.Table(name) }

// Modes returns the modes of operation valid for technology t.
func (m *Model) Modes(t int) []int { return m.modes[t] }

// G is the Geography-weighted sum of a regional value at location l.
func (m *Model) G(l int, f func(r int) float64) float64 {
	var sum float64
	for _, r := range m.regionsOf[l] {
		sum += f(r) * m.Hub.Geo(r, l)
	}
	return sum
}

// gated reports whether the hub split allows technology t at location l.
func (m *Model) gated(l, t int) bool {
	return m.Hub.Pair(l, t) != hub.Mismatch
}

// regional adds -Geo(r,l)*name(l, rest...) for every relevant location of r.
func (m *Model) regional(e *linear.Expr, r int, locs []int, name string, rest ...int) {
	for _, l := range locs {
		if w := m.Hub.Geo(r, l); w != 0 {
			e.Add(-w, linear.V(name, append([]int{l}, rest...)...))
		}
	}
}

// bound emits the limit row, or skips it when the limit has no effect.
func (m *Model) bound(e *linear.Expr, sense linear.Sense, rhs float64, saturated bool) linear.Result {
	if saturated && !m.Opts.KeepSaturatedRows {
		return linear.Skip(linear.SkipSaturated)
	}
	return linear.Emit(e, sense, rhs)
}

func (m *Model) unbounded(v float64) bool { return v == m.Opts.Sentinel }

func eq(e *linear.Expr, rhs float64) linear.Result {
	return linear.Emit(e, linear.EQ, rhs)
}
