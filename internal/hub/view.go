// Package hub answers the hub/regular questions the transport and regional
// aggregation families ask. Each region has at most one hub location; hub
// technologies are operated only at hub locations and regular technologies
// only at regular ones.
package hub

import (
	"context"
	"fmt"

	"github.com/wupperinst/itom/internal/ctxlog"
	"github.com/wupperinst/itom/internal/param"
	"github.com/wupperinst/itom/internal/sets"
)

// Kind classifies a (location, technology) pair.
type Kind int

const (
	Regular Kind = iota
	Hub
	Mismatch
)

func (k Kind) String() string {
	switch k {
	case Hub:
		return "hub"
	case Mismatch:
		return "mismatch"
	}
	return "regular"
}

// View is the read-only hub assignment of one run.
type View struct {
	enabled  bool
	hubLoc   []bool
	hubTech  []bool
	hubs     []int
	regular  []int
	all      []int
	regions  *sets.Set
	locs     *sets.Set
	geo      *param.Table
	inRegion [][]int
}

// New builds the view. With enabled false every location and technology is
// regular and the HubLocation/HubTechnology tables are not consulted.
func New(enabled bool, s *sets.Registry, store *param.Store) *View {
	locs := s.MustGet(sets.Location)
	techs := s.MustGet(sets.Technology)
	regions := s.MustGet(sets.Region)

	v := &View{
		enabled:  enabled,
		hubLoc:   make([]bool, locs.Len()),
		hubTech:  make([]bool, techs.Len()),
		regions:  regions,
		locs:     locs,
		geo:      store.Table(param.Geography),
		inRegion: make([][]int, regions.Len()),
	}
	if enabled {
		hl := store.Table(param.HubLocation)
		for l := range v.hubLoc {
			v.hubLoc[l] = hl.Is(l)
		}
		ht := store.Table(param.HubTechnology)
		for t := range v.hubTech {
			v.hubTech[t] = ht.Is(t)
		}
	}
	for l := 0; l < locs.Len(); l++ {
		v.all = append(v.all, l)
		if v.hubLoc[l] {
			v.hubs = append(v.hubs, l)
		} else {
			v.regular = append(v.regular, l)
		}
		for r := 0; r < regions.Len(); r++ {
			if v.geo.Get(r, l) != 0 {
				v.inRegion[r] = append(v.inRegion[r], l)
			}
		}
	}
	return v
}

// Enabled reports whether the hub layer is active for this run.
func (v *View) Enabled() bool { return v.enabled }

func (v *View) IsHubLocation(l int) bool { return v.hubLoc[l] }

func (v *View) IsHubTechnology(t int) bool { return v.hubTech[t] }

// Pair returns exactly one of Hub, Regular and Mismatch.
func (v *View) Pair(l, t int) Kind {
	switch {
	case v.hubLoc[l] && v.hubTech[t]:
		return Hub
	case !v.hubLoc[l] && !v.hubTech[t]:
		return Regular
	}
	return Mismatch
}

// Relevant returns the locations where technology t may operate.
func (v *View) Relevant(t int) []int {
	if v.hubTech[t] {
		return v.hubs
	}
	return v.regular
}

// RegularLocations returns the non-hub locations in ordinal order.
func (v *View) RegularLocations() []int { return v.regular }

// HubLocations returns the hub locations in ordinal order.
func (v *View) HubLocations() []int { return v.hubs }

// Locations returns every location ordinal.
func (v *View) Locations() []int { return v.all }

// Partition returns the hub and regular locations.
func (v *View) Partition() (hubs, regular []int) { return v.hubs, v.regular }

// Members returns the locations with a non-zero Geography weight in r.
func (v *View) Members(r int) []int { return v.inRegion[r] }

// InRegion reports whether location l belongs to region r.
func (v *View) InRegion(r, l int) bool { return v.geo.Get(r, l) != 0 }

// Geo returns the Geography weight of l in r.
func (v *View) Geo(r, l int) float64 { return v.geo.Get(r, l) }

// HubOf returns the hub location of region r.
func (v *View) HubOf(r int) (int, bool) {
	for _, l := range v.inRegion[r] {
		if v.hubLoc[l] {
			return l, true
		}
	}
	return 0, false
}

// Validate checks that no region has more than one hub location. A region
// without a hub is logged and tolerated.
func (v *View) Validate(ctx context.Context) error {
	if !v.enabled {
		return nil
	}
	logger := ctxlog.FromContext(ctx)
	for r := 0; r < v.regions.Len(); r++ {
		var found []string
		for _, l := range v.inRegion[r] {
			if v.hubLoc[l] {
				found = append(found, v.locs.Member(l))
			}
		}
		switch len(found) {
		case 0:
			logger.Warn("Region has no hub location.", "region", v.regions.Member(r))
		case 1:
		default:
			return fmt.Errorf("region %s has %d hub locations %v, want at most one", v.regions.Member(r), len(found), found)
		}
	}
	return nil
}
