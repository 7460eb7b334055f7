package testutil

import (
	"testing"

	"github.com/wupperinst/itom/internal/capability"
	"github.com/wupperinst/itom/internal/param"
	"github.com/wupperinst/itom/internal/sets"
)

var years = []string{"2020", "2030"}

// SmallModel is one region with three locations, two steel technologies, two
// decade steps and a single product. Only L1 and L2 can ship to each other.
func SmallModel(t testing.TB) *Fixture {
	f := NewFixture(t, capability.Set{}).
		Set(sets.Year, years...).
		Set(sets.Region, "R1").
		Set(sets.Location, "L1", "L2", "L3").
		Set(sets.Technology, "BF", "EAF").
		Set(sets.Product, "STEEL").
		Set(sets.Mode, "M1").
		Set(sets.Emission, "CO2").
		Set(sets.TransportMode, "ROAD")

	for _, l := range []string{"L1", "L2", "L3"} {
		f.Param(param.Geography, 1, "R1", l)
	}
	f.Param(param.OperationalLife, 30, "R1", "BF").
		Param(param.OperationalLife, 20, "R1", "EAF")
	for _, tech := range []string{"BF", "EAF"} {
		f.Param(param.ModeForTechnology, 1, tech, "M1").
			Param(param.ProductFromTechnology, 1, tech, "STEEL")
	}
	for _, y := range years {
		f.Param(param.TimeStep, 10, y).
			Param(param.OutputActivityRatio, 1, "R1", "BF", "STEEL", "M1", y).
			Param(param.OutputActivityRatio, 1, "R1", "EAF", "STEEL", "M1", y).
			Param(param.CapitalCost, 100, "R1", "BF", y).
			Param(param.CapitalCost, 150, "R1", "EAF", y).
			Param(param.VariableCost, 2, "R1", "BF", "M1", y).
			Param(param.VariableCost, 1, "R1", "EAF", "M1", y).
			Param(param.FixedCost, 1, "R1", "BF", y).
			Param(param.FixedCost, 1, "R1", "EAF", y).
			Param(param.EmissionActivityRatio, 2, "R1", "BF", "CO2", "M1", y).
			Param(param.EmissionsPenalty, 5, "R1", "CO2", y).
			Param(param.TransportRoute, 1, "L1", "L2", "STEEL", "ROAD", y).
			Param(param.TransportRoute, 1, "L2", "L1", "STEEL", "ROAD", y).
			Param(param.TransportCapacity, 5, "L1", "L2", "STEEL", "ROAD", y).
			Param(param.TransportCapacity, 5, "L2", "L1", "STEEL", "ROAD", y).
			Param(param.TransportCostByMode, 0.5, "R1", "ROAD", y)
	}
	f.Param(param.Demand, 10, "R1", "STEEL", "2020").
		Param(param.Demand, 12, "R1", "STEEL", "2030").
		Param(param.LocalResidualCapacity, 5, "L1", "BF", "2020")
	return f
}

// TwoRegionHub has regions A and B, each with two regular locations and one
// hub. Steel is produced only in A and demanded only in B. The hub terminal
// forwards product at HA and absorbs it at HB.
func TwoRegionHub(t testing.TB) *Fixture {
	f := NewFixture(t, capability.Set{Hub: true}).
		Set(sets.Year, years...).
		Set(sets.Region, "A", "B").
		Set(sets.Location, "A1", "A2", "HA", "B1", "B2", "HB").
		Set(sets.Technology, "PLANT", "TERMINAL").
		Set(sets.Product, "STEEL").
		Set(sets.Mode, "M1").
		Set(sets.TransportMode, "ROAD", "SEA")

	for _, l := range []string{"A1", "A2", "HA"} {
		f.Param(param.Geography, 1, "A", l)
	}
	for _, l := range []string{"B1", "B2", "HB"} {
		f.Param(param.Geography, 1, "B", l)
	}
	f.Param(param.HubLocation, 1, "HA").
		Param(param.HubLocation, 1, "HB").
		Param(param.HubTechnology, 1, "TERMINAL")

	for _, tech := range []string{"PLANT", "TERMINAL"} {
		f.Param(param.ModeForTechnology, 1, tech, "M1")
		for _, r := range []string{"A", "B"} {
			f.Param(param.OperationalLife, 40, r, tech)
		}
	}
	f.Param(param.ProductFromTechnology, 1, "PLANT", "STEEL").
		Param(param.ProductFromTechnology, 1, "TERMINAL", "STEEL").
		Param(param.ProductToTechnology, 1, "TERMINAL", "STEEL")

	for _, y := range years {
		f.Param(param.TimeStep, 10, y).
			Param(param.OutputActivityRatio, 1, "A", "PLANT", "STEEL", "M1", y).
			Param(param.OutputActivityRatio, 1, "A", "TERMINAL", "STEEL", "M1", y).
			Param(param.InputActivityRatio, 1, "A", "TERMINAL", "STEEL", "M1", y).
			Param(param.InputActivityRatio, 1, "B", "TERMINAL", "STEEL", "M1", y).
			Param(param.CapitalCost, 10, "A", "PLANT", y).
			Param(param.CapitalCost, 10, "B", "PLANT", y).
			Param(param.CapitalCost, 1, "A", "TERMINAL", y).
			Param(param.CapitalCost, 1, "B", "TERMINAL", y).
			Param(param.TransportCostByMode, 1, "A", "ROAD", y).
			Param(param.TransportCostByMode, 1, "B", "ROAD", y).
			Param(param.TransportCostInterReg, 2, "A", "B", "SEA", y).
			Param(param.Demand, 5, "B", "STEEL", y)
		for _, route := range [][3]string{
			{"A1", "HA", "ROAD"},
			{"A2", "HA", "ROAD"},
			{"HA", "HB", "SEA"},
			{"HB", "B1", "ROAD"},
			{"HB", "B2", "ROAD"},
		} {
			f.Param(param.TransportRoute, 1, route[0], route[1], "STEEL", route[2], y).
				Param(param.TransportCapacity, 100, route[0], route[1], "STEEL", route[2], y)
		}
	}
	return f
}

// MultiPurpose ships two products between L1 and L2 over the multi-purpose
// mode SHIP, and P1 also by TRUCK.
func MultiPurpose(t testing.TB) *Fixture {
	f := NewFixture(t, capability.Set{}).
		Set(sets.Year, "2020").
		Set(sets.Region, "R1").
		Set(sets.Location, "L1", "L2").
		Set(sets.Technology, "MILL").
		Set(sets.Product, "P1", "P2").
		Set(sets.Mode, "M1").
		Set(sets.TransportMode, "SHIP", "TRUCK").
		Param(param.TimeStep, 1, "2020").
		Param(param.Geography, 1, "R1", "L1").
		Param(param.Geography, 1, "R1", "L2").
		Param(param.MultiPurposeTransport, 1, "SHIP").
		Param(param.TransportRoute, 1, "L1", "L2", "P1", "SHIP", "2020").
		Param(param.TransportRoute, 1, "L1", "L2", "P2", "SHIP", "2020").
		Param(param.TransportRoute, 1, "L1", "L2", "P1", "TRUCK", "2020").
		Param(param.TransportCapacity, 30, "L1", "L2", "P1", "SHIP", "2020").
		Param(param.TransportCapacity, 30, "L1", "L2", "P2", "SHIP", "2020").
		Param(param.TransportCapacity, 8, "L1", "L2", "P1", "TRUCK", "2020")
	return f
}
