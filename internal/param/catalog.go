// Package param holds the static parameter catalog and the sparse tables
// loaded for each parameter.
package param

import (
	"github.com/wupperinst/itom/internal/capability"
	"github.com/wupperinst/itom/internal/sets"
)

// Parameter names. They double as input file names.
const (
	ModeForTechnology     = "ModeForTechnology"
	ProductFromTechnology = "ProductFromTechnology"
	ProductToTechnology   = "ProductToTechnology"
	TimeStep              = "TimeStep"
	HubLocation           = "HubLocation"
	HubTechnology         = "HubTechnology"

	DiscountRate                = "DiscountRate"
	TransportRoute              = "TransportRoute"
	TransportCapacity           = "TransportCapacity"
	MultiPurposeTransport       = "MultiPurposeTransport"
	Geography                   = "Geography"
	DepreciationMethod          = "DepreciationMethod"
	Demand                      = "Demand"
	TransportCapacityToActivity = "TransportCapacityToActivity"
	CapacityToActivityUnit      = "CapacityToActivityUnit"
	AvailabilityFactor          = "AvailabilityFactor"
	OperationalLife             = "OperationalLife"
	LocalResidualCapacity       = "LocalResidualCapacity"
	InputActivityRatio          = "InputActivityRatio"
	OutputActivityRatio         = "OutputActivityRatio"

	CapitalCost           = "CapitalCost"
	VariableCost          = "VariableCost"
	FixedCost             = "FixedCost"
	TransportCostByMode   = "TransportCostByMode"
	TransportCostInterReg = "TransportCostInterReg"

	TotalAnnualMaxCapacity                       = "TotalAnnualMaxCapacity"
	TotalAnnualMinCapacity                       = "TotalAnnualMinCapacity"
	LocalTotalAnnualMaxCapacityInvestment        = "LocalTotalAnnualMaxCapacityInvestment"
	LocalTotalAnnualMinCapacityInvestment        = "LocalTotalAnnualMinCapacityInvestment"
	TotalTechnologyAnnualActivityUpperLimit      = "TotalTechnologyAnnualActivityUpperLimit"
	TotalTechnologyAnnualActivityLowerLimit      = "TotalTechnologyAnnualActivityLowerLimit"
	TotalTechnologyModelPeriodActivityUpperLimit = "TotalTechnologyModelPeriodActivityUpperLimit"
	TotalTechnologyModelPeriodActivityLowerLimit = "TotalTechnologyModelPeriodActivityLowerLimit"

	EmissionActivityRatio        = "EmissionActivityRatio"
	EmissionsPenalty             = "EmissionsPenalty"
	AnnualExogenousEmission      = "AnnualExogenousEmission"
	AnnualEmissionLimit          = "AnnualEmissionLimit"
	ModelPeriodExogenousEmission = "ModelPeriodExogenousEmission"
	ModelPeriodEmissionLimit     = "ModelPeriodEmissionLimit"

	RetrofitTechnology      = "RetrofitTechnology"
	TechnologyToRetrofit    = "TechnologyToRetrofit"
	MatchTechnologyRetrofit = "MatchTechnologyRetrofit"

	MaxImpurity = "MaxImpurity"
)

// Spec declares one parameter.
type Spec struct {
	Name      string
	Signature []string
	Default   float64
	// Unbounded marks parameters whose default is the configured sentinel
	// rather than Default.
	Unbounded bool
	// Requires lists the capabilities a run needs for the parameter to be
	// declared at all.
	Requires capability.Set
}

const (
	y  = sets.Year
	t  = sets.Technology
	tr = sets.TransportMode
	p  = sets.Product
	r  = sets.Region
	l  = sets.Location
	e  = sets.Emission
	m  = sets.Mode
)

func sig(names ...string) []string { return names }

var hubOnly = capability.Set{Hub: true}

var catalog = []Spec{
	{Name: ModeForTechnology, Signature: sig(t, m)},
	{Name: ProductFromTechnology, Signature: sig(t, p)},
	{Name: ProductToTechnology, Signature: sig(t, p)},
	{Name: TimeStep, Signature: sig(y)},
	{Name: HubLocation, Signature: sig(l), Requires: hubOnly},
	{Name: HubTechnology, Signature: sig(t), Requires: hubOnly},

	{Name: DiscountRate, Signature: sig(r), Default: 0.05},
	{Name: TransportRoute, Signature: sig(l, l, p, tr, y)},
	{Name: TransportCapacity, Signature: sig(l, l, p, tr, y)},
	{Name: MultiPurposeTransport, Signature: sig(tr)},
	{Name: Geography, Signature: sig(r, l)},
	{Name: DepreciationMethod, Signature: sig(r), Default: 1},
	{Name: Demand, Signature: sig(r, p, y)},
	{Name: TransportCapacityToActivity, Signature: sig(tr), Default: 1},
	{Name: CapacityToActivityUnit, Signature: sig(r, t), Default: 1},
	{Name: AvailabilityFactor, Signature: sig(r, t, y), Default: 1},
	{Name: OperationalLife, Signature: sig(r, t), Default: 1},
	{Name: LocalResidualCapacity, Signature: sig(l, t, y)},
	{Name: InputActivityRatio, Signature: sig(r, t, p, m, y)},
	{Name: OutputActivityRatio, Signature: sig(r, t, p, m, y)},

	{Name: CapitalCost, Signature: sig(r, t, y)},
	{Name: VariableCost, Signature: sig(r, t, m, y)},
	{Name: FixedCost, Signature: sig(r, t, y)},
	{Name: TransportCostByMode, Signature: sig(r, tr, y)},
	{Name: TransportCostInterReg, Signature: sig(r, r, tr, y), Requires: hubOnly},

	{Name: TotalAnnualMaxCapacity, Signature: sig(r, t, y), Unbounded: true},
	{Name: TotalAnnualMinCapacity, Signature: sig(r, t, y)},
	{Name: LocalTotalAnnualMaxCapacityInvestment, Signature: sig(l, t, y), Unbounded: true},
	{Name: LocalTotalAnnualMinCapacityInvestment, Signature: sig(l, t, y)},
	{Name: TotalTechnologyAnnualActivityUpperLimit, Signature: sig(r, t, y), Unbounded: true},
	{Name: TotalTechnologyAnnualActivityLowerLimit, Signature: sig(r, t, y)},
	{Name: TotalTechnologyModelPeriodActivityUpperLimit, Signature: sig(r, t), Unbounded: true},
	{Name: TotalTechnologyModelPeriodActivityLowerLimit, Signature: sig(r, t)},

	{Name: EmissionActivityRatio, Signature: sig(r, t, e, m, y)},
	{Name: EmissionsPenalty, Signature: sig(r, e, y)},
	{Name: AnnualExogenousEmission, Signature: sig(r, e, y)},
	{Name: AnnualEmissionLimit, Signature: sig(r, e, y), Unbounded: true},
	{Name: ModelPeriodExogenousEmission, Signature: sig(r, e)},
	{Name: ModelPeriodEmissionLimit, Signature: sig(r, e), Unbounded: true},

	{Name: RetrofitTechnology, Signature: sig(t), Requires: capability.Set{Retrofit: true}},
	{Name: TechnologyToRetrofit, Signature: sig(t), Requires: capability.Set{Retrofit: true}},
	{Name: MatchTechnologyRetrofit, Signature: sig(t, t), Requires: capability.Set{Retrofit: true}},

	{Name: MaxImpurity, Signature: sig(p, p), Unbounded: true, Requires: capability.Set{Impurities: true}},
}

// Catalog returns the parameters declared for a run with the given
// capabilities, in declaration order.
func Catalog(caps capability.Set) []Spec {
	out := make([]Spec, 0, len(catalog))
	for _, s := range catalog {
		if caps.Has(s.Requires) {
			out = append(out, s)
		}
	}
	return out
}
