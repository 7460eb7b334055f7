// Package variable declares the decision variable families of the model.
package variable

import (
	"github.com/wupperinst/itom/internal/capability"
	"github.com/wupperinst/itom/internal/sets"
)

// Domain is the feasible range of a variable.
type Domain int

const (
	NonNegativeReals Domain = iota
	Reals
)

func (d Domain) String() string {
	if d == Reals {
		return "Reals"
	}
	return "NonNegativeReals"
}

// Variable family names.
const (
	LocalNewCapacity            = "LocalNewCapacity"
	NewCapacity                 = "NewCapacity"
	LocalAccumulatedNewCapacity = "LocalAccumulatedNewCapacity"
	AccumulatedNewCapacity      = "AccumulatedNewCapacity"
	LocalTotalCapacity          = "LocalTotalCapacity"
	TotalCapacity               = "TotalCapacity"

	LocalActivityByMode = "LocalActivityByMode"
	LocalActivity       = "LocalActivity"
	Activity            = "Activity"
	ModelPeriodActivity = "ModelPeriodActivity"

	LocalProductionByMode       = "LocalProductionByMode"
	LocalProductionByTechnology = "LocalProductionByTechnology"
	LocalProduction             = "LocalProduction"
	Production                  = "Production"
	LocalUseByMode              = "LocalUseByMode"
	LocalUseByTechnology        = "LocalUseByTechnology"
	LocalUse                    = "LocalUse"
	Use                         = "Use"

	Transport = "Transport"
	Import    = "Import"
	Export    = "Export"

	LocalCapitalInvestment           = "LocalCapitalInvestment"
	LocalDiscountedCapitalInvestment = "LocalDiscountedCapitalInvestment"
	DiscountedCapitalInvestment      = "DiscountedCapitalInvestment"
	SalvageValue                     = "SalvageValue"
	DiscountedSalvageValue           = "DiscountedSalvageValue"

	LocalVariableOperatingCost   = "LocalVariableOperatingCost"
	LocalFixedOperatingCost      = "LocalFixedOperatingCost"
	LocalOperatingCost           = "LocalOperatingCost"
	LocalDiscountedOperatingCost = "LocalDiscountedOperatingCost"
	DiscountedOperatingCost      = "DiscountedOperatingCost"

	LocalTransportCost               = "LocalTransportCost"
	LocalDiscountedTransportCost     = "LocalDiscountedTransportCost"
	DiscountedTransportCostByProduct = "DiscountedTransportCostByProduct"
	DiscountedTransportCost          = "DiscountedTransportCost"

	TotalDiscountedCost     = "TotalDiscountedCost"
	ModelPeriodCostByRegion = "ModelPeriodCostByRegion"
	ModelPeriodCost         = "ModelPeriodCost"

	LocalTechnologyEmissionByMode             = "LocalTechnologyEmissionByMode"
	LocalTechnologyEmission                   = "LocalTechnologyEmission"
	AnnualTechnologyEmission                  = "AnnualTechnologyEmission"
	AnnualTechnologyEmissionPenaltyByEmission = "AnnualTechnologyEmissionPenaltyByEmission"
	AnnualTechnologyEmissionsPenalty          = "AnnualTechnologyEmissionsPenalty"
	DiscountedTechnologyEmissionsPenalty      = "DiscountedTechnologyEmissionsPenalty"
	AnnualEmissions                           = "AnnualEmissions"
	ModelPeriodEmissions                      = "ModelPeriodEmissions"

	PotentialRetrofitFromResidual = "PotentialRetrofitFromResidual"
	PotentialRetrofitFromNew      = "PotentialRetrofitFromNew"
)

// Spec declares one variable family.
type Spec struct {
	Name      string
	Signature []string
	Domain    Domain
	Requires  capability.Set
}

func v(name string, d Domain, signature ...string) Spec {
	return Spec{Name: name, Signature: signature, Domain: d}
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

var (
	nn   = NonNegativeReals
	free = Reals
)

var catalog = []Spec{
	v(LocalNewCapacity, nn, l, t, y),
	v(NewCapacity, nn, r, t, y),
	v(LocalAccumulatedNewCapacity, nn, l, t, y),
	v(AccumulatedNewCapacity, nn, r, t, y),
	v(LocalTotalCapacity, nn, l, t, y),
	v(TotalCapacity, nn, r, t, y),

	v(LocalActivityByMode, nn, l, t, m, y),
	v(LocalActivity, nn, l, t, y),
	v(Activity, nn, r, t, y),
	v(ModelPeriodActivity, nn, r, t),

	v(LocalProductionByMode, nn, l, t, p, m, y),
	v(LocalProductionByTechnology, nn, l, t, p, y),
	v(LocalProduction, nn, l, p, y),
	v(Production, nn, r, p, y),
	v(LocalUseByMode, nn, l, t, p, m, y),
	v(LocalUseByTechnology, nn, l, t, p, y),
	v(LocalUse, nn, l, p, y),
	v(Use, nn, r, p, y),

	v(Transport, nn, l, l, p, tr, y),
	v(Import, nn, r, p, y),
	v(Export, nn, r, p, y),

	v(LocalCapitalInvestment, nn, l, t, y),
	v(LocalDiscountedCapitalInvestment, nn, l, t, y),
	v(DiscountedCapitalInvestment, nn, r, t, y),
	v(SalvageValue, nn, r, t, y),
	v(DiscountedSalvageValue, nn, r, t, y),

	v(LocalVariableOperatingCost, free, l, t, y),
	v(LocalFixedOperatingCost, nn, l, t, y),
	v(LocalOperatingCost, free, l, t, y),
	v(LocalDiscountedOperatingCost, free, l, t, y),
	v(DiscountedOperatingCost, free, r, t, y),

	v(LocalTransportCost, nn, l, p, y),
	v(LocalDiscountedTransportCost, nn, l, p, y),
	v(DiscountedTransportCostByProduct, nn, r, p, y),
	v(DiscountedTransportCost, nn, r, y),

	v(TotalDiscountedCost, free, r, y),
	v(ModelPeriodCostByRegion, free, r),
	v(ModelPeriodCost, free),

	v(LocalTechnologyEmissionByMode, free, l, t, e, m, y),
	v(LocalTechnologyEmission, free, l, t, e, y),
	v(AnnualTechnologyEmission, free, r, t, e, y),
	v(AnnualTechnologyEmissionPenaltyByEmission, free, r, t, e, y),
	v(AnnualTechnologyEmissionsPenalty, free, r, t, y),
	v(DiscountedTechnologyEmissionsPenalty, free, r, t, y),
	v(AnnualEmissions, free, r, e, y),
	v(ModelPeriodEmissions, free, r, e),

	retrofit(v(PotentialRetrofitFromResidual, nn, l, t, y)),
	retrofit(v(PotentialRetrofitFromNew, nn, l, t, y)),
}

func retrofit(s Spec) Spec {
	s.Requires = capability.Set{Retrofit: true}
	return s
}

// Catalog returns the variable families declared for a run with the given
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
