// Package objective assembles the cost the model minimizes.
package objective

import (
	"github.com/wupperinst/itom/internal/linear"
	"github.com/wupperinst/itom/internal/sets"
	"github.com/wupperinst/itom/internal/variable"
)

// Build returns the unit-weighted sum of ModelPeriodCostByRegion over every
// region, in region order.
func Build(regions *sets.Set) linear.Objective {
	e := linear.NewExpr()
	for r := 0; r < regions.Len(); r++ {
		e.Add(1, linear.V(variable.ModelPeriodCostByRegion, r))
	}
	return linear.Objective{Terms: e.Terms()}
}
