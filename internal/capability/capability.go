// Package capability names the optional model features that select which
// parameter, variable and equation families a run assembles.
package capability

import "strings"

// Set selects the optional parts of the model.
type Set struct {
	// Hub routes all inter-regional transport through one hub location per
	// region and enables the hub/regular branching of local equations.
	Hub bool
	// Retrofit adds the retrofit potential variables and the R1-R3 families.
	Retrofit bool
	// Impurities adds the MaxImpurity parameter and the IP1 family.
	Impurities bool
}

// Has reports whether every capability enabled in want is enabled in s.
func (s Set) Has(want Set) bool {
	if want.Hub && !s.Hub {
		return false
	}
	if want.Retrofit && !s.Retrofit {
		return false
	}
	if want.Impurities && !s.Impurities {
		return false
	}
	return true
}

// String returns a stable, human readable form such as "hub+retrofit".
func (s Set) String() string {
	var parts []string
	if s.Hub {
		parts = append(parts, "hub")
	}
	if s.Retrofit {
		parts = append(parts, "retrofit")
	}
	if s.Impurities {
		parts = append(parts, "impurities")
	}
	if len(parts) == 0 {
		return "base"
	}
	return strings.Join(parts, "+")
}
