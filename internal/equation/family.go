package equation

import (
	"iter"

	"github.com/wupperinst/itom/internal/capability"
	"github.com/wupperinst/itom/internal/labels"
	"github.com/wupperinst/itom/internal/linear"
)

// Rule turns one index tuple of a family into a row or a skip.
type Rule func(m *Model, ix labels.Tuple) (linear.Result, error)

// Family is one constraint family: its identity, index domain and rule.
type Family struct {
	Name      string
	Signature []string
	Requires  capability.Set
	// Enumerate, when set, yields the tuples the rule should be asked about.
	// It must produce, in lexicographic order, every tuple of the full cross
	// product that the rule would not skip for a categorical or structural
	// reason.
	Enumerate func(m *Model) iter.Seq[labels.Tuple]
	Rule      Rule
}

func (f Family) tuples(m *Model) iter.Seq[labels.Tuple] {
	if f.Enumerate != nil {
		return f.Enumerate(m)
	}
	return m.crossProduct(f.Signature)
}

// crossProduct yields every tuple over the named sets in lexicographic order.
// An empty signature yields the single empty tuple.
func (m *Model) crossProduct(signature []string) iter.Seq[labels.Tuple] {
	dims := make([]int, len(signature))
	for i, name := range signature {
		dims[i] = m.n(name)
	}
	return product(dims)
}

func product(dims []int) iter.Seq[labels.Tuple] {
	return func(yield func(labels.Tuple) bool) {
		for _, d := range dims {
			if d == 0 {
				return
			}
		}
		pos := make([]int, len(dims))
		for {
			if !yield(labels.T(pos...)) {
				return
			}
			i := len(pos) - 1
			for ; i >= 0; i-- {
				pos[i]++
				if pos[i] < dims[i] {
					break
				}
				pos[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}

func sig(names ...string) []string { return names }

// Families returns the constraint families enabled by caps in registration
// order.
func Families(caps capability.Set) []Family {
	var all []Family
	for _, group := range [][]Family{
		capacityFamilies(),
		productFamilies(),
		transportFamilies(),
		capitalFamilies(),
		operatingFamilies(),
		transportCostFamilies(),
		totalCostFamilies(),
		limitFamilies(),
		activityFamilies(),
		emissionFamilies(),
		retrofitFamilies(),
		impurityFamilies(),
	} {
		for _, f := range group {
			if caps.Has(f.Requires) {
				all = append(all, f)
			}
		}
	}
	return all
}
