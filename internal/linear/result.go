package linear

import "fmt"

// Kind tells an emitted row from a skipped tuple.
type Kind int

const (
	KindSkip Kind = iota
	KindEmit
)

// SkipReason records why a rule produced no row.
type SkipReason int

const (
	// SkipCategory: a categorical flag such as mode-for-technology is false.
	SkipCategory SkipReason = iota
	// SkipHub: the location and technology are on different sides of the hub split.
	SkipHub
	// SkipSaturated: the bound is the unbounded sentinel, or a zero floor.
	SkipSaturated
	// SkipStructural: no route, empty product subset and the like.
	SkipStructural
)

func (r SkipReason) String() string {
	switch r {
	case SkipCategory:
		return "category"
	case SkipHub:
		return "hub"
	case SkipSaturated:
		return "saturated"
	case SkipStructural:
		return "structural"
	}
	return fmt.Sprintf("SkipReason(%d)", int(r))
}

// Result is what a generation rule returns for one tuple: exactly one row or
// a reason for having none.
type Result struct {
	kind   Kind
	row    Row
	reason SkipReason
}

// Emit returns a result carrying the row e <sense> rhs.
func Emit(e *Expr, sense Sense, rhs float64) Result {
	return Result{kind: KindEmit, row: Row{Terms: e.Terms(), Sense: sense, RHS: rhs}}
}

// Skip returns a result without a row.
func Skip(reason SkipReason) Result {
	return Result{kind: KindSkip, reason: reason}
}

func (r Result) Kind() Kind { return r.kind }

// Row returns the emitted row. ok is false for skipped tuples.
func (r Result) Row() (row Row, ok bool) {
	return r.row, r.kind == KindEmit
}

// Reason returns the skip reason. It is meaningless for emitted rows.
func (r Result) Reason() SkipReason { return r.reason }
