// Package linear defines the backend-neutral linear rows the equation
// families produce: symbolic variable references, merged term lists, and the
// Emit|Skip result a generation rule returns.
package linear

import (
	"fmt"

	"github.com/wupperinst/itom/internal/labels"
)

// Sense is the comparison operator of a row.
type Sense int

const (
	LE Sense = iota
	EQ
	GE
)

func (s Sense) String() string {
	switch s {
	case LE:
		return "<="
	case EQ:
		return "=="
	case GE:
		return ">="
	}
	return fmt.Sprintf("Sense(%d)", int(s))
}

// Ref names one variable symbolically. Columns are assigned later, in a
// single deterministic pass.
type Ref struct {
	Var   string
	Tuple labels.Tuple
}

// V is shorthand for a Ref.
func V(name string, pos ...int) Ref {
	return Ref{Var: name, Tuple: labels.T(pos...)}
}

// Term is one coefficient times one variable.
type Term struct {
	Coef float64
	Ref  Ref
}

// Expr accumulates terms. Terms on the same variable are merged at the
// position of their first appearance, and terms whose coefficient ends up at
// zero are dropped.
type Expr struct {
	terms []Term
	index map[Ref]int
}

// NewExpr returns an empty expression.
func NewExpr() *Expr {
	return &Expr{index: make(map[Ref]int)}
}

// Add appends coef*ref.
func (e *Expr) Add(coef float64, ref Ref) *Expr {
	if i, ok := e.index[ref]; ok {
		e.terms[i].Coef += coef
		return e
	}
	e.index[ref] = len(e.terms)
	e.terms = append(e.terms, Term{Coef: coef, Ref: ref})
	return e
}

// AddAll appends coef*ref for every ref.
func (e *Expr) AddAll(coef float64, refs []Ref) *Expr {
	for _, ref := range refs {
		e.Add(coef, ref)
	}
	return e
}

// AddEach appends coefs[i]*refs[i]. The slices must have equal length.
func (e *Expr) AddEach(coefs []float64, refs []Ref) *Expr {
	if len(coefs) != len(refs) {
		panic(fmt.Sprintf("linear: %d coefficients for %d variables", len(coefs), len(refs)))
	}
	for i, ref := range refs {
		e.Add(coefs[i], ref)
	}
	return e
}

// Terms returns the merged non-zero terms in first-appearance order.
func (e *Expr) Terms() []Term {
	out := make([]Term, 0, len(e.terms))
	for _, t := range e.terms {
		if t.Coef != 0 {
			out = append(out, t)
		}
	}
	return out
}

// Row is the body of one constraint.
type Row struct {
	Terms []Term
	Sense Sense
	RHS   float64
}

// Record is an emitted constraint with its traceable identity.
type Record struct {
	Family string
	Index  labels.Tuple
	Row
}

// Objective is the linear expression the model minimizes.
type Objective struct {
	Terms []Term
}
