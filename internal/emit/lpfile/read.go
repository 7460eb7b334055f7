package lpfile

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/wupperinst/itom/internal/emit/symbolic"
	"github.com/wupperinst/itom/internal/linear"
)

// ParseError locates a malformed line.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("lp line %d: %s", e.Line, e.Reason)
}

type section int

const (
	preamble section = iota
	objective
	constraints
	bounds
	end
)

type reader struct {
	m    *symbolic.Model
	line int
	// seen marks columns that have a bounds line.
	seen []bool
}

// Read parses LP text produced by Write. Columns and rows must be named
// x<n> and c<n> with n in sequence.
func Read(in io.Reader) (*symbolic.Model, error) {
	r := &reader{m: &symbolic.Model{}}
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 1<<20), 1<<30)

	state := preamble
	for sc.Scan() {
		r.line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		switch text {
		case "Objective":
			state = objective
			continue
		case "Constraints":
			state = constraints
			continue
		case "Bounds":
			state = bounds
			continue
		case "End":
			state = end
			continue
		}

		var err error
		switch state {
		case objective:
			err = r.objective(text)
		case constraints:
			err = r.constraint(text)
		case bounds:
			err = r.bound(text)
		default:
			err = r.fail("unexpected text outside a section")
		}
		if err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read LP text: %w", err)
	}
	if state != end {
		return nil, r.fail("missing End")
	}
	for col, ok := range r.seen {
		if !ok {
			return nil, fmt.Errorf("column %s has no bounds", symbolic.ColName(col))
		}
	}
	return r.m, nil
}

func (r *reader) fail(format string, args ...any) error {
	return &ParseError{Line: r.line, Reason: fmt.Sprintf(format, args...)}
}

// grow makes room for column col.
func (r *reader) grow(col int) {
	for len(r.m.ColCosts) <= col {
		n := len(r.m.ColCosts)
		r.m.ColCosts = append(r.m.ColCosts, 0)
		r.m.ColLower = append(r.m.ColLower, 0)
		r.m.ColUpper = append(r.m.ColUpper, math.Inf(1))
		r.m.ColNames = append(r.m.ColNames, symbolic.ColName(n))
		r.seen = append(r.seen, false)
	}
}

func index(name string, prefix byte) (int, bool) {
	if len(name) < 2 || name[0] != prefix {
		return 0, false
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// term parses "+2.5*x3".
func (r *reader) term(tok string) (float64, int, error) {
	coefText, name, ok := strings.Cut(tok, "*")
	if !ok {
		return 0, 0, r.fail("term %q: want <coef>*<column>", tok)
	}
	coef, err := strconv.ParseFloat(coefText, 64)
	if err != nil {
		return 0, 0, r.fail("term %q: %v", tok, err)
	}
	col, ok := index(name, 'x')
	if !ok {
		return 0, 0, r.fail("term %q: bad column name", tok)
	}
	r.grow(col)
	return coef, col, nil
}

func (r *reader) objective(text string) error {
	body, ok := strings.CutPrefix(text, "min:")
	if !ok {
		return r.fail("objective must start with 'min:'")
	}
	for _, tok := range strings.Fields(body) {
		coef, col, err := r.term(tok)
		if err != nil {
			return err
		}
		r.m.ColCosts[col] += coef
	}
	return nil
}

func parseSense(tok string) (linear.Sense, bool) {
	switch tok {
	case "<=":
		return linear.LE, true
	case "==":
		return linear.EQ, true
	case ">=":
		return linear.GE, true
	}
	return 0, false
}

func (r *reader) constraint(text string) error {
	name, body, ok := strings.Cut(text, ":")
	if !ok {
		return r.fail("constraint without a name")
	}
	row, ok := index(name, 'c')
	if !ok || row != len(r.m.RowLower) {
		return r.fail("constraint %q out of sequence", name)
	}
	fields := strings.Fields(body)
	if len(fields) < 3 {
		return r.fail("constraint %s is incomplete", name)
	}
	n := len(fields)
	sense, ok := parseSense(fields[n-2])
	if !ok {
		return r.fail("constraint %s: unknown sense %q", name, fields[n-2])
	}
	rhs, err := strconv.ParseFloat(fields[n-1], 64)
	if err != nil {
		return r.fail("constraint %s: rhs: %v", name, err)
	}
	for _, tok := range fields[:n-2] {
		coef, col, err := r.term(tok)
		if err != nil {
			return err
		}
		r.m.Nonzeros = append(r.m.Nonzeros, symbolic.Nonzero{Row: row, Col: col, Val: coef})
	}
	lo, hi := symbolic.SenseBounds(sense, rhs)
	r.m.RowLower = append(r.m.RowLower, lo)
	r.m.RowUpper = append(r.m.RowUpper, hi)
	r.m.RowNames = append(r.m.RowNames, name)
	return nil
}

func (r *reader) bound(text string) error {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	col, ok := index(fields[0], 'x')
	if !ok {
		return r.fail("bound on %q: bad column name", fields[0])
	}
	r.grow(col)
	switch {
	case len(fields) == 2 && fields[1] == "free":
		r.m.ColLower[col], r.m.ColUpper[col] = math.Inf(-1), math.Inf(1)
	case len(fields) == 3 && fields[1] == ">=":
		lo, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return r.fail("bound on %s: %v", fields[0], err)
		}
		r.m.ColLower[col] = lo
	default:
		return r.fail("unsupported bound %q", text)
	}
	r.seen[col] = true
	return nil
}
