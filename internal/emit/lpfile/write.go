// Package lpfile writes a linear system as portable LP text and reads it
// back, together with the tables that decode column and row names.
package lpfile

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/wupperinst/itom/internal/emit"
	"github.com/wupperinst/itom/internal/emit/symbolic"
	"github.com/wupperinst/itom/internal/variable"
)

// formatFloat is the shortest text that parses back to v.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeTerm(w *bufio.Writer, coef float64, col int) {
	sign := '+'
	if math.Signbit(coef) {
		sign = '-'
	}
	w.WriteByte(' ')
	w.WriteRune(sign)
	w.WriteString(formatFloat(math.Abs(coef)))
	w.WriteByte('*')
	w.WriteString(symbolic.ColName(col))
}

// Write renders sys:
//
//	Objective
//	min: +1*x0 +1*x1
//	Constraints
//	c0: +1*x2 -1*x3 == 0
//	Bounds
//	x0 >= 0
//	x7 free
//	End
func Write(out io.Writer, sys *emit.System) error {
	w := bufio.NewWriter(out)

	w.WriteString("Objective\nmin:")
	for _, c := range sys.Objective {
		writeTerm(w, c.Val, c.Col)
	}
	w.WriteString("\nConstraints\n")
	for i, row := range sys.Rows {
		w.WriteString(symbolic.RowName(i))
		w.WriteByte(':')
		for _, c := range row.Coefs {
			writeTerm(w, c.Val, c.Col)
		}
		fmt.Fprintf(w, " %s %s\n", row.Sense, formatFloat(row.RHS))
	}
	w.WriteString("Bounds\n")
	for col := 0; col < sys.NumCols(); col++ {
		w.WriteString(symbolic.ColName(col))
		if sys.Domain(col) == variable.Reals {
			w.WriteString(" free\n")
		} else {
			w.WriteString(" >= 0\n")
		}
	}
	w.WriteString("End\n")

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write LP file: %w", err)
	}
	return nil
}
