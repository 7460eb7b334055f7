package labels

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxArity is the widest index signature any family uses.
const MaxArity = 5

// Tuple is a fixed-width vector of set ordinals. It is comparable and is used
// directly as a map key throughout the assembler.
type Tuple struct {
	n   uint8
	pos [MaxArity]int32
}

// T builds a tuple from member ordinals. It panics when more than MaxArity
// positions are given.
func T(pos ...int) Tuple {
	if len(pos) > MaxArity {
		panic(fmt.Sprintf("labels: tuple arity %d exceeds %d", len(pos), MaxArity))
	}
	var t Tuple
	t.n = uint8(len(pos))
	for i, p := range pos {
		t.pos[i] = int32(p)
	}
	return t
}

// Len returns the tuple arity.
func (t Tuple) Len() int { return int(t.n) }

// At returns the ordinal at position i.
func (t Tuple) At(i int) int {
	if i < 0 || i >= int(t.n) {
		panic(fmt.Sprintf("labels: tuple position %d out of range [0,%d)", i, t.n))
	}
	return int(t.pos[i])
}

// Slice returns the ordinals as a new slice.
func (t Tuple) Slice() []int {
	out := make([]int, t.n)
	for i := range out {
		out[i] = int(t.pos[i])
	}
	return out
}

// Less orders tuples lexicographically by ordinal, shorter tuples first on a
// common prefix.
func (t Tuple) Less(o Tuple) bool {
	n := min(t.n, o.n)
	for i := uint8(0); i < n; i++ {
		if t.pos[i] != o.pos[i] {
			return t.pos[i] < o.pos[i]
		}
	}
	return t.n < o.n
}

// String renders ordinals, e.g. "(0,3,1)". Use Registry.Format for labels.
func (t Tuple) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i := uint8(0); i < t.n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(t.pos[i])))
	}
	sb.WriteByte(')')
	return sb.String()
}
