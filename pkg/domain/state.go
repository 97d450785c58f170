package domain

import (
	"iter"
	"slices"
	"strconv"
	"strings"
)

// State represents one node of the search space.
// It is never mutated after construction.
type State struct {
	// Operands is the remaining multiset, sorted ascending.
	Operands []int

	// History holds one record per operation applied so far, oldest first.
	History []string
}

// NewState creates the initial state for a puzzle.
// The operands are copied before sorting so the caller's slice is left untouched.
func NewState(operands []int) State {
	ops := slices.Clone(operands)
	slices.Sort(ops)
	return State{
		Operands: ops,
		History:  []string{},
	}
}

// Key returns the canonical identity of the state: its sorted operands.
// History does not take part in identity.
func (s State) Key() string {
	return joinInts(s.Operands)
}

// Contains reports whether value is among the remaining operands.
func (s State) Contains(value int) bool {
	_, found := slices.BinarySearch(s.Operands, value)
	return found
}

// Depth is the number of operations applied to reach the state.
func (s State) Depth() int {
	return len(s.History)
}

// Moves yields every state reachable by applying one operation to one pair of operands.
// Each call starts a fresh enumeration.
func (s State) Moves() iter.Seq[State] {
	return func(yield func(State) bool) {
		n := len(s.Operands)
		for _, op := range Operations {
			for i, j := range pairs(n, op.Commutative()) {
				a, b := s.Operands[i], s.Operands[j]
				result, ok := op.Apply(a, b)
				if !ok || result == 0 {
					continue
				}
				if !yield(s.successor(i, j, result, Record(a, op, b, result))) {
					return
				}
			}
		}
	}
}

// successor removes operands i and j, appends result and extends the history by one record.
func (s State) successor(i, j, result int, record string) State {
	lo, hi := min(i, j), max(i, j)

	ops := make([]int, 0, len(s.Operands)-1)
	ops = append(ops, s.Operands[:lo]...)
	ops = append(ops, s.Operands[lo+1:hi]...)
	ops = append(ops, s.Operands[hi+1:]...)
	ops = append(ops, result)
	slices.Sort(ops)

	history := make([]string, len(s.History), len(s.History)+1)
	copy(history, s.History)

	return State{
		Operands: ops,
		History:  append(history, record),
	}
}

// pairs yields index pairs (i, j) with i < j. Unless commutative, the reversed pair
// (j, i) follows each one.
func pairs(n int, commutative bool) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				if !yield(i, j) {
					return
				}
				if !commutative && !yield(j, i) {
					return
				}
			}
		}
	}
}

func joinInts(values []int) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}
