package domain_test

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/aretw0/digits/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(s domain.State) []domain.State {
	return slices.Collect(s.Moves())
}

func TestNewState_Canonical(t *testing.T) {
	permutations := [][]int{
		{4, 6, 8, 2},
		{2, 4, 6, 8},
		{8, 6, 4, 2},
		{6, 2, 8, 4},
	}

	want := domain.NewState(permutations[0])
	for _, p := range permutations {
		s := domain.NewState(p)
		assert.Equal(t, []int{2, 4, 6, 8}, s.Operands)
		assert.Equal(t, want.Key(), s.Key())
	}
	assert.Equal(t, "2,4,6,8", want.Key())
}

func TestNewState_DoesNotMutateInput(t *testing.T) {
	input := []int{3, 1, 2}
	s := domain.NewState(input)

	assert.Equal(t, []int{3, 1, 2}, input)
	assert.Equal(t, []int{1, 2, 3}, s.Operands)
	assert.Empty(t, s.History)
	assert.Equal(t, 0, s.Depth())
}

func TestState_KeyIgnoresHistory(t *testing.T) {
	a := domain.State{Operands: []int{1, 5}, History: []string{"2+3=5"}}
	b := domain.State{Operands: []int{1, 5}, History: []string{"10/2=5"}}
	assert.Equal(t, a.Key(), b.Key())
}

func TestState_Contains(t *testing.T) {
	s := domain.NewState([]int{9, -1, 4})
	assert.True(t, s.Contains(-1))
	assert.True(t, s.Contains(9))
	assert.False(t, s.Contains(5))
}

func TestMoves_TwoOperands(t *testing.T) {
	moves := collect(domain.NewState([]int{2, 3}))

	var records []string
	for _, m := range moves {
		require.Len(t, m.History, 1)
		require.Len(t, m.Operands, 1)
		records = append(records, m.History[0])
	}

	// Plus (one ordering), Minus (both), Times (one ordering), Divide (neither is exact).
	assert.Equal(t, []string{"2+3=5", "2-3=-1", "3-2=1", "2*3=6"}, records)
}

func TestMoves_OrderIsDeterministic(t *testing.T) {
	s := domain.NewState([]int{1, 2, 3})
	first := collect(s)
	second := collect(s)
	assert.Equal(t, first, second)
}

func TestMoves_ZeroResultsExcluded(t *testing.T) {
	moves := collect(domain.NewState([]int{5, 5}))

	for _, m := range moves {
		assert.NotContains(t, m.Operands, 0)
		assert.NotContains(t, m.History, "5-5=0")
	}
	// 5+5, 5*5, 5/5 twice (both orderings of equal values).
	assert.Len(t, moves, 4)
}

func TestMoves_DivisionIsExact(t *testing.T) {
	moves := collect(domain.NewState([]int{3, 7, 12, 25}))

	for _, m := range moves {
		record := m.History[0]
		if !strings.Contains(record, "/") {
			continue
		}
		var a, b, result int
		n, err := fmt.Sscanf(record, "%d/%d=%d", &a, &b, &result)
		require.NoError(t, err)
		require.Equal(t, 3, n)
		assert.Zero(t, a%b, "inexact division recorded: %s", record)
		assert.Equal(t, a/b, result)
	}
	assert.Contains(t, recordsOf(moves), "12/3=4")
	assert.NotContains(t, recordsOf(moves), "25/3=8")
}

func TestMoves_SuccessorsDoNotShareStorage(t *testing.T) {
	parent := domain.State{Operands: []int{1, 2, 3}, History: []string{"0+1=1"}}
	moves := collect(parent)
	require.NotEmpty(t, moves)

	moves[0].History[0] = "tampered"
	moves[0].Operands[0] = 99

	assert.Equal(t, []string{"0+1=1"}, parent.History)
	assert.Equal(t, []int{1, 2, 3}, parent.Operands)
	for _, m := range moves[1:] {
		assert.Equal(t, "0+1=1", m.History[0])
		assert.Len(t, m.History, 2)
	}
}

func TestMoves_SuccessorsAreSorted(t *testing.T) {
	for m := range domain.NewState([]int{1, 4, 9, 10}).Moves() {
		assert.True(t, slices.IsSorted(m.Operands), "unsorted operands %v", m.Operands)
		assert.Len(t, m.Operands, 3)
	}
}

func TestMoves_EarlyStop(t *testing.T) {
	count := 0
	for range domain.NewState([]int{1, 2, 3, 4}).Moves() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestMoves_FewerThanTwoOperands(t *testing.T) {
	assert.Empty(t, collect(domain.NewState([]int{5})))
	assert.Empty(t, collect(domain.NewState(nil)))
}

func recordsOf(states []domain.State) []string {
	out := make([]string, 0, len(states))
	for _, s := range states {
		out = append(out, s.History[len(s.History)-1])
	}
	return out
}
