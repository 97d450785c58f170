package search

import (
	"slices"

	"github.com/aretw0/digits/pkg/domain"
)

// Solve returns the operation traces that reach target from operands.
// With all=false at most one trace is returned, and it is a shortest one.
func Solve(target int, operands []int, all bool) [][]string {
	solutions, _ := SolveStats(target, operands, all)
	return solutions
}

// Targets returns every value reachable from operands, ascending and without duplicates.
// The operands themselves are included.
func Targets(operands []int) []int {
	values, _ := TargetsStats(operands)
	return values
}

// SolveStats is Solve plus a description of the work done.
func SolveStats(target int, operands []int, all bool) ([][]string, domain.Stats) {
	solutions := [][]string{}
	stats := traverse(domain.NewState(operands), func(curr domain.State) bool {
		if !curr.Contains(target) {
			return true
		}
		solutions = append(solutions, curr.History)
		// Reaching the target ends the branch; without all, it ends the search.
		return false
	}, func() bool {
		return !all && len(solutions) > 0
	})
	return solutions, stats
}

// TargetsStats is Targets plus a description of the work done.
func TargetsStats(operands []int) ([]int, domain.Stats) {
	seen := make(map[int]struct{})
	stats := traverse(domain.NewState(operands), func(curr domain.State) bool {
		for _, v := range curr.Operands {
			seen[v] = struct{}{}
		}
		return true
	}, nil)

	values := make([]int, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	slices.Sort(values)
	return values, stats
}

// traverse runs the BFS from init. visit is called for every dequeued state and
// returns whether the state should be expanded. done, if set, is checked after each
// visit and ends the traversal when it returns true.
func traverse(init domain.State, visit func(domain.State) bool, done func() bool) domain.Stats {
	frontier := newQueue(init)
	visited := map[string]struct{}{init.Key(): {}}

	var stats domain.Stats
	for frontier.Len() > 0 {
		curr := frontier.Pop()
		stats.Depth = max(stats.Depth, curr.Depth())

		expand := visit(curr)
		if done != nil && done() {
			break
		}
		if !expand || len(curr.Operands) < 2 {
			continue
		}

		stats.Expanded++
		for succ := range curr.Moves() {
			key := succ.Key()
			if _, ok := visited[key]; ok {
				continue
			}
			visited[key] = struct{}{}
			frontier.Push(succ)
		}
	}

	stats.Visited = len(visited)
	return stats
}
