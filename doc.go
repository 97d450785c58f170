/*
Package digits solves arithmetic "Digits" puzzles.

Given a multiset of integer operands, the solver combines pairs of operands with
+, -, * and exact / until a target value appears, or enumerates every value that can
appear at all. Zero results and inexact divisions are never produced.

# Concept

Every node of the search is an immutable domain.State: the remaining operands, sorted,
plus the history of operations that produced them. States with the same remaining
operands are the same node, so the breadth-first search explores each operand set once
and returns shortest solutions first.

The pure search lives in package search. Engine wraps it with input limits, an optional
result cache (memory, file or Redis), lifecycle hooks for metrics, and structured logging,
and is what the CLI, HTTP and MCP adapters use.

# Usage

	eng := digits.New()

	result, err := eng.Solve(context.Background(), 24, []int{4, 6, 8, 2}, false)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(result.Solutions) // [[4*6=24]]

	reach, _ := eng.Targets(context.Background(), []int{2, 3})
	fmt.Println(reach.Values) // [-1 1 2 3 5 6]

# History Records

Each operation is recorded as "<a><op><b>=<result>", for example "3+4=7" or "2-3=-1".
*/
package digits
