package domain

import (
	"fmt"
	"slices"
)

// ResultKind distinguishes the two query types.
type ResultKind string

const (
	KindSolve   ResultKind = "solve"
	KindTargets ResultKind = "targets"
)

// Stats describes the work done by one search.
type Stats struct {
	// Expanded counts states whose successors were generated.
	Expanded int `json:"expanded"`
	// Visited counts distinct canonical operand sets seen, including the initial one.
	Visited int `json:"visited"`
	// Depth is the largest number of operations among dequeued states.
	Depth int `json:"depth"`
}

// Result is the outcome of a solve or targets query.
type Result struct {
	Kind      ResultKind `json:"kind"`
	Target    int        `json:"target"`
	Operands  []int      `json:"operands"`
	All       bool       `json:"all,omitempty"`
	Solutions [][]string `json:"solutions"`
	Values    []int      `json:"values,omitempty"`
	Stats     Stats      `json:"stats"`
}

// Solved reports whether a solve query found at least one solution.
func (r *Result) Solved() bool {
	return len(r.Solutions) > 0
}

// SolveKey is the canonical cache key of a solve query.
func SolveKey(target int, operands []int, all bool) string {
	mode := "first"
	if all {
		mode = "all"
	}
	return fmt.Sprintf("%s:%d:%s:%s", KindSolve, target, mode, sortedKey(operands))
}

// TargetsKey is the canonical cache key of a targets query.
func TargetsKey(operands []int) string {
	return fmt.Sprintf("%s:%s", KindTargets, sortedKey(operands))
}

func sortedKey(operands []int) string {
	ops := slices.Clone(operands)
	slices.Sort(ops)
	return joinInts(ops)
}
