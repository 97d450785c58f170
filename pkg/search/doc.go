/*
Package search implements the breadth-first traversal over Digits puzzle states.

Two traversals share the same frontier and deduplication discipline:

  - Solve stops at states whose operands contain the target and returns their histories,
    shortest first. With all=false it returns at most one solution.
  - Targets never checks a target; it collects every operand value seen in any reachable state.

States are deduplicated by their canonical operand multiset (domain.State.Key), so two
derivations of the same remaining values are explored once, via the first one found.

A search is synchronous and owns all of its data; concurrent searches are independent.
*/
package search
