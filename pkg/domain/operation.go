package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Operation is one of the four binary arithmetic operations a move can apply.
type Operation int

const (
	Plus Operation = iota
	Minus
	Times
	Divide
)

// Operations lists every operation in move-generation order.
var Operations = [...]Operation{Plus, Minus, Times, Divide}

var symbols = [...]string{
	Plus:   "+",
	Minus:  "-",
	Times:  "*",
	Divide: "/",
}

// Symbol returns the character used for the operation in history records.
func (o Operation) Symbol() string {
	o.mustBeValid()
	return symbols[o]
}

func (o Operation) String() string {
	return o.Symbol()
}

// Commutative reports whether swapping the operands leaves the result unchanged.
func (o Operation) Commutative() bool {
	o.mustBeValid()
	return o == Plus || o == Times
}

// Apply computes a <op> b. The boolean is false when the operation has no integer
// result: inexact division, division by zero, or a result that overflows int.
func (o Operation) Apply(a, b int) (int, bool) {
	switch o {
	case Plus:
		sum := a + b
		// Overflow flips the sign away from both (same-signed) operands.
		if (a^sum)&(b^sum) < 0 {
			return 0, false
		}
		return sum, true
	case Minus:
		diff := a - b
		if (a^b)&(a^diff) < 0 {
			return 0, false
		}
		return diff, true
	case Times:
		if a == 0 || b == 0 {
			return 0, true
		}
		if (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
			return 0, false
		}
		prod := a * b
		if prod/b != a {
			return 0, false
		}
		return prod, true
	case Divide:
		if b == 0 || (a == math.MinInt && b == -1) || a%b != 0 {
			return 0, false
		}
		return a / b, true
	}
	panic(fmt.Sprintf("unreachable: unrecognized operation %d", int(o)))
}

func (o Operation) mustBeValid() {
	if o < Plus || o > Divide {
		panic(fmt.Sprintf("unreachable: unrecognized operation %d", int(o)))
	}
}

// Record formats a single history entry, e.g. "3+4=7".
func Record(a int, op Operation, b, result int) string {
	return fmt.Sprintf("%d%s%d=%d", a, op.Symbol(), b, result)
}

// Step is a parsed history record.
type Step struct {
	A      int
	Op     Operation
	B      int
	Result int
}

func (s Step) String() string {
	return Record(s.A, s.Op, s.B, s.Result)
}

// ParseRecord parses a history record such as "3+4=7" or "2--1=3".
// It checks the syntax only; use Verify to check the arithmetic.
func ParseRecord(record string) (Step, error) {
	eq := strings.LastIndexByte(record, '=')
	if eq <= 0 {
		return Step{}, fmt.Errorf("malformed record %q: missing '='", record)
	}
	lhs := record[:eq]

	// Skip a's optional sign and digits; the next byte is the operator.
	i := 0
	if lhs[0] == '-' {
		i = 1
	}
	for i < len(lhs) && lhs[i] >= '0' && lhs[i] <= '9' {
		i++
	}
	if i >= len(lhs) {
		return Step{}, fmt.Errorf("malformed record %q: missing operator", record)
	}

	op, ok := operationFor(lhs[i])
	if !ok {
		return Step{}, fmt.Errorf("malformed record %q: unknown operator %q", record, lhs[i])
	}
	a, err := strconv.Atoi(lhs[:i])
	if err != nil {
		return Step{}, fmt.Errorf("malformed record %q: %w", record, err)
	}
	b, err := strconv.Atoi(lhs[i+1:])
	if err != nil {
		return Step{}, fmt.Errorf("malformed record %q: %w", record, err)
	}
	result, err := strconv.Atoi(record[eq+1:])
	if err != nil {
		return Step{}, fmt.Errorf("malformed record %q: %w", record, err)
	}
	return Step{A: a, Op: op, B: b, Result: result}, nil
}

// Verify reports whether the step is a legal move: exact, and not producing zero.
func (s Step) Verify() bool {
	got, ok := s.Op.Apply(s.A, s.B)
	return ok && got == s.Result && got != 0
}

func operationFor(c byte) (Operation, bool) {
	for _, op := range Operations {
		if symbols[op][0] == c {
			return op, true
		}
	}
	return 0, false
}
