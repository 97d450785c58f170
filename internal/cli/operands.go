package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseOperands splits a --values argument into integers.
// Accepted forms are comma-separated ("4, 6,8") or whitespace-separated ("4 6 8").
// A single value without a separator is rejected, as is an empty list.
func ParseOperands(s string) ([]int, error) {
	trimmed := strings.TrimSpace(s)

	var fields []string
	switch {
	case strings.Contains(trimmed, ","):
		fields = strings.Split(strings.ReplaceAll(trimmed, " ", ""), ",")
	case strings.ContainsAny(trimmed, " \t"):
		fields = strings.Fields(trimmed)
	default:
		return nil, fmt.Errorf("unrecognized format for --values: %q (want two or more comma- or space-separated integers)", s)
	}

	operands := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid operand %q: %w", f, err)
		}
		operands = append(operands, v)
	}
	return operands, nil
}
