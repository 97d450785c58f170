package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/digits/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of one solution trace.
// Starting operands are drawn as circles, each operation result as a rectangle
// fed by the two values it consumed. Results equal to target are highlighted.
// Starting operands not used by the trace are still drawn, unconnected.
func GenerateMermaid(operands []int, trace []string, target int) (string, error) {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	// pool maps a value to the ids of the nodes currently holding it.
	pool := make(map[int][]string)
	take := func(v int, record string) (string, error) {
		ids := pool[v]
		if len(ids) == 0 {
			return "", fmt.Errorf("record %q uses %d, which is not available", record, v)
		}
		pool[v] = ids[1:]
		return ids[0], nil
	}

	for i, v := range domain.NewState(operands).Operands {
		id := fmt.Sprintf("n%d", i)
		pool[v] = append(pool[v], id)
		sb.WriteString(fmt.Sprintf("    %s((\"%d\"))\n", id, v))
	}

	var hits []string
	for k, record := range trace {
		step, err := domain.ParseRecord(record)
		if err != nil {
			return "", err
		}
		left, err := take(step.A, record)
		if err != nil {
			return "", err
		}
		right, err := take(step.B, record)
		if err != nil {
			return "", err
		}

		id := fmt.Sprintf("s%d", k+1)
		sb.WriteString(fmt.Sprintf("    %s[\"%d\"]\n", id, step.Result))
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", left, step.Op.Symbol(), id))
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", right, step.Op.Symbol(), id))
		pool[step.Result] = append(pool[step.Result], id)

		if step.Result == target {
			hits = append(hits, id)
		}
	}

	// A trace that needs no operations hits on a starting operand.
	if len(trace) == 0 && len(pool[target]) > 0 {
		hits = append(hits, pool[target][0])
	}

	if len(hits) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef target fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		for _, id := range hits {
			sb.WriteString(fmt.Sprintf("    class %s target;\n", id))
		}
	}

	return sb.String(), nil
}
