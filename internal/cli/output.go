package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/digits/internal/presentation/graph"
	"github.com/aretw0/digits/internal/presentation/tui"
	"github.com/aretw0/digits/pkg/domain"
)

// Format selects how results are printed.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatMermaid  Format = "mermaid"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatMarkdown, FormatMermaid:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json, markdown or mermaid)", s)
}

// Printer writes results to the terminal.
type Printer struct {
	Out    io.Writer
	Format Format
	Style  tui.Style
	// Render turns markdown into terminal output; used by FormatMarkdown.
	Render func(string) (string, error)
}

// NewPrinter creates a printer for out, coloring only when out is a terminal.
func NewPrinter(out io.Writer, format Format) *Printer {
	p := &Printer{
		Out:    out,
		Format: format,
		Style:  tui.NewStyle(out),
	}
	if format == FormatMarkdown {
		p.Render = tui.NewRenderer()
	}
	return p
}

// PrintSolve prints the solutions of a solve query.
func (p *Printer) PrintSolve(r *domain.Result) error {
	switch p.Format {
	case FormatJSON:
		return p.json(r)
	case FormatMarkdown:
		return p.markdown(solveMarkdown(r))
	case FormatMermaid:
		return p.mermaid(r)
	}

	if !r.Solved() {
		_, err := fmt.Fprintln(p.Out, p.Style.Faint(fmt.Sprintf("No solution for %d", r.Target)))
		return err
	}
	for _, trace := range r.Solutions {
		if _, err := fmt.Fprintln(p.Out, formatTrace(trace)); err != nil {
			return err
		}
	}
	return nil
}

// PrintTargets prints the reachable values of a targets query.
func (p *Printer) PrintTargets(r *domain.Result) error {
	switch p.Format {
	case FormatJSON:
		return p.json(r)
	case FormatMarkdown:
		return p.markdown(targetsMarkdown(r))
	case FormatMermaid:
		return fmt.Errorf("mermaid output is only available for solve")
	}

	if _, err := fmt.Fprintln(p.Out, p.Style.Heading(fmt.Sprintf("Found %d elements", len(r.Values)))); err != nil {
		return err
	}
	for _, v := range r.Values {
		if _, err := fmt.Fprintln(p.Out, p.Style.Value(strconv.Itoa(v))); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) json(r *domain.Result) error {
	enc := json.NewEncoder(p.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (p *Printer) markdown(md string) error {
	out := md
	if p.Render != nil {
		rendered, err := p.Render(md)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		out = rendered
	}
	_, err := io.WriteString(p.Out, out)
	return err
}

func (p *Printer) mermaid(r *domain.Result) error {
	for i, trace := range r.Solutions {
		chart, err := graph.GenerateMermaid(r.Operands, trace, r.Target)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(p.Out)
		}
		if _, err := io.WriteString(p.Out, chart); err != nil {
			return err
		}
	}
	return nil
}

func formatTrace(trace []string) string {
	if len(trace) == 0 {
		return "(no operations needed)"
	}
	return strings.Join(trace, ", ")
}

func solveMarkdown(r *domain.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Target %d\n\nOperands: `%s`\n\n", r.Target, joinValues(r.Operands))
	if !r.Solved() {
		sb.WriteString("_No solution._\n")
		return sb.String()
	}
	for i, trace := range r.Solutions {
		fmt.Fprintf(&sb, "%d. ", i+1)
		if len(trace) == 0 {
			sb.WriteString("_already present_\n")
			continue
		}
		for j, record := range trace {
			if j > 0 {
				sb.WriteString(" → ")
			}
			fmt.Fprintf(&sb, "`%s`", record)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func targetsMarkdown(r *domain.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Reachable values\n\nOperands: `%s`\n\nFound **%d** elements:\n\n", joinValues(r.Operands), len(r.Values))
	fmt.Fprintf(&sb, "`%s`\n", joinValues(r.Values))
	return sb.String()
}

func joinValues(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
