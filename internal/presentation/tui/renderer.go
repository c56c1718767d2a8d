// Package tui renders simulation results for terminals.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/dfa/pkg/automaton"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Renderer turns markdown into terminal output.
type Renderer func(string) (string, error)

// NewRenderer returns a glamour renderer that adapts to the terminal background.
// If glamour cannot be initialized the markdown is returned unchanged.
func NewRenderer() Renderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return Plain
	}
	return r.Render
}

// Plain returns markdown unchanged.
func Plain(markdown string) (string, error) { return markdown, nil }

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TraceMarkdown describes a trace as a markdown table followed by the verdict.
func TraceMarkdown(input string, res *automaton.TraceResult) string {
	var sb strings.Builder
	if input == "" {
		input = "ε"
	}
	fmt.Fprintf(&sb, "## Simulation of `%s`\n\n", input)
	sb.WriteString("| Step | From | Symbol | To |\n")
	sb.WriteString("|---:|---|---|---|\n")
	for i, step := range res.Steps {
		from, sym := step.From, step.Symbol
		if step.IsStart() {
			from, sym = "→", "-"
		}
		fmt.Fprintf(&sb, "| %d | %s | %s | **%s** |\n", i, cell(from), cell(sym), cell(step.To))
	}
	verdict := "REJECTED"
	if res.Accepted {
		verdict = "ACCEPTED"
	}
	fmt.Fprintf(&sb, "\n**%s** in state `%s`\n", verdict, res.FinalState)
	return sb.String()
}

// cell escapes characters that would break a table cell.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
