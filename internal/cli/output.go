package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/dfa/internal/presentation/tui"
	"github.com/aretw0/dfa/pkg/automaton"
	"github.com/aretw0/dfa/pkg/runner"
)

// PrintSystemMessage prints a standardized system message.
func PrintSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && tui.IsTerminal(f)
}

// PrintMarkdown renders markdown with glamour on terminals and writes it
// unchanged elsewhere.
func PrintMarkdown(w io.Writer, markdown string) error {
	render := tui.Plain
	if IsTerminal(w) {
		render = tui.NewRenderer()
	}
	out, err := render(markdown)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err = io.WriteString(w, out)
	return err
}

// PrintTrace writes a simulation trace. Terminals get the glamour rendering,
// anything else gets a plain table.
func PrintTrace(w io.Writer, input string, res *automaton.TraceResult) error {
	if IsTerminal(w) {
		return PrintMarkdown(w, tui.TraceMarkdown(input, res))
	}
	return WriteTraceTable(w, input, res)
}

// WriteTraceTable writes one line per step followed by the verdict.
func WriteTraceTable(w io.Writer, input string, res *automaton.TraceResult) error {
	if input == "" {
		input = runner.Epsilon
	}
	fmt.Fprintf(w, "input: %s\n", input)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tFROM\tSYMBOL\tTO")
	for i, step := range res.Steps {
		from, sym := step.From, step.Symbol
		if step.IsStart() {
			from, sym = "-", "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, from, sym, step.To)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s in state %s\n", tui.Verdict(w, res.Accepted), res.FinalState)
	return err
}

// WriteStrings prints generated strings one per line, the empty string as ε.
func WriteStrings(w io.Writer, words []string) error {
	var sb strings.Builder
	for _, word := range words {
		if word == "" {
			word = runner.Epsilon
		}
		sb.WriteString(word)
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
