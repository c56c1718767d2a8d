package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/dfa/internal/presentation/tui"
	"github.com/aretw0/dfa/pkg/automaton"
)

func TestTraceMarkdown(t *testing.T) {
	a := automaton.MustNew(automaton.Definition{
		States:      []string{"q0", "q|1"},
		Alphabet:    []string{"a"},
		Initial:     "q0",
		Finals:      []string{"q|1"},
		Transitions: map[string]map[string]string{"q0": {"a": "q|1"}, "q|1": {"a": "q0"}},
	})
	res, err := a.SimulateString("a")
	if err != nil {
		t.Fatal(err)
	}

	md := tui.TraceMarkdown("a", res)
	for _, want := range []string{
		"## Simulation of `a`",
		"| 0 | → | - | **q0** |",
		`| 1 | q0 | a | **q\|1** |`,
		"**ACCEPTED** in state `q|1`",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected %q in:\n%s", want, md)
		}
	}

	empty, _ := a.SimulateString("")
	if md := tui.TraceMarkdown("", empty); !strings.Contains(md, "`ε`") || !strings.Contains(md, "REJECTED") {
		t.Errorf("unexpected markdown for empty input:\n%s", md)
	}
}

func TestVerdict_PlainWriter(t *testing.T) {
	var buf bytes.Buffer
	if got := tui.Verdict(&buf, true); got != "ACCEPTED" {
		t.Errorf("expected plain ACCEPTED, got %q", got)
	}
	if got := tui.Verdict(&buf, false); got != "REJECTED" {
		t.Errorf("expected plain REJECTED, got %q", got)
	}
}

func TestPlain(t *testing.T) {
	out, err := tui.Plain("# title")
	if err != nil || out != "# title" {
		t.Errorf("Plain changed its input: %q, %v", out, err)
	}
}
