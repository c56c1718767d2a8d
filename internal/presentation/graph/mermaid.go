package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/dfa/pkg/automaton"
	"github.com/aretw0/dfa/pkg/editor"
)

// GraphOverlay contains dynamic simulation data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// GenerateMermaid produces a Mermaid flowchart for an automaton.
//
// Shapes:
//   - Accepting state: (((Double circle)))
//   - Other states: ((Circle))
//
// The initial state receives an arrow from an invisible entry point. Parallel
// transitions between the same pair of states share one edge whose label lists
// the symbols. Overlay styles mark visited and current states.
func GenerateMermaid(a *automaton.Automaton, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	ids := make(map[string]string, len(a.States()))
	for i, s := range a.States() {
		ids[s] = fmt.Sprintf("s%d", i)
	}

	sb.WriteString("    __entry[ ]\n")
	sb.WriteString("    style __entry fill:none,stroke:none\n")
	for _, s := range a.States() {
		opener, closer := "((", "))"
		if a.IsFinal(s) {
			opener, closer = "(((", ")))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", ids[s], opener, escapeLabel(s), closer)
	}

	fmt.Fprintf(&sb, "    __entry --> %s\n", ids[a.Initial()])
	for _, e := range editor.FromAutomaton(a).Edges() {
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", ids[e.From], escapeLabel(e.Label()), ids[e.To])
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text stays readable on both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, s := range overlay.VisitedStates {
			id, ok := ids[s]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", id)
		}
		if id, ok := ids[overlay.CurrentState]; ok {
			fmt.Fprintf(&sb, "    class %s current;\n", id)
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
