// Package editor holds the logical side of a graphical automaton editor.
//
// A Graph is what a drawing surface edits: nodes, labelled edges, the initial
// marker and the accepting markers. It never carries positions, colours or
// selection. ToAutomaton is the single conversion point into the core.
package editor

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/dfa/pkg/automaton"
)

var (
	// ErrIncompleteGraph is returned when the graph has no nodes, no initial state or no edges.
	ErrIncompleteGraph = errors.New("graph needs states, an initial state and transitions")
	// ErrNoSymbols is returned when no edge carries a symbol.
	ErrNoSymbols = errors.New("no symbol defined on any transition")
	// ErrUnknownNode is returned when an operation references a node that does not exist.
	ErrUnknownNode = errors.New("unknown node")
	// ErrDuplicateNode is returned when adding a node whose ID is taken.
	ErrDuplicateNode = errors.New("node already exists")
	// ErrEmptyLabel is returned when an edge label holds no symbol.
	ErrEmptyLabel = errors.New("edge label needs at least one symbol")
)

// DuplicateTransitionError reports two edges leaving State on the same Symbol.
type DuplicateTransitionError struct {
	State   string
	Symbol  string
	Targets [2]string
}

func (e *DuplicateTransitionError) Error() string {
	return fmt.Sprintf("duplicate transition: state %q on symbol %q goes to both %q and %q",
		e.State, e.Symbol, e.Targets[0], e.Targets[1])
}

// Edge is a directed connection labelled with one or more symbols.
type Edge struct {
	From    string   `json:"from"`
	To      string   `json:"to"`
	Symbols []string `json:"symbols"`
}

// Label renders the symbols the way an editor shows them on the arrow.
func (e Edge) Label() string { return strings.Join(e.Symbols, ",") }

// IsLoop reports whether the edge starts and ends on the same node.
func (e Edge) IsLoop() bool { return e.From == e.To }

// Graph is the mutable editing model. It is not safe for concurrent use.
type Graph struct {
	nodes   []string
	edges   []*Edge
	initial string
	finals  map[string]bool
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{finals: make(map[string]bool)}
}

// AddNode adds a state.
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrUnknownNode)
	}
	if g.HasNode(id) {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, id)
	}
	g.nodes = append(g.nodes, id)
	return nil
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id string) bool {
	return slices.Contains(g.nodes, id)
}

// RemoveNode deletes a node with every edge touching it and its markers.
func (g *Graph) RemoveNode(id string) error {
	idx := slices.Index(g.nodes, id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	g.nodes = slices.Delete(g.nodes, idx, idx+1)
	g.edges = slices.DeleteFunc(g.edges, func(e *Edge) bool {
		return e.From == id || e.To == id
	})
	if g.initial == id {
		g.initial = ""
	}
	delete(g.finals, id)
	return nil
}

// RenameNode changes a node ID. Edges and markers follow the node.
func (g *Graph) RenameNode(oldID, newID string) error {
	idx := slices.Index(g.nodes, oldID)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownNode, oldID)
	}
	if newID == oldID {
		return nil
	}
	if newID == "" {
		return fmt.Errorf("%w: empty id", ErrUnknownNode)
	}
	if g.HasNode(newID) {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, newID)
	}

	g.nodes[idx] = newID
	for _, e := range g.edges {
		if e.From == oldID {
			e.From = newID
		}
		if e.To == oldID {
			e.To = newID
		}
	}
	if g.initial == oldID {
		g.initial = newID
	}
	if g.finals[oldID] {
		delete(g.finals, oldID)
		g.finals[newID] = true
	}
	return nil
}

// SetInitial marks id as the initial state, replacing any previous one.
func (g *Graph) SetInitial(id string) error {
	if !g.HasNode(id) {
		return fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	g.initial = id
	return nil
}

// ToggleFinal flips the accepting marker of id and returns the new value.
func (g *Graph) ToggleFinal(id string) (bool, error) {
	if !g.HasNode(id) {
		return false, fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	if g.finals[id] {
		delete(g.finals, id)
		return false, nil
	}
	g.finals[id] = true
	return true, nil
}

// Initial returns the initial node, or "" if none is set.
func (g *Graph) Initial() string { return g.initial }

// IsFinal reports whether id carries the accepting marker.
func (g *Graph) IsFinal(id string) bool { return g.finals[id] }

// Nodes returns node IDs in creation order.
func (g *Graph) Nodes() []string { return slices.Clone(g.nodes) }

// Finals returns accepting nodes in creation order.
func (g *Graph) Finals() []string {
	out := make([]string, 0, len(g.finals))
	for _, n := range g.nodes {
		if g.finals[n] {
			out = append(out, n)
		}
	}
	return out
}

// Edges returns copies of the edges in creation order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	for i, e := range g.edges {
		out[i] = Edge{From: e.From, To: e.To, Symbols: slices.Clone(e.Symbols)}
	}
	return out
}

// AddEdge connects from to to with the given symbols.
// Symbols are trimmed and deduplicated; an existing from→to edge absorbs the new symbols.
func (g *Graph) AddEdge(from, to string, symbols ...string) (Edge, error) {
	if !g.HasNode(from) {
		return Edge{}, fmt.Errorf("%w: %q", ErrUnknownNode, from)
	}
	if !g.HasNode(to) {
		return Edge{}, fmt.Errorf("%w: %q", ErrUnknownNode, to)
	}
	clean := cleanSymbols(symbols)

	for _, e := range g.edges {
		if e.From == from && e.To == to {
			for _, s := range clean {
				if !slices.Contains(e.Symbols, s) {
					e.Symbols = append(e.Symbols, s)
				}
			}
			return *e, nil
		}
	}

	e := &Edge{From: from, To: to, Symbols: clean}
	g.edges = append(g.edges, e)
	return *e, nil
}

// SetEdgeSymbols replaces the label of the from→to edge.
// A label that is blank after trimming leaves the edge untouched.
func (g *Graph) SetEdgeSymbols(from, to string, symbols ...string) error {
	clean := cleanSymbols(symbols)
	if len(clean) == 0 {
		return ErrEmptyLabel
	}
	for _, e := range g.edges {
		if e.From == from && e.To == to {
			e.Symbols = clean
			return nil
		}
	}
	return fmt.Errorf("%w: no edge %q -> %q", ErrUnknownNode, from, to)
}

// RemoveEdge deletes the from→to edge. It reports whether an edge was removed.
func (g *Graph) RemoveEdge(from, to string) bool {
	before := len(g.edges)
	g.edges = slices.DeleteFunc(g.edges, func(e *Edge) bool {
		return e.From == from && e.To == to
	})
	return len(g.edges) != before
}

// HasValidStructure reports whether the graph has the minimum needed for conversion.
func (g *Graph) HasValidStructure() bool {
	return len(g.nodes) > 0 && g.initial != "" && len(g.edges) > 0
}

// ParseSymbols splits a comma-separated edge label into unique trimmed symbols.
func ParseSymbols(raw string) []string {
	return cleanSymbols(strings.Split(raw, ","))
}

func cleanSymbols(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// ToAutomaton converts the graph into a validated automaton.
// The alphabet is the sorted set of symbols found on edges.
func (g *Graph) ToAutomaton() (*automaton.Automaton, error) {
	if !g.HasValidStructure() {
		return nil, ErrIncompleteGraph
	}

	var alphabet []string
	for _, e := range g.edges {
		for _, s := range e.Symbols {
			if !slices.Contains(alphabet, s) {
				alphabet = append(alphabet, s)
			}
		}
	}
	if len(alphabet) == 0 {
		return nil, ErrNoSymbols
	}
	slices.Sort(alphabet)

	transitions := make(map[string]map[string]string, len(g.nodes))
	for _, n := range g.nodes {
		transitions[n] = make(map[string]string)
	}
	for _, e := range g.edges {
		for _, s := range e.Symbols {
			if prev, ok := transitions[e.From][s]; ok {
				return nil, &DuplicateTransitionError{State: e.From, Symbol: s, Targets: [2]string{prev, e.To}}
			}
			transitions[e.From][s] = e.To
		}
	}

	return automaton.New(automaton.Definition{
		States:      g.Nodes(),
		Alphabet:    alphabet,
		Initial:     g.initial,
		Finals:      g.Finals(),
		Transitions: transitions,
	})
}

// FromAutomaton rebuilds an editable graph, one edge per (from, to) pair.
func FromAutomaton(a *automaton.Automaton) *Graph {
	g := New()
	for _, s := range a.States() {
		_ = g.AddNode(s)
	}
	g.initial = a.Initial()
	for _, f := range a.Finals() {
		g.finals[f] = true
	}
	for _, from := range a.States() {
		for _, sym := range a.Alphabet() {
			to, _ := a.Step(from, sym)
			_, _ = g.AddEdge(from, to, sym)
		}
	}
	return g
}
