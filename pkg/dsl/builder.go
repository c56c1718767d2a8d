package dsl

import (
	"fmt"
	"slices"

	"github.com/aretw0/dfa/pkg/automaton"
)

// Builder manages the automaton construction.
type Builder struct {
	order    []string
	states   map[string]*StateBuilder
	initial  string
	alphabet []string
}

// New creates a new automaton builder.
func New() *Builder {
	return &Builder{
		states: make(map[string]*StateBuilder),
	}
}

// State declares a state.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(id string) *StateBuilder {
	if sb, ok := b.states[id]; ok {
		return sb
	}
	sb := &StateBuilder{
		id:      id,
		moves:   make(map[string]string),
		builder: b,
	}
	b.states[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Alphabet fixes the alphabet and its order instead of deriving it from transitions.
func (b *Builder) Alphabet(symbols ...string) *Builder {
	b.alphabet = slices.Clone(symbols)
	return b
}

// Build validates and returns the automaton.
func (b *Builder) Build() (*automaton.Automaton, error) {
	def := automaton.Definition{
		States:      slices.Clone(b.order),
		Alphabet:    b.alphabet,
		Initial:     b.initial,
		Transitions: make(map[string]map[string]string, len(b.order)),
	}

	var used []string
	for _, id := range b.order {
		sb := b.states[id]
		if sb.final {
			def.Finals = append(def.Finals, id)
		}
		row := make(map[string]string, len(sb.moves))
		for sym, to := range sb.moves {
			row[sym] = to
			if !slices.Contains(used, sym) {
				used = append(used, sym)
			}
		}
		def.Transitions[id] = row
	}

	if def.Alphabet == nil {
		slices.Sort(used)
		def.Alphabet = used
	}
	if def.Finals == nil {
		def.Finals = []string{}
	}

	a, err := automaton.New(def)
	if err != nil {
		return nil, fmt.Errorf("failed to build automaton: %w", err)
	}
	return a, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *automaton.Automaton {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}
