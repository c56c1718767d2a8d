package automaton

import (
	"maps"
	"slices"
)

// Definition is the plain-data 5-tuple used to construct an Automaton.
// It carries no guarantees; New validates it.
type Definition struct {
	States      []string                     `json:"states" yaml:"states"`
	Alphabet    []string                     `json:"alphabet" yaml:"alphabet"`
	Initial     string                       `json:"initial" yaml:"initial"`
	Finals      []string                     `json:"finals" yaml:"finals"`
	Transitions map[string]map[string]string `json:"transitions" yaml:"transitions"`
}

// Automaton is a complete, well-formed deterministic finite automaton.
// It is immutable once built and safe for concurrent use.
type Automaton struct {
	states      []string
	alphabet    []string
	initial     string
	finals      []string
	transitions map[string]map[string]string

	stateSet  map[string]struct{}
	symbolSet map[string]struct{}
	finalSet  map[string]struct{}
	maxSymbol int // length in bytes of the longest symbol, used by Tokenize
}

// New validates def and returns a ready Automaton.
// On failure it returns a *StructuralError listing every violation.
func New(def Definition) (*Automaton, error) {
	def = normalize(def)
	if violations := check(def); len(violations) > 0 {
		return nil, &StructuralError{Violations: violations}
	}

	a := &Automaton{
		states:      def.States,
		alphabet:    def.Alphabet,
		initial:     def.Initial,
		finals:      def.Finals,
		transitions: def.Transitions,
		stateSet:    toSet(def.States),
		symbolSet:   toSet(def.Alphabet),
		finalSet:    toSet(def.Finals),
	}
	for _, sym := range a.alphabet {
		a.maxSymbol = max(a.maxSymbol, len(sym))
	}
	return a, nil
}

// MustNew is like New but panics on error. Intended for fixtures and examples.
func MustNew(def Definition) *Automaton {
	a, err := New(def)
	if err != nil {
		panic(err)
	}
	return a
}

// Check reports the well-formedness violations of def without building anything.
// An empty result means New(def) succeeds.
func Check(def Definition) []Violation {
	return check(normalize(def))
}

// Validate re-runs the construction checks. It never fails loudly.
func (a *Automaton) Validate() bool {
	return len(a.Violations()) == 0
}

// Violations returns the structured result of re-checking the automaton.
func (a *Automaton) Violations() []Violation {
	return check(a.Definition())
}

// States returns the declared states in declaration order.
func (a *Automaton) States() []string { return slices.Clone(a.states) }

// Alphabet returns the declared symbols in declaration order.
func (a *Automaton) Alphabet() []string { return slices.Clone(a.alphabet) }

// Initial returns the initial state.
func (a *Automaton) Initial() string { return a.initial }

// Finals returns the accepting states in declaration order.
func (a *Automaton) Finals() []string { return slices.Clone(a.finals) }

// Transitions returns a copy of the transition table.
func (a *Automaton) Transitions() map[string]map[string]string {
	return cloneTable(a.transitions)
}

// Definition returns a deep copy of the 5-tuple.
func (a *Automaton) Definition() Definition {
	return Definition{
		States:      a.States(),
		Alphabet:    a.Alphabet(),
		Initial:     a.initial,
		Finals:      a.Finals(),
		Transitions: a.Transitions(),
	}
}

// HasState reports whether state is declared.
func (a *Automaton) HasState(state string) bool {
	_, ok := a.stateSet[state]
	return ok
}

// HasSymbol reports whether symbol belongs to the alphabet.
func (a *Automaton) HasSymbol(symbol string) bool {
	_, ok := a.symbolSet[symbol]
	return ok
}

// IsFinal reports whether state is accepting.
func (a *Automaton) IsFinal(state string) bool {
	_, ok := a.finalSet[state]
	return ok
}

// Step returns δ(state, symbol).
func (a *Automaton) Step(state, symbol string) (string, bool) {
	row, ok := a.transitions[state]
	if !ok {
		return "", false
	}
	next, ok := row[symbol]
	return next, ok
}

// Equal reports whether both automata describe the same 5-tuple, including declaration order.
func (a *Automaton) Equal(other *Automaton) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.initial != other.initial ||
		!slices.Equal(a.states, other.states) ||
		!slices.Equal(a.alphabet, other.alphabet) ||
		!slices.Equal(a.finals, other.finals) {
		return false
	}
	return maps.EqualFunc(a.transitions, other.transitions, func(x, y map[string]string) bool {
		return maps.Equal(x, y)
	})
}

func check(def Definition) []Violation {
	var out []Violation

	if len(def.States) == 0 {
		out = append(out, Violation{Kind: EmptyStates})
	}
	if len(def.Alphabet) == 0 {
		out = append(out, Violation{Kind: EmptyAlphabet})
	}
	if slices.Contains(def.Alphabet, "") {
		out = append(out, Violation{Kind: EmptySymbol})
	}

	states := toSet(def.States)
	symbols := toSet(def.Alphabet)

	if _, ok := states[def.Initial]; !ok {
		out = append(out, Violation{Kind: UnknownInitial, State: def.Initial})
	}
	for _, f := range def.Finals {
		if _, ok := states[f]; !ok {
			out = append(out, Violation{Kind: UnknownFinal, State: f})
		}
	}

	for _, state := range def.States {
		row := def.Transitions[state]
		for _, sym := range def.Alphabet {
			if sym == "" {
				continue
			}
			target, ok := row[sym]
			if !ok {
				out = append(out, Violation{Kind: MissingTransition, State: state, Symbol: sym})
				continue
			}
			if _, ok := states[target]; !ok {
				out = append(out, Violation{Kind: UnknownTarget, State: state, Symbol: sym, Target: target})
			}
		}
		for _, sym := range slices.Sorted(maps.Keys(row)) {
			if _, ok := symbols[sym]; !ok {
				out = append(out, Violation{Kind: UnknownSymbol, State: state, Symbol: sym})
			}
		}
	}

	for _, state := range slices.Sorted(maps.Keys(def.Transitions)) {
		if _, ok := states[state]; !ok {
			out = append(out, Violation{Kind: UnknownSource, State: state})
		}
	}

	return out
}

// normalize copies def and collapses duplicate states, symbols and finals.
func normalize(def Definition) Definition {
	return Definition{
		States:      dedupe(def.States),
		Alphabet:    dedupe(def.Alphabet),
		Initial:     def.Initial,
		Finals:      dedupe(def.Finals),
		Transitions: cloneTable(def.Transitions),
	}
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func toSet(in []string) map[string]struct{} {
	set := make(map[string]struct{}, len(in))
	for _, s := range in {
		set[s] = struct{}{}
	}
	return set
}

func cloneTable(in map[string]map[string]string) map[string]map[string]string {
	out := make(map[string]map[string]string, len(in))
	for state, row := range in {
		out[state] = maps.Clone(row)
		if out[state] == nil {
			out[state] = map[string]string{}
		}
	}
	return out
}
