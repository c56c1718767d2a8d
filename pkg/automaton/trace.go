package automaton

import "unicode/utf8"

// TraceStep records one move of the automaton.
// The leading step of every trace has empty From and Symbol and To set to the initial state.
type TraceStep struct {
	From   string `json:"from_state,omitempty"`
	Symbol string `json:"symbol,omitempty"`
	To     string `json:"to_state"`
}

// IsStart reports whether the step is the synthetic leading step.
func (s TraceStep) IsStart() bool {
	return s.From == "" && s.Symbol == ""
}

// TraceResult is the outcome of a full simulation.
type TraceResult struct {
	Accepted   bool        `json:"accepted"`
	FinalState string      `json:"final_state"`
	Steps      []TraceStep `json:"steps"`
}

// Path returns the sequence of visited states, initial state first.
func (r *TraceResult) Path() []string {
	path := make([]string, len(r.Steps))
	for i, s := range r.Steps {
		path[i] = s.To
	}
	return path
}

// Symbols returns the consumed input symbols in order.
func (r *TraceResult) Symbols() []string {
	if len(r.Steps) == 0 {
		return nil
	}
	syms := make([]string, 0, len(r.Steps)-1)
	for _, s := range r.Steps[1:] {
		syms = append(syms, s.Symbol)
	}
	return syms
}

// Simulate runs the automaton over a sequence of symbols.
// Any symbol outside the alphabet fails the whole call with a *SimulationError.
func (a *Automaton) Simulate(symbols []string) (*TraceResult, error) {
	for i, sym := range symbols {
		if !a.HasSymbol(sym) {
			return nil, &SimulationError{Symbol: sym, Position: i, Alphabet: a.Alphabet()}
		}
	}

	current := a.initial
	steps := make([]TraceStep, 0, len(symbols)+1)
	steps = append(steps, TraceStep{To: current})

	for _, sym := range symbols {
		next := a.transitions[current][sym]
		steps = append(steps, TraceStep{From: current, Symbol: sym, To: next})
		current = next
	}

	return &TraceResult{
		Accepted:   a.IsFinal(current),
		FinalState: current,
		Steps:      steps,
	}, nil
}

// SimulateString tokenizes input against the alphabet and simulates it.
func (a *Automaton) SimulateString(input string) (*TraceResult, error) {
	symbols, err := a.Tokenize(input)
	if err != nil {
		return nil, err
	}
	return a.Simulate(symbols)
}

// Accepts reports whether input is accepted. Unreadable input is rejected.
func (a *Automaton) Accepts(input string) bool {
	res, err := a.SimulateString(input)
	return err == nil && res.Accepted
}

// Tokenize splits input into alphabet symbols.
// When several splits exist the longest symbol is taken at each position,
// as long as the rest of the input can still be read. Input fails only when
// no split exists; the SimulationError then names the rune at the furthest
// position any split can reach, and Position counts the fewest symbols
// needed to get there.
func (a *Automaton) Tokenize(input string) ([]string, error) {
	n := len(input)

	// readable[i] holds the length of the symbol to take at i, or 0 when the
	// suffix starting at i cannot be split.
	readable := make([]int, n+1)
	for i := n - 1; i >= 0; i-- {
		for size := min(a.maxSymbol, n-i); size > 0; size-- {
			if a.HasSymbol(input[i:i+size]) && (i+size == n || readable[i+size] > 0) {
				readable[i] = size
				break
			}
		}
	}

	if n == 0 || readable[0] > 0 {
		symbols := make([]string, 0, n)
		for i := 0; i < n; i += readable[i] {
			symbols = append(symbols, input[i:i+readable[i]])
		}
		return symbols, nil
	}

	pos, count := a.furthestPrefix(input)
	_, size := utf8.DecodeRuneInString(input[pos:])
	return nil, &SimulationError{Symbol: input[pos : pos+size], Position: count, Alphabet: a.Alphabet()}
}

// furthestPrefix returns the furthest byte offset reachable by reading
// symbols from the start of input, with the fewest symbols needed to get there.
func (a *Automaton) furthestPrefix(input string) (pos, count int) {
	n := len(input)
	steps := make([]int, n+1)
	for i := range steps {
		steps[i] = -1
	}
	steps[0] = 0

	for i := 0; i < n; i++ {
		if steps[i] < 0 {
			continue
		}
		pos, count = i, steps[i]
		for size := min(a.maxSymbol, n-i); size > 0; size-- {
			j := i + size
			if a.HasSymbol(input[i:j]) && (steps[j] < 0 || steps[j] > steps[i]+1) {
				steps[j] = steps[i] + 1
			}
		}
	}
	return pos, count
}
