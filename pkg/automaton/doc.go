/*
Package automaton models complete deterministic finite automata.

An Automaton is the 5-tuple (states, alphabet, initial, finals, transitions)
where the transition function is total over states × alphabet. Construction is
fail-fast: New either returns a ready Automaton or a *StructuralError naming
every violated condition, so no partially valid automaton ever escapes.

	a, err := automaton.New(automaton.Definition{
		States:   []string{"q0", "q1"},
		Alphabet: []string{"0", "1"},
		Initial:  "q0",
		Finals:   []string{"q1"},
		Transitions: map[string]map[string]string{
			"q0": {"0": "q0", "1": "q1"},
			"q1": {"0": "q1", "1": "q0"},
		},
	})
	if err != nil {
		// errors.Is(err, automaton.ErrUnknownInitial), errors.As(err, &violation), ...
	}

	res, err := a.SimulateString("101")
	// res.Accepted == false, res.FinalState == "q0", len(res.Steps) == 4

Simulation is a pure function of the automaton and the input. An input
containing a symbol outside the alphabet yields a *SimulationError and no
trace at all.
*/
package automaton
