/*
Package dfa is a deterministic finite automaton engine: build an automaton,
simulate inputs with a full step trace, enumerate the strings it accepts and
persist it as a versioned document.

# Concept

An automaton is the classic 5-tuple of states, alphabet, transition function,
initial state and accepting states. Construction rejects anything that is not
a complete DFA, so every constructed Automaton is valid and immutable. The
Engine wraps one automaton with logging, lifecycle hooks and configured
generation bounds, and is what the CLI, HTTP and MCP adapters drive.

# Packages

  - pkg/automaton: the model, structural validation and simulation traces.
  - pkg/generator: breadth-first enumeration of accepted strings.
  - pkg/codec: the JSON (and YAML) document format.
  - pkg/editor, pkg/dsl: ways to assemble an automaton.
  - pkg/replay, pkg/runner: stepping through one trace, validating many inputs.
  - pkg/ports, pkg/adapters: where automata are stored.

# Usage

	eng, err := dfa.Open("even-zeros.json")
	if err != nil {
		log.Fatal(err)
	}

	trace, err := eng.Simulate(ctx, "1001")
	if err != nil {
		log.Fatal(err)
	}
	for _, step := range trace.Steps {
		fmt.Println(step.From, step.Symbol, step.To)
	}
	fmt.Println("accepted:", trace.Accepted)

	words, err := eng.Generate(ctx, 5, 10)
*/
package dfa
