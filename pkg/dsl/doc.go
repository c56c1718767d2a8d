/*
Package dsl provides a fluent Go API for constructing automata in code.

It is an alternative to hand-writing an automaton.Definition and is mostly
useful for tests, examples and generated machines.

Example usage:

	package main

	import (
		"github.com/aretw0/dfa/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.State("even").Initial().Final().
			On("0", "odd").
			On("1", "even")

		b.State("odd").
			On("0", "even").
			On("1", "odd")

		a, err := b.Build()
		// ... a.SimulateString("0110")
	}

States are declared in the order State is first called. The alphabet is the
sorted set of symbols used by On unless fixed explicitly with Alphabet.
*/
package dsl
