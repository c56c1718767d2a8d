package dfa_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/dfa"
	"github.com/aretw0/dfa/pkg/dsl"
)

// ExampleNew builds an automaton with the DSL and inspects a trace.
func ExampleNew() {
	b := dsl.New()
	b.State("even").Initial().Final().On("a", "odd").Loop("b")
	b.State("odd").On("a", "even").Loop("b")

	eng, err := dfa.New(b.MustBuild())
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	trace, err := eng.Simulate(ctx, "aba")
	if err != nil {
		log.Fatal(err)
	}
	for _, step := range trace.Steps[1:] {
		fmt.Printf("%s --%s--> %s\n", step.From, step.Symbol, step.To)
	}
	fmt.Println("accepted:", trace.Accepted)

	words, err := eng.Generate(ctx, 4, 3)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%q\n", words)

	// Output:
	// even --a--> odd
	// odd --b--> odd
	// odd --a--> even
	// accepted: true
	// ["" "b" "aa" "bb"]
}
