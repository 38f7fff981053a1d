package acceptor_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/acceptor"
	"github.com/aretw0/acceptor/pkg/automaton"
)

// ExampleNewFromDefinitions demonstrates how to use the Engine with machines defined in code.
func ExampleNewFromDefinitions() {
	engine, err := acceptor.NewFromDefinitions([]automaton.Definition{
		&automaton.NFAEDefinition{
			Name:     "ends-ab",
			States:   []string{"s0", "s1", "s2"},
			Start:    "s0",
			Finals:   []string{"s2"},
			Alphabet: []string{"a", "b"},
			Transitions: map[string]map[string][]string{
				"s0": {"a": {"s0", "s1"}, "b": {"s0"}},
				"s1": {"b": {"s2"}},
			},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	for _, input := range []string{"aab", "aba", "abc"} {
		out, err := engine.Check(ctx, "ends-ab", input)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s: %s %v\n", input, out.Verdict, out.Trace.States())
	}

	// Output:
	// aab: accepted [s0 s0 s1 s2]
	// aba: rejected [s0 s0 s0 s0]
	// abc: malformed_input []
}

// ExampleEngine_CheckAll demonstrates checking one input against every machine of a descriptor file.
func ExampleEngine_CheckAll() {
	engine, err := acceptor.New("pkg/adapters/file/testdata/machines.yaml")
	if err != nil {
		log.Fatal(err)
	}

	results, err := engine.CheckAll(context.Background(), "ab")
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range results {
		fmt.Printf("%s (%s): %s\n", r.Machine, r.Kind, r.Outcome.Verdict)
	}

	// Output:
	// ab-star (nfae): accepted
	// anbn (pda): accepted
	// increment (dtm): malformed_input
}
