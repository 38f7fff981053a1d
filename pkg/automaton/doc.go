// Package automaton holds the descriptions of the machines the acceptor can run.
//
// A Definition is the raw, caller supplied description of one machine (ε-NFA,
// PDA or DTM). Build validates it in full and returns an immutable Automaton, or
// a *DescriptorError listing every problem found. A half valid Automaton is never
// returned.
//
//	nfa, err := automaton.Build(&automaton.NFAEDefinition{
//	    Name:     "ab-star",
//	    States:   []string{"s"},
//	    Start:    "s",
//	    Finals:   []string{"s"},
//	    Alphabet: []string{"a", "b"},
//	    Transitions: map[string]map[string][]string{
//	        "s": {"a": {"s"}, "b": {"s"}},
//	    },
//	})
//
// In a Definition the empty string key stands for ε. Automata are closed over
// three variants; the runtime dispatches on the concrete type.
package automaton
