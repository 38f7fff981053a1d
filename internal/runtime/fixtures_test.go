package runtime_test

import (
	"testing"

	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/stretchr/testify/require"
)

func buildNFAE(t *testing.T, d *automaton.NFAEDefinition) *automaton.NFAE {
	t.Helper()
	a, err := automaton.BuildNFAE(d)
	require.NoError(t, err)
	return a
}

func buildPDA(t *testing.T, d *automaton.PDADefinition) *automaton.PDA {
	t.Helper()
	a, err := automaton.BuildPDA(d)
	require.NoError(t, err)
	return a
}

func buildDTM(t *testing.T, d *automaton.DTMDefinition) *automaton.DTM {
	t.Helper()
	a, err := automaton.BuildDTM(d)
	require.NoError(t, err)
	return a
}

// abStar accepts {a,b}* with a single looping state.
func abStar() *automaton.NFAEDefinition {
	return &automaton.NFAEDefinition{
		Name:     "ab-star",
		States:   []string{"s"},
		Start:    "s",
		Finals:   []string{"s"},
		Alphabet: []string{"a", "b"},
		Transitions: map[string]map[string][]string{
			"s": {"a": {"s"}, "b": {"s"}},
		},
	}
}

// anbn accepts {aⁿbⁿ : n ≥ 1} by final state.
func anbn() *automaton.PDADefinition {
	return &automaton.PDADefinition{
		Name:          "anbn",
		States:        []string{"q0", "q1", "q2"},
		Start:         "q0",
		Finals:        []string{"q2"},
		InputAlphabet: []string{"a", "b"},
		StackAlphabet: []string{"Z", "A"},
		StartStack:    "Z",
		Transitions: map[string]map[string]map[string][]automaton.PDAMove{
			"q0": {
				"a": {
					"Z": {{Next: "q0", Push: "AZ"}},
					"A": {{Next: "q0", Push: "AA"}},
				},
				"b": {"A": {{Next: "q1", Push: ""}}},
			},
			"q1": {
				"b": {"A": {{Next: "q1", Push: ""}}},
				"":  {"Z": {{Next: "q2", Push: "Z"}}},
			},
		},
	}
}

// increment adds one to a binary number, carrying from the rightmost digit.
func increment(doubleSided bool) *automaton.DTMDefinition {
	return &automaton.DTMDefinition{
		Name:         "increment",
		States:       []string{"q0", "q1", "halt"},
		Start:        "q0",
		Finals:       []string{"halt"},
		TapeAlphabet: []string{"0", "1", "_"},
		Blank:        "_",
		DoubleSided:  doubleSided,
		Transitions: map[string]map[string]automaton.DTMAction{
			"q0": {
				"0": {Write: "0", Shift: "R", Next: "q0"},
				"1": {Write: "1", Shift: "R", Next: "q0"},
				"_": {Write: "_", Shift: "L", Next: "q1"},
			},
			"q1": {
				"1": {Write: "0", Shift: "L", Next: "q1"},
				"0": {Write: "1", Shift: "R", Next: "halt"},
				"_": {Write: "1", Shift: "R", Next: "halt"},
			},
		},
	}
}
