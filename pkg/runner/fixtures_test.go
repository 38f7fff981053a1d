package runner_test

import (
	"testing"
	"time"

	"github.com/aretw0/acceptor"
	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/stretchr/testify/require"
)

func abStar() *automaton.NFAEDefinition {
	return &automaton.NFAEDefinition{
		Name:        "ab-star",
		States:      []string{"s"},
		Start:       "s",
		Finals:      []string{"s"},
		Alphabet:    []string{"a", "b"},
		Transitions: map[string]map[string][]string{"s": {"a": {"s"}, "b": {"s"}}},
	}
}

func onlyA() *automaton.NFAEDefinition {
	return &automaton.NFAEDefinition{
		Name:        "only-a",
		States:      []string{"s"},
		Start:       "s",
		Finals:      []string{"s"},
		Alphabet:    []string{"a", "b"},
		Transitions: map[string]map[string][]string{"s": {"a": {"s"}}},
	}
}

// runaway moves right forever.
func runaway() *automaton.DTMDefinition {
	return &automaton.DTMDefinition{
		Name:         "runaway",
		States:       []string{"q", "f"},
		Start:        "q",
		Finals:       []string{"f"},
		TapeAlphabet: []string{"a", "_"},
		Blank:        "_",
		Transitions: map[string]map[string]automaton.DTMAction{
			"q": {
				"a": {Write: "a", Shift: "R", Next: "q"},
				"_": {Write: "_", Shift: "R", Next: "q"},
			},
		},
	}
}

func newEngine(t *testing.T, defs ...automaton.Definition) *acceptor.Engine {
	t.Helper()
	if len(defs) == 0 {
		defs = []automaton.Definition{abStar(), onlyA()}
	}
	e, err := acceptor.NewFromDefinitions(defs, acceptor.WithCheckTimeout(50*time.Millisecond))
	require.NoError(t, err)
	return e
}
