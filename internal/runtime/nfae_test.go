package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/acceptor/internal/runtime"
	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNFAE_SelfLoopTrace(t *testing.T) {
	a := buildNFAE(t, abStar())

	out := runtime.Check(context.Background(), a, "aab")

	require.Equal(t, domain.VerdictAccepted, out.Verdict)
	require.NoError(t, out.Err())
	require.Len(t, out.Trace, 4)
	assert.Equal(t, []domain.State{"s", "s", "s", "s"}, out.Trace.States())
	assert.Equal(t, "aab", out.Trace[0].Remaining)
	assert.Equal(t, "b", out.Trace[2].Remaining)
	assert.Equal(t, "", out.Trace[3].Remaining)
}

func TestNFAE_UnknownSymbol(t *testing.T) {
	a := buildNFAE(t, abStar())

	out := runtime.Check(context.Background(), a, "ac")

	assert.Equal(t, domain.VerdictMalformedInput, out.Verdict)
	assert.Equal(t, domain.Symbol('c'), out.Symbol)
	assert.Equal(t, 1, out.Offset)
	assert.ErrorIs(t, out.Err(), domain.ErrMalformedInput)

	var mie *domain.MalformedInputError
	require.True(t, errors.As(out.Err(), &mie))
	assert.Equal(t, 1, mie.Offset)
}

func TestNFAE_UnknownSymbolBeatsEarlyDeadEnd(t *testing.T) {
	// No move on 'b' at all, so a search would die before reaching 'x'.
	a := buildNFAE(t, &automaton.NFAEDefinition{
		Name:        "only-a",
		States:      []string{"s"},
		Start:       "s",
		Finals:      []string{"s"},
		Alphabet:    []string{"a", "b"},
		Transitions: map[string]map[string][]string{"s": {"a": {"s"}}},
	})

	out := runtime.Check(context.Background(), a, "bx")

	assert.Equal(t, domain.VerdictMalformedInput, out.Verdict)
	assert.Equal(t, 1, out.Offset)
}

func TestNFAE_EpsilonCycleTerminates(t *testing.T) {
	a := buildNFAE(t, &automaton.NFAEDefinition{
		Name:     "cycle",
		States:   []string{"A", "B"},
		Start:    "A",
		Alphabet: []string{"a"},
		Transitions: map[string]map[string][]string{
			"A": {"": {"B"}},
			"B": {"": {"A"}},
		},
	})

	for _, input := range []string{"", "a", "aaa"} {
		out := runtime.Check(context.Background(), a, input)
		assert.Equal(t, domain.VerdictRejected, out.Verdict, "input %q", input)
		assert.NoError(t, out.Err())
	}
}

func TestNFAE_EmptyInputFollowsEpsilonClosure(t *testing.T) {
	tests := []struct {
		name   string
		finals []string
		want   domain.Verdict
	}{
		{"final reachable through epsilon", []string{"r"}, domain.VerdictAccepted},
		{"start itself final", []string{"p"}, domain.VerdictAccepted},
		{"no final in closure", []string{"x"}, domain.VerdictRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := buildNFAE(t, &automaton.NFAEDefinition{
				Name:     "closure",
				States:   []string{"p", "q", "r", "x"},
				Start:    "p",
				Finals:   tt.finals,
				Alphabet: []string{"a"},
				Transitions: map[string]map[string][]string{
					"p": {"": {"q"}},
					"q": {"": {"r", "p"}},
					"x": {"a": {"x"}},
				},
			})
			out := runtime.Check(context.Background(), a, "")
			assert.Equal(t, tt.want, out.Verdict)
		})
	}
}

func TestNFAE_Backtracking(t *testing.T) {
	// Strings over {a,b} ending in "ab".
	a := buildNFAE(t, &automaton.NFAEDefinition{
		Name:     "ends-ab",
		States:   []string{"s0", "s1", "s2"},
		Start:    "s0",
		Finals:   []string{"s2"},
		Alphabet: []string{"a", "b"},
		Transitions: map[string]map[string][]string{
			"s0": {"a": {"s0", "s1"}, "b": {"s0"}},
			"s1": {"b": {"s2"}},
		},
	})

	out := runtime.Check(context.Background(), a, "aab")
	require.Equal(t, domain.VerdictAccepted, out.Verdict)
	assert.Equal(t, []domain.State{"s0", "s0", "s1", "s2"}, out.Trace.States())

	out = runtime.Check(context.Background(), a, "aba")
	assert.Equal(t, domain.VerdictRejected, out.Verdict)
	assert.Equal(t, runtime.ReasonExhausted, out.Reason)
	last, ok := out.Trace.Last()
	require.True(t, ok)
	assert.Equal(t, 3, last.Position, "rejection reports the deepest path")
}

func TestNFAE_IgnorableSymbols(t *testing.T) {
	a := buildNFAE(t, abStar())

	out := runtime.Check(context.Background(), a, "a\nb")
	require.Equal(t, domain.VerdictAccepted, out.Verdict)
	assert.Len(t, out.Trace, 3)

	out = runtime.Check(context.Background(), a, "a\nb", runtime.WithIgnorable())
	assert.Equal(t, domain.VerdictMalformedInput, out.Verdict)
}

func TestNFAE_Cancelled(t *testing.T) {
	a := buildNFAE(t, abStar())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := runtime.Check(ctx, a, "ab")

	assert.Equal(t, domain.VerdictCancelled, out.Verdict)
	assert.ErrorIs(t, out.Err(), domain.ErrCancelled)
	assert.ErrorIs(t, out.Err(), context.Canceled)
}
