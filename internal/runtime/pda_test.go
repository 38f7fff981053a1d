package runtime_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/acceptor/internal/runtime"
	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDA_StackRoundTrip(t *testing.T) {
	a := buildPDA(t, anbn())

	for _, input := range []string{"ab", "aabb", "aaabbb"} {
		out := runtime.Check(context.Background(), a, input)
		assert.Equal(t, domain.VerdictAccepted, out.Verdict, "input %q", input)
	}
	for _, input := range []string{"aab", "abb", "", "ba"} {
		out := runtime.Check(context.Background(), a, input)
		assert.Equal(t, domain.VerdictRejected, out.Verdict, "input %q", input)
		assert.NoError(t, out.Err())
	}
}

func TestPDA_TraceCarriesStack(t *testing.T) {
	a := buildPDA(t, anbn())

	out := runtime.Check(context.Background(), a, "ab")

	require.Equal(t, domain.VerdictAccepted, out.Verdict)
	require.Len(t, out.Trace, 4)
	stacks := make([]string, len(out.Trace))
	for i, c := range out.Trace {
		stacks[i] = c.Stack.String()
	}
	assert.Equal(t, []string{"Z", "AZ", "Z", "Z"}, stacks)
	assert.Equal(t, []domain.State{"q0", "q0", "q1", "q2"}, out.Trace.States())
}

func TestPDA_AcceptsByFinalStateOnly(t *testing.T) {
	a := buildPDA(t, &automaton.PDADefinition{
		Name:          "leftover",
		States:        []string{"p", "q"},
		Start:         "p",
		Finals:        []string{"q"},
		InputAlphabet: []string{"a"},
		StackAlphabet: []string{"Z", "A"},
		StartStack:    "Z",
		Transitions: map[string]map[string]map[string][]automaton.PDAMove{
			"p": {"a": {"Z": {{Next: "q", Push: "AAZ"}}}},
		},
	})

	out := runtime.Check(context.Background(), a, "a")

	require.Equal(t, domain.VerdictAccepted, out.Verdict)
	last, _ := out.Trace.Last()
	assert.Equal(t, 3, last.Stack.Len())
}

func TestPDA_EpsilonCycleTerminates(t *testing.T) {
	a := buildPDA(t, &automaton.PDADefinition{
		Name:          "cycle",
		States:        []string{"p", "q"},
		Start:         "p",
		InputAlphabet: []string{"a"},
		StackAlphabet: []string{"Z"},
		StartStack:    "Z",
		Transitions: map[string]map[string]map[string][]automaton.PDAMove{
			"p": {"": {"Z": {{Next: "q", Push: "Z"}}}},
			"q": {"": {"Z": {{Next: "p", Push: "Z"}}}},
		},
	})

	for _, input := range []string{"", "a"} {
		out := runtime.Check(context.Background(), a, input)
		assert.Equal(t, domain.VerdictRejected, out.Verdict, "input %q", input)
	}
}

func TestPDA_EmptyInputUsesStartStack(t *testing.T) {
	def := &automaton.PDADefinition{
		Name:          "closure",
		States:        []string{"p", "q"},
		Start:         "p",
		Finals:        []string{"q"},
		InputAlphabet: []string{"a"},
		StackAlphabet: []string{"Z", "Y"},
		StartStack:    "Z",
		Transitions: map[string]map[string]map[string][]automaton.PDAMove{
			"p": {"": {"Z": {{Next: "q", Push: ""}}}},
		},
	}
	out := runtime.Check(context.Background(), buildPDA(t, def), "")
	assert.Equal(t, domain.VerdictAccepted, out.Verdict)

	def.StartStack = "Y"
	out = runtime.Check(context.Background(), buildPDA(t, def), "")
	assert.Equal(t, domain.VerdictRejected, out.Verdict)
}

func TestPDA_DivergentPushLoopIsCancelled(t *testing.T) {
	a := buildPDA(t, &automaton.PDADefinition{
		Name:          "grow",
		States:        []string{"p"},
		Start:         "p",
		InputAlphabet: []string{"a"},
		StackAlphabet: []string{"Z"},
		StartStack:    "Z",
		Transitions: map[string]map[string]map[string][]automaton.PDAMove{
			"p": {"": {"Z": {{Next: "p", Push: "ZZ"}}}},
		},
	})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	out := runtime.Check(ctx, a, "a")

	assert.Equal(t, domain.VerdictCancelled, out.Verdict)
	assert.ErrorIs(t, out.Err(), context.DeadlineExceeded)
	assert.Greater(t, out.Steps, 1)
}

func TestPDA_UnknownSymbol(t *testing.T) {
	a := buildPDA(t, anbn())

	out := runtime.Check(context.Background(), a, "abz")

	assert.Equal(t, domain.VerdictMalformedInput, out.Verdict)
	assert.Equal(t, 2, out.Offset)
	assert.Equal(t, domain.Symbol('z'), out.Symbol)
}

func TestPDA_ConcurrentChecksShareAutomaton(t *testing.T) {
	a := buildPDA(t, anbn())
	inputs := map[string]domain.Verdict{
		"ab": domain.VerdictAccepted, "aabb": domain.VerdictAccepted,
		"aab": domain.VerdictRejected, "abb": domain.VerdictRejected,
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		for input, want := range inputs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				out := runtime.Check(context.Background(), a, input)
				assert.Equal(t, want, out.Verdict, "input %q", input)
			}()
		}
	}
	wg.Wait()
}
