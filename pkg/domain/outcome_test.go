package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stack string

func (s stack) Symbols() []domain.Symbol { return domain.Symbols(string(s)) }
func (s stack) Len() int                 { return len(s) }
func (s stack) String() string           { return string(s) }

func TestOutcome_MarshalJSON(t *testing.T) {
	out := domain.Outcome{
		Verdict: domain.VerdictMalformedInput,
		Symbol:  'c',
		Offset:  1,
	}.WithErr(&domain.MalformedInputError{Symbol: 'c', Offset: 1})

	data, err := json.Marshal(out)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "malformed_input", got["verdict"])
	assert.Equal(t, "c", got["symbol"])
	assert.EqualValues(t, 1, got["offset"])
	assert.Contains(t, got["error"], "offset 1")
	assert.NotContains(t, got, "trace")
}

func TestOutcome_MarshalJSON_Trace(t *testing.T) {
	out := domain.Outcome{
		Verdict: domain.VerdictAccepted,
		Trace: domain.Trace{
			{State: "q0", Remaining: "ab", Stack: stack("Z")},
			{State: "q1", Position: 2, Stack: stack("")},
		},
	}

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"verdict": "accepted",
		"steps": 0,
		"duration": 0,
		"trace": [
			{"state": "q0", "remaining": "ab", "position": 0, "stack": "Z"},
			{"state": "q1", "remaining": "", "position": 2, "stack": ""}
		]
	}`, string(data))
}

func TestTrace(t *testing.T) {
	tr := domain.Trace{{State: "a"}, {State: "b"}}

	last, ok := tr.Last()
	assert.True(t, ok)
	assert.Equal(t, domain.State("b"), last.State)
	assert.Equal(t, []domain.State{"a", "b"}, tr.States())

	_, ok = domain.Trace(nil).Last()
	assert.False(t, ok)
}
