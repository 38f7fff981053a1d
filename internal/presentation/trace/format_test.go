package trace_test

import (
	"testing"

	"github.com/aretw0/acceptor/internal/presentation/trace"
	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/stretchr/testify/assert"
)

type fakeStack string

func (s fakeStack) Symbols() []domain.Symbol { return domain.Symbols(string(s)) }
func (s fakeStack) Len() int                 { return len(s) }
func (s fakeStack) String() string           { return string(s) }

type fakeTape string

func (t fakeTape) Cells() ([]domain.Symbol, int) { return domain.Symbols(string(t)), 0 }
func (t fakeTape) Content() string               { return string(t) }
func (t fakeTape) String() string                { return string(t) }

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		kind  automaton.Kind
		trace domain.Trace
		want  string
	}{
		{
			name: "NFAE",
			kind: automaton.KindNFAE,
			trace: domain.Trace{
				{State: "s0", Remaining: "ab"},
				{State: "s1", Remaining: "b"},
				{State: "s2", Remaining: ""},
			},
			want: "(s0, ab) ⊢\n(s1,  b) ⊢\n(s2,  ɛ)",
		},
		{
			name: "PDA",
			kind: automaton.KindPDA,
			trace: domain.Trace{
				{State: "q0", Remaining: "ab", Stack: fakeStack("Z")},
				{State: "q0", Remaining: "b", Stack: fakeStack("AZ")},
				{State: "q1", Remaining: "", Stack: fakeStack("")},
			},
			want: "(q0, ab,  Z) ⊢\n(q0,  b, AZ) ⊢\n(q1,  ɛ,  ɛ)",
		},
		{
			name: "DTM",
			kind: automaton.KindDTM,
			trace: domain.Trace{
				{State: "q0", Position: 9, Tape: fakeTape("1")},
				{State: "q1", Position: 10, Tape: fakeTape("10_")},
			},
			want: "q0 | 9  | 1\nq1 | 10 | 10_",
		},
		{
			name: "Empty",
			kind: automaton.KindPDA,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trace.Format(tt.kind, tt.trace))
		})
	}
}

func TestMarkdown(t *testing.T) {
	out := domain.Outcome{
		Verdict: domain.VerdictRejected,
		Steps:   3,
		Reason:  "no accepting path",
		Trace:   domain.Trace{{State: "s0", Remaining: "a"}},
	}

	md := trace.Markdown("ab-star", automaton.KindNFAE, out)

	assert.Contains(t, md, "### ab-star `nfae`")
	assert.Contains(t, md, "**rejected** in 3 steps (no accepting path)")
	assert.Contains(t, md, "```\n(s0, a)\n```")
}
