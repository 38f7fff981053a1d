// Package runtime implements the acceptance search of each machine variant.
//
// Check is the single entry point. It dispatches on the concrete automaton type
// to the ε-NFA search, the PDA search or the DTM walk. Every check owns its stack,
// tape, cycle guard and trace, so one automaton may be checked from many
// goroutines at once.
package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/aretw0/acceptor/pkg/domain"
)

// DefaultIgnorable are the symbols skipped silently when reading input.
var DefaultIgnorable = []domain.Symbol{'\n'}

// Rejection reasons reported in domain.Outcome.Reason.
const (
	ReasonExhausted   = "no accepting path"
	ReasonNoMove      = "no transition"
	ReasonBoundary    = "head moved off the left end of the tape"
	ReasonOutOfInput  = "input symbol outside the alphabet"
	ReasonCancelled   = "deadline exceeded or interrupted"
	ReasonUnsupported = "unsupported automaton"
)

// MaxCancelledTrace bounds the trace a Cancelled outcome keeps. A walk that
// runs until its deadline keeps only its most recent configurations.
const MaxCancelledTrace = 1000

type options struct {
	ignorable map[domain.Symbol]struct{}
}

// Option configures a single check.
type Option func(*options)

// WithIgnorable replaces the set of symbols skipped silently in the input.
func WithIgnorable(symbols ...domain.Symbol) Option {
	return func(o *options) {
		o.ignorable = make(map[domain.Symbol]struct{}, len(symbols))
		for _, s := range symbols {
			o.ignorable[s] = struct{}{}
		}
	}
}

// Check runs input through a and reports the outcome. The context is the
// cancellation token: it is polled once per explored configuration, and a
// cancelled or expired context yields a Cancelled outcome. A nil or unknown
// automaton is rejected with domain.ErrUnsupportedAutomaton.
func Check(ctx context.Context, a automaton.Automaton, input string, opts ...Option) domain.Outcome {
	o := &options{}
	WithIgnorable(DefaultIgnorable...)(o)
	for _, opt := range opts {
		opt(o)
	}

	started := time.Now()
	var out domain.Outcome
	switch m := a.(type) {
	case *automaton.NFAE:
		out = checkNFAE(ctx, m, input, o)
	case *automaton.PDA:
		out = checkPDA(ctx, m, input, o)
	case *automaton.DTM:
		out = walkDTM(ctx, m, input, o)
	default:
		out = domain.Outcome{
			Verdict: domain.VerdictRejected,
			Reason:  ReasonUnsupported,
		}.WithErr(fmt.Errorf("%w: %T", domain.ErrUnsupportedAutomaton, a))
	}
	out.Duration = time.Since(started)
	return out
}

// reading is an input prepared for a search: its symbols and the byte offset
// of each one, so the unread remainder can be sliced without copying.
type reading struct {
	raw     string
	symbols []domain.Symbol
	offsets []int
}

func read(input string) reading {
	r := reading{raw: input}
	for i, c := range input {
		r.symbols = append(r.symbols, domain.Symbol(c))
		r.offsets = append(r.offsets, i)
	}
	return r
}

func (r reading) len() int { return len(r.symbols) }

func (r reading) remaining(pos int) string {
	if pos >= len(r.symbols) {
		return ""
	}
	return r.raw[r.offsets[pos]:]
}

// scan rejects the input before any search runs if it holds a symbol outside
// the alphabet, so the verdict never depends on how far a search got.
func scan(r reading, alpha automaton.Alphabet, o *options) *domain.MalformedInputError {
	for i, s := range r.symbols {
		if _, skip := o.ignorable[s]; skip {
			continue
		}
		if !alpha.Contains(s) {
			return &domain.MalformedInputError{Symbol: s, Offset: i}
		}
	}
	return nil
}

func malformed(err *domain.MalformedInputError) domain.Outcome {
	return domain.Outcome{
		Verdict: domain.VerdictMalformedInput,
		Symbol:  err.Symbol,
		Offset:  err.Offset,
		Reason:  ReasonOutOfInput,
	}.WithErr(err)
}

func cancelled(err error, trace domain.Trace, steps int) domain.Outcome {
	out := domain.Outcome{
		Verdict: domain.VerdictCancelled,
		Steps:   steps,
		Reason:  ReasonCancelled,
	}
	if n := len(trace) - MaxCancelledTrace; n > 0 {
		out.Omitted = n
		trace = append(domain.Trace(nil), trace[n:]...)
	}
	out.Trace = trace
	return out.WithErr(err)
}

// deepest remembers the trace that got furthest into the input, which is what
// a rejection reports.
type deepest struct {
	trace *chain[domain.Configuration]
	pos   int
}

func (d *deepest) offer(trace *chain[domain.Configuration], pos int) {
	if d.trace == nil || pos > d.pos || (pos == d.pos && trace.len() > d.trace.len()) {
		d.trace, d.pos = trace, pos
	}
}
