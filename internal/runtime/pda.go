package runtime

import (
	"context"

	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/aretw0/acceptor/pkg/domain"
)

type pdaFrame struct {
	state domain.State
	pos   int
	stack stack
	guard guard
	trace *chain[domain.Configuration]
}

// key identifies a configuration for the cycle guard. The stack is part of it:
// a state revisited with a different stack is progress, not a cycle.
func (f pdaFrame) key() string {
	return string(f.state) + "\x00" + f.stack.String()
}

// checkPDA is a depth-first backtracking search over (state, input, stack).
// Acceptance is by final state once the input is exhausted; leftover stack
// contents do not matter.
func checkPDA(ctx context.Context, a *automaton.PDA, input string, o *options) domain.Outcome {
	in := read(input)
	if err := scan(in, a.InputAlphabet(), o); err != nil {
		return malformed(err)
	}

	tok := newToken(ctx)
	var best deepest
	work := []pdaFrame{{state: a.Start(), stack: newStack(a.StartStack())}}
	var children []pdaFrame

	for len(work) > 0 {
		f := work[len(work)-1]
		work = work[:len(work)-1]

		if err := tok.tick(); err != nil {
			return cancelled(err, best.trace.reversed(), tok.steps)
		}
		f.trace = f.trace.push(domain.Configuration{
			State:     f.state,
			Remaining: in.remaining(f.pos),
			Position:  f.pos,
			Stack:     f.stack,
		})
		best.offer(f.trace, f.pos)

		if f.pos == in.len() && a.IsFinal(f.state) {
			return domain.Outcome{Verdict: domain.VerdictAccepted, Trace: f.trace.reversed(), Steps: tok.steps}
		}

		if f.pos < in.len() {
			if _, skip := o.ignorable[in.symbols[f.pos]]; skip {
				f.pos++
				f.trace = f.trace.tail
				work = append(work, f)
				continue
			}
		}

		top, ok := f.stack.top()
		if !ok {
			continue
		}

		children = children[:0]
		key := ""
		for _, r := range a.Rules(f.state) {
			if r.Top != top {
				continue
			}
			next := pdaFrame{state: r.Next, stack: f.stack.replaceTop(r.Push), trace: f.trace}
			if r.Symbol == domain.Epsilon {
				if key == "" {
					key = f.key()
				}
				if f.guard.has(key) {
					continue
				}
				next.pos, next.guard = f.pos, f.guard.with(key)
			} else {
				if f.pos == in.len() || in.symbols[f.pos] != r.Symbol {
					continue
				}
				next.pos = f.pos + 1
			}
			children = append(children, next)
		}
		for i := len(children) - 1; i >= 0; i-- {
			work = append(work, children[i])
		}
	}

	return domain.Outcome{
		Verdict: domain.VerdictRejected,
		Trace:   best.trace.reversed(),
		Steps:   tok.steps,
		Reason:  ReasonExhausted,
	}
}
