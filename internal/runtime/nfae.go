package runtime

import (
	"context"

	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/aretw0/acceptor/pkg/domain"
)

// nfaeFrame is one pending step of the ε-NFA search. A frame is first expanded
// into its ε-branches; once those are exhausted its settled twin decides
// acceptance or consumes the next symbol.
type nfaeFrame struct {
	state   domain.State
	pos     int
	guard   guard
	trace   *chain[domain.Configuration]
	settled bool
}

// checkNFAE is a depth-first backtracking search. ε-moves are tried first, each
// adding its target to the branch's guard so an ε-cycle is cut the second time
// round. Consuming a symbol resets the guard. The first accepting path wins.
func checkNFAE(ctx context.Context, a *automaton.NFAE, input string, o *options) domain.Outcome {
	in := read(input)
	if err := scan(in, a.InputAlphabet(), o); err != nil {
		return malformed(err)
	}

	tok := newToken(ctx)
	var best deepest
	work := []nfaeFrame{{state: a.Start()}}

	for len(work) > 0 {
		f := work[len(work)-1]
		work = work[:len(work)-1]

		if !f.settled {
			if err := tok.tick(); err != nil {
				return cancelled(err, best.trace.reversed(), tok.steps)
			}
			f.trace = f.trace.push(domain.Configuration{
				State:     f.state,
				Remaining: in.remaining(f.pos),
				Position:  f.pos,
			})
			best.offer(f.trace, f.pos)

			settled := f
			settled.settled = true
			work = append(work, settled)

			targets := a.Targets(f.state, domain.Epsilon)
			for i := len(targets) - 1; i >= 0; i-- {
				t := targets[i]
				if f.guard.has(string(t)) {
					continue
				}
				work = append(work, nfaeFrame{state: t, pos: f.pos, guard: f.guard.with(string(t)), trace: f.trace})
			}
			continue
		}

		if f.pos == in.len() {
			if a.IsFinal(f.state) {
				return domain.Outcome{Verdict: domain.VerdictAccepted, Trace: f.trace.reversed(), Steps: tok.steps}
			}
			continue
		}

		sym := in.symbols[f.pos]
		if _, skip := o.ignorable[sym]; skip {
			// Not a move: same state, same guard, and the skipped position
			// leaves no configuration behind.
			work = append(work, nfaeFrame{state: f.state, pos: f.pos + 1, guard: f.guard, trace: f.trace.tail})
			continue
		}

		targets := a.Targets(f.state, sym)
		for i := len(targets) - 1; i >= 0; i-- {
			work = append(work, nfaeFrame{state: targets[i], pos: f.pos + 1, trace: f.trace})
		}
	}

	return domain.Outcome{
		Verdict: domain.VerdictRejected,
		Trace:   best.trace.reversed(),
		Steps:   tok.steps,
		Reason:  ReasonExhausted,
	}
}
