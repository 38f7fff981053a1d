package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/aretw0/acceptor/pkg/domain"
)

// walkDTM runs a deterministic Turing machine on a tape holding input. It has
// no step bound of its own: a machine that never halts runs until ctx is done.
func walkDTM(ctx context.Context, a *automaton.DTM, input string, o *options) domain.Outcome {
	in := read(input)
	if err := scan(in, a.InputAlphabet(), o); err != nil {
		return malformed(err)
	}

	var initial []domain.Symbol
	head := 0
	if marker, ok := a.StartMarker(); ok {
		initial = append(initial, marker)
		head = 1
	}
	for _, s := range in.symbols {
		if _, skip := o.ignorable[s]; !skip {
			initial = append(initial, s)
		}
	}

	t := newTape(a.Blank(), a.DoubleSided(), initial)
	log := newTapeLog(t)
	tok := newToken(ctx)
	state := a.Start()
	var trace domain.Trace

	reject := func(reason string) domain.Outcome {
		return domain.Outcome{Verdict: domain.VerdictRejected, Trace: trace, Steps: tok.steps, Reason: reason}
	}

	for {
		if err := tok.tick(); err != nil {
			out := cancelled(err, trace, tok.steps)
			rebase(out.Trace)
			return out
		}
		trace = append(trace, domain.Configuration{State: state, Position: head, Tape: log.view()})
		if a.IsFinal(state) {
			return domain.Outcome{Verdict: domain.VerdictAccepted, Trace: trace, Steps: tok.steps}
		}

		sym := t.read(head)
		step, ok := a.Step(state, sym)
		if !ok {
			return reject(fmt.Sprintf("%s for (%s, %s)", ReasonNoMove, state, sym))
		}
		if err := t.write(head, step.Write); err != nil {
			return reject(ReasonBoundary)
		}
		log.record(head, step.Write)
		head += int(step.Shift)
		state = step.Next
		if head < 0 && !a.DoubleSided() {
			return reject(ReasonBoundary)
		}
	}
}
