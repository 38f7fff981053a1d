/*
Package acceptor decides whether an input string is accepted by an automaton.

Three machine kinds are supported: nondeterministic finite automata with
ε-moves (ε-NFA), nondeterministic pushdown automata (PDA) and deterministic
Turing machines (DTM). Nondeterministic machines are checked by a depth-first
backtracking search that cuts ε-cycles per branch; Turing machines are walked
step by step on an unbounded tape. Every check is bounded by its context, so a
machine that never halts ends with a Cancelled verdict instead of hanging.

# Concept

Machines are described in a descriptor file (multi-document YAML or JSON) and
built once, all-or-nothing, when the Engine is created. A built machine is
immutable; any number of checks may run against it at the same time, each
owning its stack, tape, cycle guard and trace.

# Verdicts

  - Accepted: some path consumed the input and ended in a final state. The trace is that path.
  - Rejected: every path was exhausted. The trace is the deepest path explored.
  - MalformedInput: the input holds a symbol outside the machine's input alphabet.
  - Cancelled: the context was cancelled or its deadline passed.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"
		"time"

		"github.com/aretw0/acceptor"
	)

	func main() {
		eng, err := acceptor.New("machines.yaml", acceptor.WithCheckTimeout(3*time.Second))
		if err != nil {
			log.Fatal(err)
		}

		out, err := eng.Check(context.Background(), "anbn", "aabb")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(out.Verdict)
	}
*/
package acceptor
