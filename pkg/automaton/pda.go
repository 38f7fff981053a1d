package automaton

import (
	"fmt"

	"github.com/aretw0/acceptor/pkg/domain"
)

// PDAMove is one (next state, replacement) choice of a PDA rule. Push replaces
// the popped top, its first character becoming the new top; empty is a pure pop.
type PDAMove struct {
	Next string `json:"next"`
	Push string `json:"push"`
}

// PDADefinition describes a nondeterministic pushdown automaton. Transitions are
// keyed by state, input symbol (empty string for ε) and required stack top.
type PDADefinition struct {
	Name          string                                    `json:"name"`
	States        []string                                  `json:"states"`
	Start         string                                    `json:"start"`
	Finals        []string                                  `json:"finals"`
	InputAlphabet []string                                  `json:"input_alphabet"`
	StackAlphabet []string                                  `json:"stack_alphabet"`
	StartStack    string                                    `json:"start_stack"`
	Transitions   map[string]map[string]map[string][]PDAMove `json:"transitions"`
}

func (d *PDADefinition) MachineName() string { return d.Name }

func (d *PDADefinition) Kind() Kind { return KindPDA }

// PDARule is a validated PDA transition.
type PDARule struct {
	Symbol domain.Symbol // domain.Epsilon for non-consuming rules
	Top    domain.Symbol
	Next   domain.State
	Push   []domain.Symbol
}

// PDA is a validated pushdown automaton accepting by final state.
type PDA struct {
	machine
	input      Alphabet
	stack      Alphabet
	startStack domain.Symbol
	rules      map[domain.State][]PDARule
}

var _ Automaton = (*PDA)(nil)

// BuildPDA validates d. Rules of a state are ordered ε first, then by input
// alphabet, then by stack alphabet, then as listed.
func BuildPDA(d *PDADefinition) (*PDA, error) {
	v := newValidator(d.Name)
	a := &PDA{
		machine: v.common(d.States, d.Start, d.Finals),
		input:   v.alphabet("input_alphabet", d.InputAlphabet),
		stack:   v.alphabet("stack_alphabet", d.StackAlphabet),
		rules:   make(map[domain.State][]PDARule),
	}
	if s, ok := v.member("start_stack", d.StartStack, a.stack, "stack alphabet", false); ok {
		a.startStack = s
	}

	type key struct{ sym, top domain.Symbol }
	for _, from := range sortedKeys(d.Transitions) {
		src, ok := v.state(path("transitions", from), from)
		if !ok {
			continue
		}
		parsed := make(map[key][]PDARule)
		for _, sym := range sortedKeys(d.Transitions[from]) {
			s, ok := v.member(path("transitions", from, sym), sym, a.input, "input alphabet", true)
			if !ok {
				continue
			}
			byTop := d.Transitions[from][sym]
			for _, top := range sortedKeys(byTop) {
				p := path("transitions", from, sym, top)
				t, ok := v.member(p, top, a.stack, "stack alphabet", false)
				if !ok {
					continue
				}
				if len(byTop[top]) == 0 {
					v.fail(p, "at least one (next, push) pair is required", nil)
				}
				for i, mv := range byTop[top] {
					mp := fmt.Sprintf("%s[%d]", p, i)
					next, ok := v.state(mp+".next", mv.Next)
					push, pushOK := v.push(mp+".push", mv.Push, a.stack)
					if !ok || !pushOK {
						continue
					}
					k := key{s, t}
					parsed[k] = append(parsed[k], PDARule{Symbol: s, Top: t, Next: next, Push: push})
				}
			}
		}
		symbols := append([]domain.Symbol{domain.Epsilon}, a.input.symbols...)
		for _, s := range symbols {
			for _, t := range a.stack.symbols {
				a.rules[src] = append(a.rules[src], parsed[key{s, t}]...)
			}
		}
	}

	if err := v.err(); err != nil {
		return nil, err
	}
	return a, nil
}

func (v *validator) push(p, raw string, stack Alphabet) ([]domain.Symbol, bool) {
	out := make([]domain.Symbol, 0, len(raw))
	ok := true
	for i, r := range raw {
		s := domain.Symbol(r)
		if !stack.Contains(s) {
			v.fail(fmt.Sprintf("%s[%d]", p, i), fmt.Sprintf("%q is not in the stack alphabet %s", string(r), stack), nil)
			ok = false
			continue
		}
		out = append(out, s)
	}
	return out, ok
}

func (a *PDA) Kind() Kind { return KindPDA }

func (a *PDA) InputAlphabet() Alphabet { return a.input }

func (a *PDA) StackAlphabet() Alphabet { return a.stack }

// StartStack is the single symbol the stack holds when a check begins.
func (a *PDA) StartStack() domain.Symbol { return a.startStack }

// Rules returns the transitions leaving s. The slice must not be modified.
func (a *PDA) Rules(s domain.State) []PDARule {
	return a.rules[s]
}

func (a *PDA) Edges() []Edge {
	var edges []Edge
	for _, from := range a.states {
		for _, r := range a.rules[from] {
			push := domain.Word(r.Push)
			if push == "" {
				push = domain.EpsilonGlyph
			}
			edges = append(edges, Edge{
				From:  from,
				To:    r.Next,
				Label: fmt.Sprintf("%s, %s / %s", r.Symbol, r.Top, push),
			})
		}
	}
	return edges
}
