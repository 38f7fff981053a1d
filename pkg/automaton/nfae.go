package automaton

import (
	"fmt"

	"github.com/aretw0/acceptor/pkg/domain"
)

// NFAEDefinition describes an ε-NFA. Transitions map a state and a symbol
// (the empty string for ε) to the list of target states.
type NFAEDefinition struct {
	Name        string                         `json:"name"`
	States      []string                       `json:"states"`
	Start       string                         `json:"start"`
	Finals      []string                       `json:"finals"`
	Alphabet    []string                       `json:"alphabet"`
	Transitions map[string]map[string][]string `json:"transitions"`
}

func (d *NFAEDefinition) MachineName() string { return d.Name }

func (d *NFAEDefinition) Kind() Kind { return KindNFAE }

// NFAE is a validated ε-NFA.
type NFAE struct {
	machine
	alphabet Alphabet
	moves    map[domain.State]map[domain.Symbol][]domain.State
}

var _ Automaton = (*NFAE)(nil)

// BuildNFAE validates d.
func BuildNFAE(d *NFAEDefinition) (*NFAE, error) {
	v := newValidator(d.Name)
	m := v.common(d.States, d.Start, d.Finals)
	a := &NFAE{
		machine:  m,
		alphabet: v.alphabet("alphabet", d.Alphabet),
		moves:    make(map[domain.State]map[domain.Symbol][]domain.State),
	}

	for _, from := range sortedKeys(d.Transitions) {
		src, ok := v.state(path("transitions", from), from)
		if !ok {
			continue
		}
		bySymbol := d.Transitions[from]
		for _, sym := range sortedKeys(bySymbol) {
			p := path("transitions", from, sym)
			s, ok := v.member(p, sym, a.alphabet, "alphabet", true)
			if !ok {
				continue
			}
			for i, to := range bySymbol[sym] {
				dst, ok := v.state(fmt.Sprintf("%s[%d]", p, i), to)
				if !ok {
					continue
				}
				if a.moves[src] == nil {
					a.moves[src] = make(map[domain.Symbol][]domain.State)
				}
				a.moves[src][s] = append(a.moves[src][s], dst)
			}
		}
	}

	if err := v.err(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *NFAE) Kind() Kind { return KindNFAE }

func (a *NFAE) InputAlphabet() Alphabet { return a.alphabet }

// Targets returns the states reachable from s on sym (domain.Epsilon for ε-moves).
// The slice must not be modified.
func (a *NFAE) Targets(s domain.State, sym domain.Symbol) []domain.State {
	return a.moves[s][sym]
}

func (a *NFAE) Edges() []Edge {
	var edges []Edge
	for _, from := range a.states {
		bySymbol := a.moves[from]
		if bySymbol == nil {
			continue
		}
		symbols := append([]domain.Symbol{domain.Epsilon}, a.alphabet.symbols...)
		for _, sym := range symbols {
			for _, to := range bySymbol[sym] {
				edges = append(edges, Edge{From: from, To: to, Label: sym.String()})
			}
		}
	}
	return edges
}
