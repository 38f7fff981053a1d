package automaton

import "github.com/aretw0/acceptor/pkg/domain"

// Alphabet is an ordered set of symbols. The zero value is empty.
type Alphabet struct {
	symbols []domain.Symbol
	index   map[domain.Symbol]struct{}
}

// NewAlphabet builds an alphabet, dropping duplicates.
func NewAlphabet(symbols ...domain.Symbol) Alphabet {
	a := Alphabet{index: make(map[domain.Symbol]struct{}, len(symbols))}
	for _, s := range symbols {
		a.add(s)
	}
	return a
}

func (a *Alphabet) add(s domain.Symbol) bool {
	if a.index == nil {
		a.index = make(map[domain.Symbol]struct{})
	}
	if _, ok := a.index[s]; ok {
		return false
	}
	a.index[s] = struct{}{}
	a.symbols = append(a.symbols, s)
	return true
}

// Contains reports whether s is a member. Epsilon is never a member.
func (a Alphabet) Contains(s domain.Symbol) bool {
	_, ok := a.index[s]
	return ok
}

// Symbols returns the members in declaration order.
func (a Alphabet) Symbols() []domain.Symbol {
	return append([]domain.Symbol(nil), a.symbols...)
}

func (a Alphabet) Len() int {
	return len(a.symbols)
}

func (a Alphabet) String() string {
	return "[" + joinSymbols(a.symbols, ", ") + "]"
}

func joinSymbols(symbols []domain.Symbol, sep string) string {
	out := ""
	for i, s := range symbols {
		if i > 0 {
			out += sep
		}
		out += s.String()
	}
	return out
}
