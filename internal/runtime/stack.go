package runtime

import "github.com/aretw0/acceptor/pkg/domain"

// stack is a persistent pushdown stack, top first.
type stack struct {
	c *chain[domain.Symbol]
}

var _ domain.StackSnapshot = stack{}

func newStack(start domain.Symbol) stack {
	return stack{c: (*chain[domain.Symbol])(nil).push(start)}
}

func (s stack) top() (domain.Symbol, bool) {
	if s.c == nil {
		return 0, false
	}
	return s.c.head, true
}

// replaceTop pops the top and pushes push so that push[0] becomes the new top.
func (s stack) replaceTop(push []domain.Symbol) stack {
	rest := s.c
	if rest != nil {
		rest = rest.tail
	}
	for i := len(push) - 1; i >= 0; i-- {
		rest = rest.push(push[i])
	}
	return stack{c: rest}
}

func (s stack) Symbols() []domain.Symbol {
	return s.c.slice()
}

func (s stack) Len() int {
	return s.c.len()
}

func (s stack) String() string {
	return domain.Word(s.c.slice())
}
