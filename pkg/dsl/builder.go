package dsl

import (
	"fmt"

	"github.com/aretw0/acceptor/pkg/adapters/memory"
	"github.com/aretw0/acceptor/pkg/automaton"
)

// Epsilon is the symbol of moves that consume no input.
const Epsilon = ""

// Builder collects machine definitions in declaration order.
type Builder struct {
	defs []automaton.Definition
}

// New creates a new builder.
func New() *Builder {
	return &Builder{}
}

// NFAE starts a new ε-NFA definition.
func (b *Builder) NFAE(name string) *NFAEBuilder {
	def := &automaton.NFAEDefinition{Name: name, Transitions: map[string]map[string][]string{}}
	b.defs = append(b.defs, def)
	return &NFAEBuilder{def: def}
}

// PDA starts a new pushdown automaton definition.
func (b *Builder) PDA(name string) *PDABuilder {
	def := &automaton.PDADefinition{Name: name, Transitions: map[string]map[string]map[string][]automaton.PDAMove{}}
	b.defs = append(b.defs, def)
	return &PDABuilder{def: def}
}

// DTM starts a new Turing machine definition.
func (b *Builder) DTM(name string) *DTMBuilder {
	def := &automaton.DTMDefinition{Name: name, Transitions: map[string]map[string]automaton.DTMAction{}}
	b.defs = append(b.defs, def)
	return &DTMBuilder{def: def}
}

// Definitions returns the definitions built so far.
func (b *Builder) Definitions() []automaton.Definition {
	return b.defs
}

// Build compiles the definitions into a MemoryLoader. Definitions are
// validated when an engine builds them, not here.
func (b *Builder) Build() (*memory.Loader, error) {
	loader, err := memory.NewLoader(b.defs...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
