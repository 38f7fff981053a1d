package dsl

import "github.com/aretw0/acceptor/pkg/automaton"

// NFAEBuilder provides a fluent API for configuring an ε-NFA.
type NFAEBuilder struct {
	def *automaton.NFAEDefinition
}

// States appends states.
func (n *NFAEBuilder) States(states ...string) *NFAEBuilder {
	n.def.States = append(n.def.States, states...)
	return n
}

// Start sets the initial state.
func (n *NFAEBuilder) Start(state string) *NFAEBuilder {
	n.def.Start = state
	return n
}

// Final marks states as accepting.
func (n *NFAEBuilder) Final(states ...string) *NFAEBuilder {
	n.def.Finals = append(n.def.Finals, states...)
	return n
}

// Alphabet appends input symbols.
func (n *NFAEBuilder) Alphabet(symbols ...string) *NFAEBuilder {
	n.def.Alphabet = append(n.def.Alphabet, symbols...)
	return n
}

// On adds moves from one state on symbol (Epsilon for ε) to every target.
func (n *NFAEBuilder) On(from, symbol string, to ...string) *NFAEBuilder {
	bySymbol := n.def.Transitions[from]
	if bySymbol == nil {
		bySymbol = map[string][]string{}
		n.def.Transitions[from] = bySymbol
	}
	bySymbol[symbol] = append(bySymbol[symbol], to...)
	return n
}

// Build returns the underlying definition.
func (n *NFAEBuilder) Build() *automaton.NFAEDefinition {
	return n.def
}

// PDABuilder provides a fluent API for configuring a pushdown automaton.
type PDABuilder struct {
	def *automaton.PDADefinition
}

// States appends states.
func (p *PDABuilder) States(states ...string) *PDABuilder {
	p.def.States = append(p.def.States, states...)
	return p
}

// Start sets the initial state.
func (p *PDABuilder) Start(state string) *PDABuilder {
	p.def.Start = state
	return p
}

// Final marks states as accepting.
func (p *PDABuilder) Final(states ...string) *PDABuilder {
	p.def.Finals = append(p.def.Finals, states...)
	return p
}

// Input appends input symbols.
func (p *PDABuilder) Input(symbols ...string) *PDABuilder {
	p.def.InputAlphabet = append(p.def.InputAlphabet, symbols...)
	return p
}

// Stack appends stack symbols.
func (p *PDABuilder) Stack(symbols ...string) *PDABuilder {
	p.def.StackAlphabet = append(p.def.StackAlphabet, symbols...)
	return p
}

// StartStack sets the initial stack symbol.
func (p *PDABuilder) StartStack(symbol string) *PDABuilder {
	p.def.StartStack = symbol
	return p
}

// On adds a move: in state from, reading symbol (Epsilon for ε) with top on
// the stack, go to next and replace top with push (leftmost on top).
func (p *PDABuilder) On(from, symbol, top, next, push string) *PDABuilder {
	bySymbol := p.def.Transitions[from]
	if bySymbol == nil {
		bySymbol = map[string]map[string][]automaton.PDAMove{}
		p.def.Transitions[from] = bySymbol
	}
	byTop := bySymbol[symbol]
	if byTop == nil {
		byTop = map[string][]automaton.PDAMove{}
		bySymbol[symbol] = byTop
	}
	byTop[top] = append(byTop[top], automaton.PDAMove{Next: next, Push: push})
	return p
}

// Build returns the underlying definition.
func (p *PDABuilder) Build() *automaton.PDADefinition {
	return p.def
}

// DTMBuilder provides a fluent API for configuring a Turing machine.
type DTMBuilder struct {
	def *automaton.DTMDefinition
}

// States appends states.
func (d *DTMBuilder) States(states ...string) *DTMBuilder {
	d.def.States = append(d.def.States, states...)
	return d
}

// Start sets the initial state.
func (d *DTMBuilder) Start(state string) *DTMBuilder {
	d.def.Start = state
	return d
}

// Final marks states as halting.
func (d *DTMBuilder) Final(states ...string) *DTMBuilder {
	d.def.Finals = append(d.def.Finals, states...)
	return d
}

// Tape appends tape symbols.
func (d *DTMBuilder) Tape(symbols ...string) *DTMBuilder {
	d.def.TapeAlphabet = append(d.def.TapeAlphabet, symbols...)
	return d
}

// Input restricts the input alphabet. By default it is the tape alphabet
// minus the blank and the start marker.
func (d *DTMBuilder) Input(symbols ...string) *DTMBuilder {
	d.def.InputAlphabet = append(d.def.InputAlphabet, symbols...)
	return d
}

// Blank sets the blank symbol.
func (d *DTMBuilder) Blank(symbol string) *DTMBuilder {
	d.def.Blank = symbol
	return d
}

// StartMarker puts symbol at position 0 of the tape.
func (d *DTMBuilder) StartMarker(symbol string) *DTMBuilder {
	d.def.StartMarker = symbol
	return d
}

// DoubleSided lets the tape grow to the left.
func (d *DTMBuilder) DoubleSided() *DTMBuilder {
	d.def.DoubleSided = true
	return d
}

// On adds the move of state from reading symbol: write, shift (L or R) and
// go to next. A later call for the same pair replaces the earlier one.
func (d *DTMBuilder) On(from, symbol, write, shift, next string) *DTMBuilder {
	bySymbol := d.def.Transitions[from]
	if bySymbol == nil {
		bySymbol = map[string]automaton.DTMAction{}
		d.def.Transitions[from] = bySymbol
	}
	bySymbol[symbol] = automaton.DTMAction{Write: write, Shift: shift, Next: next}
	return d
}

// Build returns the underlying definition.
func (d *DTMBuilder) Build() *automaton.DTMDefinition {
	return d.def
}
