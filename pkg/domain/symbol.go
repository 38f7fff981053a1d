package domain

import "strings"

// State is an opaque label drawn from a machine's declared state set.
type State string

// Symbol is a single character of an input, stack or tape alphabet.
type Symbol rune

// Epsilon marks a move that consumes no input symbol.
const Epsilon Symbol = -1

// EpsilonGlyph is how Epsilon is printed in traces and diagrams.
const EpsilonGlyph = "ɛ"

// IsEpsilon reports whether s is the non-consuming marker.
func (s Symbol) IsEpsilon() bool {
	return s == Epsilon
}

func (s Symbol) String() string {
	if s == Epsilon {
		return EpsilonGlyph
	}
	return string(rune(s))
}

// Word joins symbols into a string, top or leftmost first.
func Word(symbols []Symbol) string {
	var sb strings.Builder
	for _, s := range symbols {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Symbols splits a string into its symbols.
func Symbols(s string) []Symbol {
	out := make([]Symbol, 0, len(s))
	for _, r := range s {
		out = append(out, Symbol(r))
	}
	return out
}
