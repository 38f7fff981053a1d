package automaton

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/aretw0/acceptor/pkg/domain"
)

// validator collects every problem in a definition before giving up.
type validator struct {
	machine string
	errs    []error
	states  map[domain.State]struct{}
}

func newValidator(machine string) *validator {
	return &validator{machine: machine, states: make(map[domain.State]struct{})}
}

func (v *validator) fail(path, reason string, value any) {
	v.errs = append(v.errs, &FieldError{Path: path, Reason: reason, Value: value})
}

func (v *validator) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return &DescriptorError{Machine: v.machine, Errors: v.errs}
}

// common validates the fields shared by all variants.
func (v *validator) common(states []string, start string, finals []string) machine {
	m := machine{name: v.machine, finals: make(map[domain.State]struct{})}
	if len(states) == 0 {
		v.fail("states", "at least one state is required", nil)
	}
	for i, raw := range states {
		s := domain.State(raw)
		if raw == "" {
			v.fail(fmt.Sprintf("states[%d]", i), "state name is empty", nil)
			continue
		}
		if _, dup := v.states[s]; dup {
			v.fail(fmt.Sprintf("states[%d]", i), "duplicate state", raw)
			continue
		}
		v.states[s] = struct{}{}
		m.states = append(m.states, s)
	}
	if st, ok := v.state("start", start); ok {
		m.start = st
	}
	for i, raw := range finals {
		if st, ok := v.state(fmt.Sprintf("finals[%d]", i), raw); ok {
			m.finals[st] = struct{}{}
		}
	}
	return m
}

func (v *validator) state(path, raw string) (domain.State, bool) {
	s := domain.State(raw)
	if _, ok := v.states[s]; !ok {
		v.fail(path, fmt.Sprintf("%q is not a declared state", raw), nil)
		return "", false
	}
	return s, true
}

// symbol parses a single character. The empty string is rejected.
func (v *validator) symbol(path, raw string) (domain.Symbol, bool) {
	if utf8.RuneCountInString(raw) != 1 {
		v.fail(path, "a symbol must be exactly one character", fmt.Sprintf("%q", raw))
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(raw)
	return domain.Symbol(r), true
}

// member parses raw and checks it belongs to alpha. With allowEpsilon the
// empty string yields domain.Epsilon.
func (v *validator) member(path, raw string, alpha Alphabet, name string, allowEpsilon bool) (domain.Symbol, bool) {
	if raw == "" && allowEpsilon {
		return domain.Epsilon, true
	}
	s, ok := v.symbol(path, raw)
	if !ok {
		return 0, false
	}
	if !alpha.Contains(s) {
		v.fail(path, fmt.Sprintf("%q is not in the %s %s", raw, name, alpha), nil)
		return 0, false
	}
	return s, true
}

func (v *validator) alphabet(path string, raw []string) Alphabet {
	a := NewAlphabet()
	for i, r := range raw {
		s, ok := v.symbol(fmt.Sprintf("%s[%d]", path, i), r)
		if !ok {
			continue
		}
		if !a.add(s) {
			v.fail(fmt.Sprintf("%s[%d]", path, i), "duplicate symbol", r)
		}
	}
	return a
}

// sortedKeys gives map iteration a stable order so errors are reproducible.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func path(parts ...string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		if p == "" {
			p = domain.EpsilonGlyph
		}
		out += "." + p
	}
	return out
}
