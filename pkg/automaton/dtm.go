package automaton

import (
	"fmt"
	"strings"

	"github.com/aretw0/acceptor/pkg/domain"
)

// Shift is a head movement of a Turing machine.
type Shift int

const (
	Left  Shift = -1
	Right Shift = 1
)

const (
	leftMarkers  = "LEle<←"
	rightMarkers = "RDrd>→"
)

// ParseShift accepts L/R and their aliases (E/D, lowercase, arrows).
func ParseShift(raw string) (Shift, error) {
	if raw != "" && len([]rune(raw)) == 1 {
		switch {
		case strings.Contains(leftMarkers, raw):
			return Left, nil
		case strings.Contains(rightMarkers, raw):
			return Right, nil
		}
	}
	return 0, fmt.Errorf("%q is not a valid shift ('L' and 'R' are valid)", raw)
}

func (s Shift) String() string {
	if s == Left {
		return "L"
	}
	return "R"
}

// DTMAction is the raw right-hand side of a DTM transition.
type DTMAction struct {
	Write string `json:"write"`
	Shift string `json:"shift"`
	Next  string `json:"next"`
}

// DTMDefinition describes a deterministic Turing machine.
type DTMDefinition struct {
	Name         string   `json:"name"`
	States       []string `json:"states"`
	Start        string   `json:"start"`
	Finals       []string `json:"finals"`
	TapeAlphabet []string `json:"tape_alphabet"`
	Blank        string   `json:"blank"`
	// InputAlphabet defaults to the tape alphabet minus blank and start marker.
	InputAlphabet []string `json:"input_alphabet,omitempty"`
	// StartMarker, when set, occupies position 0 of the tape.
	StartMarker string `json:"start_marker,omitempty"`
	// DoubleSided lets the tape grow to negative positions.
	DoubleSided bool                            `json:"double_sided"`
	Transitions map[string]map[string]DTMAction `json:"transitions"`
}

func (d *DTMDefinition) MachineName() string { return d.Name }

func (d *DTMDefinition) Kind() Kind { return KindDTM }

// DTMStep is a validated DTM transition.
type DTMStep struct {
	Write domain.Symbol
	Shift Shift
	Next  domain.State
}

type dtmKey struct {
	state  domain.State
	symbol domain.Symbol
}

// DTM is a validated deterministic Turing machine.
type DTM struct {
	machine
	tape      Alphabet
	input     Alphabet
	blank     domain.Symbol
	marker    domain.Symbol
	hasMarker bool
	twoSided  bool
	delta     map[dtmKey]DTMStep
}

var _ Automaton = (*DTM)(nil)

// BuildDTM validates d.
func BuildDTM(d *DTMDefinition) (*DTM, error) {
	v := newValidator(d.Name)
	a := &DTM{
		machine:  v.common(d.States, d.Start, d.Finals),
		tape:     v.alphabet("tape_alphabet", d.TapeAlphabet),
		twoSided: d.DoubleSided,
		delta:    make(map[dtmKey]DTMStep),
	}
	if b, ok := v.member("blank", d.Blank, a.tape, "tape alphabet", false); ok {
		a.blank = b
	}
	if d.StartMarker != "" {
		if m, ok := v.member("start_marker", d.StartMarker, a.tape, "tape alphabet", false); ok {
			a.marker, a.hasMarker = m, true
		}
	}

	if d.InputAlphabet == nil {
		a.input = NewAlphabet()
		for _, s := range a.tape.symbols {
			if s == a.blank || (a.hasMarker && s == a.marker) {
				continue
			}
			a.input.add(s)
		}
	} else {
		a.input = v.alphabet("input_alphabet", d.InputAlphabet)
		for i, s := range a.input.symbols {
			p := fmt.Sprintf("input_alphabet[%d]", i)
			switch {
			case !a.tape.Contains(s):
				v.fail(p, fmt.Sprintf("%q is not in the tape alphabet %s", s.String(), a.tape), nil)
			case s == a.blank:
				v.fail(p, "the blank symbol cannot be an input symbol", s.String())
			}
		}
	}

	for _, from := range sortedKeys(d.Transitions) {
		src, ok := v.state(path("transitions", from), from)
		if !ok {
			continue
		}
		for _, sym := range sortedKeys(d.Transitions[from]) {
			p := path("transitions", from, sym)
			s, ok := v.member(p, sym, a.tape, "tape alphabet", false)
			if !ok {
				continue
			}
			act := d.Transitions[from][sym]
			w, wOK := v.member(p+".write", act.Write, a.tape, "tape alphabet", false)
			next, nOK := v.state(p+".next", act.Next)
			shift, err := ParseShift(act.Shift)
			if err != nil {
				v.fail(p+".shift", err.Error(), nil)
			}
			if !wOK || !nOK || err != nil {
				continue
			}
			a.delta[dtmKey{src, s}] = DTMStep{Write: w, Shift: shift, Next: next}
		}
	}

	if err := v.err(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *DTM) Kind() Kind { return KindDTM }

func (a *DTM) InputAlphabet() Alphabet { return a.input }

func (a *DTM) TapeAlphabet() Alphabet { return a.tape }

func (a *DTM) Blank() domain.Symbol { return a.blank }

// StartMarker returns the marker written at position 0, if any.
func (a *DTM) StartMarker() (domain.Symbol, bool) { return a.marker, a.hasMarker }

// DoubleSided reports whether the tape extends to negative positions.
func (a *DTM) DoubleSided() bool { return a.twoSided }

// Step looks up the transition for state s reading sym.
func (a *DTM) Step(s domain.State, sym domain.Symbol) (DTMStep, bool) {
	st, ok := a.delta[dtmKey{s, sym}]
	return st, ok
}

func (a *DTM) Edges() []Edge {
	var edges []Edge
	for _, from := range a.states {
		for _, sym := range a.tape.symbols {
			st, ok := a.delta[dtmKey{from, sym}]
			if !ok {
				continue
			}
			edges = append(edges, Edge{
				From:  from,
				To:    st.Next,
				Label: fmt.Sprintf("%s / %s, %s", sym, st.Write, st.Shift),
			})
		}
	}
	return edges
}
