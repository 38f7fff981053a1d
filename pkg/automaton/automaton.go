package automaton

import (
	"fmt"

	"github.com/aretw0/acceptor/pkg/domain"
)

// Kind names one of the supported machine variants.
type Kind string

const (
	KindNFAE Kind = "nfae"
	KindPDA  Kind = "pda"
	KindDTM  Kind = "dtm"
)

// Definition is the raw description of one machine.
type Definition interface {
	MachineName() string
	Kind() Kind
}

// Automaton is a validated, immutable machine. It is safe for concurrent use.
// The set of implementations is closed: *NFAE, *PDA and *DTM.
type Automaton interface {
	Name() string
	Kind() Kind
	States() []domain.State
	Start() domain.State
	IsFinal(domain.State) bool
	// InputAlphabet is the alphabet an input string is checked against.
	InputAlphabet() Alphabet
	// Edges lists the transitions for visualization.
	Edges() []Edge

	sealed()
}

// Edge is one labelled arrow of a machine's transition diagram.
type Edge struct {
	From  domain.State `json:"from"`
	To    domain.State `json:"to"`
	Label string       `json:"label"`
}

// Build validates def and returns the matching Automaton.
func Build(def Definition) (Automaton, error) {
	var (
		a   Automaton
		err error
	)
	switch d := def.(type) {
	case *NFAEDefinition:
		a, err = BuildNFAE(d)
	case *PDADefinition:
		a, err = BuildPDA(d)
	case *DTMDefinition:
		a, err = BuildDTM(d)
	case nil:
		return nil, &DescriptorError{Errors: []error{&FieldError{Path: "", Reason: "definition is nil"}}}
	default:
		return nil, &DescriptorError{
			Machine: def.MachineName(),
			Errors:  []error{&FieldError{Path: "kind", Reason: fmt.Sprintf("unsupported machine kind %q", def.Kind())}},
		}
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// machine carries the parts every variant shares.
type machine struct {
	name   string
	states []domain.State
	start  domain.State
	finals map[domain.State]struct{}
}

func (m *machine) Name() string { return m.name }

func (m *machine) States() []domain.State {
	return append([]domain.State(nil), m.states...)
}

func (m *machine) Start() domain.State { return m.start }

func (m *machine) IsFinal(s domain.State) bool {
	_, ok := m.finals[s]
	return ok
}

// Finals returns the final states in declaration order.
func (m *machine) Finals() []domain.State {
	var out []domain.State
	for _, s := range m.states {
		if m.IsFinal(s) {
			out = append(out, s)
		}
	}
	return out
}

func (m *machine) sealed() {}
