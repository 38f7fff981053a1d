package file

import (
	"cmp"
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// kindNTM is recognised only to be refused.
const kindNTM = "ntm"

// nfaeDoc accepts the key spellings of the original ε-NFA files as well as the
// ones shared with the other kinds.
type nfaeDoc struct {
	Name          string                         `mapstructure:"name"`
	States        []string                       `mapstructure:"states"`
	Initial       string                         `mapstructure:"initial"`
	StartState    string                         `mapstructure:"start_state"`
	Finals        []string                       `mapstructure:"finals"`
	FinalStates   []string                       `mapstructure:"final_states"`
	Symbols       []string                       `mapstructure:"symbols"`
	InputAlphabet []string                       `mapstructure:"input_alphabet"`
	Transitions   map[string]map[string][]string `mapstructure:"transitions"`
}

type pdaDoc struct {
	Name               string                               `mapstructure:"name"`
	States             []string                             `mapstructure:"states"`
	StartState         string                               `mapstructure:"start_state"`
	AcceptingStates    []string                             `mapstructure:"accepting_states"`
	FinalStates        []string                             `mapstructure:"final_states"`
	InputAlphabet      []string                             `mapstructure:"input_alphabet"`
	StackAlphabet      []string                             `mapstructure:"stack_alphabet"`
	StartStack         string                               `mapstructure:"start_stack"`
	TransitionRelation map[string]map[string]map[string]any `mapstructure:"transition_relation"`
}

type dtmDoc struct {
	Name               string                         `mapstructure:"name"`
	States             []string                       `mapstructure:"states"`
	StartState         string                         `mapstructure:"start_state"`
	FinalStates        []string                       `mapstructure:"final_states"`
	TapeAlphabet       []string                       `mapstructure:"tape_alphabet"`
	BlankSymbol        string                         `mapstructure:"blank_symbol"`
	InputAlphabet      []string                       `mapstructure:"input_alphabet"`
	StartMarker        string                         `mapstructure:"start_marker"`
	DoubleSided        bool                           `mapstructure:"double_sided"`
	TransitionFunction map[string]map[string][]string `mapstructure:"transition_function"`
}

// definition turns one document into a machine definition. It only checks the
// shape of the document; the machine itself is validated by automaton.Build.
func definition(doc map[string]any) (automaton.Definition, error) {
	name, _ := doc["name"].(string)

	var kinds []string
	for _, k := range []string{string(automaton.KindNFAE), string(automaton.KindPDA), string(automaton.KindDTM), kindNTM} {
		if _, ok := doc[k]; ok {
			kinds = append(kinds, k)
		}
	}

	var kind string
	body := doc
	switch len(kinds) {
	case 0:
		switch {
		case has(doc, "transition_relation"):
			kind = string(automaton.KindPDA)
		case has(doc, "transition_function"):
			kind = string(automaton.KindDTM)
		case has(doc, "transitions"):
			kind = string(automaton.KindNFAE)
		default:
			return nil, fieldErr(name, "", "document has none of the keys nfae, pda or dtm")
		}
	case 1:
		kind = kinds[0]
		m, ok := doc[kind].(map[string]any)
		if !ok {
			return nil, fieldErr(name, kind, fmt.Sprintf("expected a mapping, got %T", doc[kind]))
		}
		body = make(map[string]any, len(m)+1)
		for k, v := range m {
			body[k] = v
		}
		if name == "" {
			name, _ = m["name"].(string)
		}
		body["name"] = name
	default:
		return nil, fieldErr(name, "", fmt.Sprintf("document describes more than one machine: %v", kinds))
	}

	if name == "" {
		return nil, fieldErr("", "name", "machine name is required")
	}

	switch automaton.Kind(kind) {
	case automaton.KindNFAE:
		return nfaeDefinition(body)
	case automaton.KindPDA:
		return pdaDefinition(body)
	case automaton.KindDTM:
		return dtmDefinition(body)
	}
	return nil, fieldErr(name, kind, "non-deterministic Turing machines are not supported")
}

func nfaeDefinition(body map[string]any) (automaton.Definition, error) {
	if err := aliasConflicts(body, automaton.KindNFAE,
		[2]string{"initial", "start_state"},
		[2]string{"finals", "final_states"},
		[2]string{"symbols", "input_alphabet"},
	); err != nil {
		return nil, err
	}
	var d nfaeDoc
	if err := decode(body, &d); err != nil {
		return nil, decodeErr(d.Name, automaton.KindNFAE, err)
	}
	return &automaton.NFAEDefinition{
		Name:        d.Name,
		States:      d.States,
		Start:       cmp.Or(d.Initial, d.StartState),
		Finals:      either(d.Finals, d.FinalStates),
		Alphabet:    either(d.Symbols, d.InputAlphabet),
		Transitions: d.Transitions,
	}, nil
}

func pdaDefinition(body map[string]any) (automaton.Definition, error) {
	if err := aliasConflicts(body, automaton.KindPDA, [2]string{"accepting_states", "final_states"}); err != nil {
		return nil, err
	}
	var d pdaDoc
	if err := decode(body, &d); err != nil {
		return nil, decodeErr(d.Name, automaton.KindPDA, err)
	}

	var errs []error
	transitions := make(map[string]map[string]map[string][]automaton.PDAMove, len(d.TransitionRelation))
	for from, bySymbol := range d.TransitionRelation {
		transitions[from] = make(map[string]map[string][]automaton.PDAMove, len(bySymbol))
		for sym, byTop := range bySymbol {
			transitions[from][sym] = make(map[string][]automaton.PDAMove, len(byTop))
			for top, raw := range byTop {
				moves, err := pdaMoves(raw)
				if err != nil {
					errs = append(errs, &automaton.FieldError{Path: path("transition_relation", from, sym, top), Reason: err.Error()})
					continue
				}
				transitions[from][sym][top] = moves
			}
		}
	}
	if len(errs) > 0 {
		return nil, &automaton.DescriptorError{Machine: d.Name, Errors: sortErrors(errs)}
	}

	return &automaton.PDADefinition{
		Name:          d.Name,
		States:        d.States,
		Start:         d.StartState,
		Finals:        either(d.AcceptingStates, d.FinalStates),
		InputAlphabet: d.InputAlphabet,
		StackAlphabet: d.StackAlphabet,
		StartStack:    d.StartStack,
		Transitions:   transitions,
	}, nil
}

// pdaMoves reads either a single [next, push] pair or a list of such pairs.
func pdaMoves(raw any) ([]automaton.PDAMove, error) {
	items, ok := raw.([]any)
	if !ok || len(items) == 0 {
		return nil, fmt.Errorf("expected [next, push] or a list of them, got %v", raw)
	}
	if _, nested := items[0].([]any); !nested {
		items = []any{items}
	}

	moves := make([]automaton.PDAMove, 0, len(items))
	for _, item := range items {
		var pair []string
		if err := mapstructure.WeakDecode(item, &pair); err != nil {
			return nil, err
		}
		if len(pair) != 2 {
			return nil, fmt.Errorf("%v is not a (next, push) pair", item)
		}
		moves = append(moves, automaton.PDAMove{Next: pair[0], Push: pair[1]})
	}
	return moves, nil
}

func dtmDefinition(body map[string]any) (automaton.Definition, error) {
	var d dtmDoc
	if err := decode(body, &d); err != nil {
		return nil, decodeErr(d.Name, automaton.KindDTM, err)
	}

	var errs []error
	transitions := make(map[string]map[string]automaton.DTMAction, len(d.TransitionFunction))
	for from, bySymbol := range d.TransitionFunction {
		transitions[from] = make(map[string]automaton.DTMAction, len(bySymbol))
		for sym, out := range bySymbol {
			if len(out) != 3 {
				errs = append(errs, &automaton.FieldError{
					Path:   path("transition_function", from, sym),
					Reason: "expected [write, shift, next]",
					Value:  out,
				})
				continue
			}
			transitions[from][sym] = automaton.DTMAction{Write: out[0], Shift: out[1], Next: out[2]}
		}
	}
	if len(errs) > 0 {
		return nil, &automaton.DescriptorError{Machine: d.Name, Errors: sortErrors(errs)}
	}

	return &automaton.DTMDefinition{
		Name:          d.Name,
		States:        d.States,
		Start:         d.StartState,
		Finals:        d.FinalStates,
		TapeAlphabet:  d.TapeAlphabet,
		Blank:         d.BlankSymbol,
		InputAlphabet: d.InputAlphabet,
		StartMarker:   d.StartMarker,
		DoubleSided:   d.DoubleSided,
		Transitions:   transitions,
	}, nil
}

// decode maps a generic document onto a typed one. Unknown keys are errors so
// a misspelled field is not silently ignored.
func decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

func decodeErr(name string, kind automaton.Kind, err error) error {
	var me *mapstructure.Error
	if !errors.As(err, &me) {
		return fieldErr(name, string(kind), err.Error())
	}
	errs := make([]error, 0, len(me.Errors))
	for _, msg := range me.Errors {
		errs = append(errs, &automaton.FieldError{Path: string(kind), Reason: msg})
	}
	return &automaton.DescriptorError{Machine: name, Errors: errs}
}

// aliasConflicts reports every pair of keys naming the same field that a
// document spells both ways.
func aliasConflicts(body map[string]any, kind automaton.Kind, pairs ...[2]string) error {
	var errs []error
	for _, p := range pairs {
		if has(body, p[0]) && has(body, p[1]) {
			errs = append(errs, &automaton.FieldError{
				Path:   path(string(kind), p[0]),
				Reason: fmt.Sprintf("%s and %s name the same field; give only one", p[0], p[1]),
			})
		}
	}
	if len(errs) == 0 {
		return nil
	}
	name, _ := body["name"].(string)
	return &automaton.DescriptorError{Machine: name, Errors: errs}
}

func fieldErr(machine, path, reason string) error {
	return &automaton.DescriptorError{
		Machine: machine,
		Errors:  []error{&automaton.FieldError{Path: path, Reason: reason}},
	}
}

func has(doc map[string]any, key string) bool {
	_, ok := doc[key]
	return ok
}

func either(a, b []string) []string {
	if a != nil {
		return a
	}
	return b
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

func sortErrors(errs []error) []error {
	sort.Slice(errs, func(i, j int) bool { return errs[i].Error() < errs[j].Error() })
	return errs
}
