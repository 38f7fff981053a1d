package acceptor

import (
	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/aretw0/acceptor/pkg/domain"
)

// MachineInfo describes a built machine for introspection tools.
type MachineInfo struct {
	Name          string           `json:"name"`
	Kind          automaton.Kind   `json:"kind"`
	States        []domain.State   `json:"states"`
	Start         domain.State     `json:"start"`
	Finals        []domain.State   `json:"finals"`
	InputAlphabet []string         `json:"input_alphabet"`
	Edges         []automaton.Edge `json:"edges"`
}

// Inspect returns the structure of the named machine.
func (e *Engine) Inspect(name string) (MachineInfo, error) {
	a, err := e.Machine(name)
	if err != nil {
		return MachineInfo{}, err
	}
	return Describe(a), nil
}

// Describe summarizes a built machine.
func Describe(a automaton.Automaton) MachineInfo {
	info := MachineInfo{
		Name:   a.Name(),
		Kind:   a.Kind(),
		States: a.States(),
		Start:  a.Start(),
		Finals: []domain.State{},
		Edges:  a.Edges(),
	}
	for _, s := range info.States {
		if a.IsFinal(s) {
			info.Finals = append(info.Finals, s)
		}
	}
	for _, s := range a.InputAlphabet().Symbols() {
		info.InputAlphabet = append(info.InputAlphabet, s.String())
	}
	return info
}
