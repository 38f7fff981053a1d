package memory

import (
	"fmt"

	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/aretw0/acceptor/pkg/domain"
)

// Loader implements ports.MachineLoader over definitions held in memory.
type Loader struct {
	defs  map[string]automaton.Definition
	order []string
}

// NewLoader creates a new Loader from the given definitions.
// Names must be unique and non-empty.
func NewLoader(defs ...automaton.Definition) (*Loader, error) {
	l := &Loader{defs: make(map[string]automaton.Definition, len(defs))}
	for _, d := range defs {
		if d == nil {
			return nil, fmt.Errorf("nil definition")
		}
		name := d.MachineName()
		if name == "" {
			return nil, fmt.Errorf("definition missing name")
		}
		if _, dup := l.defs[name]; dup {
			return nil, fmt.Errorf("duplicate machine name %q", name)
		}
		l.defs[name] = d
		l.order = append(l.order, name)
	}
	return l, nil
}

// GetMachine retrieves a definition by name.
func (l *Loader) GetMachine(name string) (automaton.Definition, error) {
	d, ok := l.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMachineNotFound, name)
	}
	return d, nil
}

// ListMachines returns the machine names in the order they were given.
func (l *Loader) ListMachines() ([]string, error) {
	return append([]string(nil), l.order...), nil
}
