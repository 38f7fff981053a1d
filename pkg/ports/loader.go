package ports

import "github.com/aretw0/acceptor/pkg/automaton"

// MachineLoader defines how the engine retrieves machine definitions.
// This allows the source (descriptor file, memory) to be decoupled.
type MachineLoader interface {
	// GetMachine returns the raw definition of the named machine.
	// It returns an error wrapping domain.ErrMachineNotFound if the name is unknown.
	GetMachine(name string) (automaton.Definition, error)

	// ListMachines returns the names of every available machine, in source order.
	ListMachines() ([]string, error)
}
