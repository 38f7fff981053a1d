package memory_test

import (
	"testing"

	"github.com/aretw0/acceptor/pkg/adapters/memory"
	"github.com/aretw0/acceptor/pkg/automaton"
	contract "github.com/aretw0/acceptor/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	loader, err := memory.NewLoader(
		&automaton.NFAEDefinition{Name: "zeta"},
		&automaton.PDADefinition{Name: "alpha"},
		&automaton.DTMDefinition{Name: "mid"},
	)
	require.NoError(t, err)

	contract.MachineLoaderContractTest(t, loader, []string{"zeta", "alpha", "mid"})
}

func TestInMemoryLoader_RejectsDuplicates(t *testing.T) {
	_, err := memory.NewLoader(
		&automaton.NFAEDefinition{Name: "same"},
		&automaton.DTMDefinition{Name: "same"},
	)
	assert.ErrorContains(t, err, "duplicate")

	_, err = memory.NewLoader(&automaton.NFAEDefinition{})
	assert.ErrorContains(t, err, "missing name")
}
