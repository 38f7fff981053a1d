package tests

import (
	"testing"

	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/aretw0/acceptor/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MachineLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.MachineLoader.
// want lists the machine names the loader must expose, in order.
func MachineLoaderContractTest(t *testing.T, loader ports.MachineLoader, want []string) {
	t.Helper()

	t.Run("GetMachine_Success", func(t *testing.T) {
		for _, name := range want {
			def, err := loader.GetMachine(name)
			require.NoError(t, err, "machine %s", name)
			assert.Equal(t, name, def.MachineName())
		}
	})

	t.Run("GetMachine_NotFound", func(t *testing.T) {
		_, err := loader.GetMachine("non-existent-machine")
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)
	})

	t.Run("ListMachines", func(t *testing.T) {
		names, err := loader.ListMachines()
		require.NoError(t, err)
		assert.Equal(t, want, names)
	})
}
