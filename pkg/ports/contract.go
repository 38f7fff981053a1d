package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultStoreContract runs a suite of tests to verify that a ResultStore implementation
// adheres to the defined interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	machine := "contract-test-machine-" + time.Now().Format("20060102150405")

	record := func(i int, verdict domain.Verdict) domain.Record {
		return domain.Record{
			ID:        fmt.Sprintf("%s-%d", machine, i),
			Machine:   machine,
			Kind:      "nfae",
			Input:     fmt.Sprintf("input-%d", i),
			Verdict:   verdict,
			Steps:     i,
			CheckedAt: time.Unix(int64(1700000000+i), 0).UTC(),
		}
	}

	t.Run("Save and List", func(t *testing.T) {
		defer func() { _ = store.Delete(ctx, machine) }()

		require.NoError(t, store.Save(ctx, record(1, domain.VerdictAccepted)), "Save should not return error")
		require.NoError(t, store.Save(ctx, record(2, domain.VerdictRejected)))

		records, err := store.List(ctx, machine, 0)
		require.NoError(t, err, "List should not return error")
		require.Len(t, records, 2)
		assert.Equal(t, "input-2", records[0].Input, "newest record comes first")
		assert.Equal(t, domain.VerdictRejected, records[0].Verdict)
		assert.Equal(t, "input-1", records[1].Input)
		assert.True(t, records[1].CheckedAt.Equal(record(1, "").CheckedAt))
	})

	t.Run("List Limit", func(t *testing.T) {
		defer func() { _ = store.Delete(ctx, machine) }()

		for i := 1; i <= 5; i++ {
			require.NoError(t, store.Save(ctx, record(i, domain.VerdictAccepted)))
		}

		records, err := store.List(ctx, machine, 2)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "input-5", records[0].Input)
		assert.Equal(t, "input-4", records[1].Input)
	})

	t.Run("List Unknown Machine", func(t *testing.T) {
		records, err := store.List(ctx, "unknown-"+machine, 0)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, record(1, domain.VerdictAccepted)))

		require.NoError(t, store.Delete(ctx, machine), "Delete should not return error")

		records, err := store.List(ctx, machine, 0)
		require.NoError(t, err)
		assert.Empty(t, records, "List after Delete should be empty")
	})

	t.Run("Machines Are Isolated", func(t *testing.T) {
		other := machine + "-other"
		defer func() {
			_ = store.Delete(ctx, machine)
			_ = store.Delete(ctx, other)
		}()

		rec := record(1, domain.VerdictAccepted)
		rec.Machine = other
		require.NoError(t, store.Save(ctx, rec))
		require.NoError(t, store.Save(ctx, record(2, domain.VerdictAccepted)))

		records, err := store.List(ctx, other, 0)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, other, records[0].Machine)
	})
}
