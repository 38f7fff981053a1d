package ports

import (
	"context"

	"github.com/aretw0/acceptor/pkg/domain"
)

// ResultStore defines the interface for persisting the history of checks.
type ResultStore interface {
	// Save appends a record to the history of its machine.
	Save(ctx context.Context, rec domain.Record) error

	// List returns up to limit records of a machine, newest first.
	// A limit <= 0 returns every record.
	List(ctx context.Context, machine string, limit int) ([]domain.Record, error)

	// Delete drops the whole history of a machine.
	Delete(ctx context.Context, machine string) error
}
