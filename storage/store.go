package storage

import (
	"context"
)

// Store is an abstraction over a flat namespace of immutable records.
//
// Implementations return an error satisfying errors.Is(err, errs.ErrNotFound)
// from Get when name does not exist. Delete of a missing name is not an error.
type Store interface {
	// Put stores data under name, replacing any previous record atomically.
	Put(ctx context.Context, name string, data []byte) error
	// Get returns the record stored under name.
	Get(ctx context.Context, name string) ([]byte, error)
	// Delete removes the record stored under name.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names that start with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
