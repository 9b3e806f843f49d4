// Package store defines the contract of the record store holding a tree
// collection: path predicates, ordered selection and the atomic
// conditional bulk update used to relocate subtrees.
//
// Providers live in sub-packages. All of them share the evaluation logic
// of this package through the Txn interface, so the semantics of Select,
// Apply and Delete are identical regardless of the backend.
package store

import (
	"context"

	"github.com/google/uuid"
)

// Reader is the read side of the store.
type Reader interface {
	// Get returns the node by ID or ErrNodeNotFound.
	Get(ctx context.Context, id uuid.UUID) (Node, error)
	// Select returns nodes matching the query in path order.
	Select(ctx context.Context, q Query) ([]Node, error)
}

// Writer is the write side of the store.
type Writer interface {
	// Apply executes the batch in one transaction and returns the number
	// of rewritten nodes. Path uniqueness is checked at the end of the
	// transaction, ErrPathConflict aborts the whole batch.
	Apply(ctx context.Context, b Batch) (int, error)
	// Delete removes the node with all of its descendants and returns the
	// number of removed nodes.
	Delete(ctx context.Context, id uuid.UUID) (int, error)
}

// Store is a tree collection.
type Store interface {
	Reader
	Writer
}

// Storage is a Store with a lifecycle.
type Storage interface {
	Store
	// Open opens the underlying resources.
	Open() error
	// Init prepares the storage structure, it is a no-op for initialized
	// storages.
	Init() error
	// Close releases the underlying resources.
	Close() error
}

// First returns the first node matching the query.
func First(ctx context.Context, r Reader, q Query) (Node, bool, error) {
	res, err := r.Select(ctx, q.First())
	if err != nil || len(res) == 0 {
		return Node{}, false, err
	}
	return res[0], true, nil
}
