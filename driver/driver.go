// Package driver defines the interface state backends must implement.
// It provides a common surface for direct state operations and for the
// paginated range and history queries the drain routines consume.
package driver

import (
	"context"
	"errors"

	"github.com/statecraft/go-statestore/query"
)

var (
	// ErrIteratorClosed is returned by Next on an iterator that has
	// already been closed.
	ErrIteratorClosed = errors.New("iterator is closed")
)

// PageSpec bounds a query: PageSize is the fetch granularity per
// backend round trip and Limit caps the total number of items the
// iterator will deliver. Zero means the backend's default page size
// and no limit respectively.
type PageSpec struct {
	// PageSize is the number of items fetched per backend request.
	PageSize int
	// Limit is the total number of items the iterator delivers.
	Limit int
}

// Driver is the interface that state backends must implement.
// It provides low-level key access and query iterators; value
// encoding and iterator draining happen above it.
type Driver interface {
	// GetState returns the bytes stored under key, or nil without an
	// error when the key is absent.
	GetState(ctx context.Context, key string) ([]byte, error)

	// PutState stores value under key, overwriting any previous value.
	PutState(ctx context.Context, key string, value []byte) error

	// DeleteState removes key. Deleting an absent key is not an error.
	DeleteState(ctx context.Context, key string) error

	// Range returns an iterator over keys in [start, end) in
	// lexicographic order. An empty start begins at the first key; an
	// empty end extends to the last.
	Range(ctx context.Context, start, end string, page PageSpec) (query.Iterator, error)

	// History returns an iterator over the modifications of key,
	// oldest first where the backend preserves order.
	History(ctx context.Context, key string, page PageSpec) (query.Iterator, error)
}
