package statestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/statecraft/go-statestore/internal/options"
	"github.com/statecraft/go-statestore/marshaller"
)

// ErrNotFound is returned by Typed.Get when the key is absent.
var ErrNotFound = errors.New("not found")

// Entry is a key paired with its unmarshalled typed value, produced by
// Typed.List.
type Entry[T any] struct {
	// Key is the state key.
	Key string
	// Value is the unmarshalled object stored under Key.
	Value T
}

// listOptions contains configuration options for Typed.List.
type listOptions struct {
	pageSize int
	limit    int
}

// WithListPageSize configures how many entries List fetches per
// backend round trip. Zero picks the backend's default.
func WithListPageSize(pageSize int) options.OptionCallback[listOptions] {
	return func(opts *listOptions) {
		opts.pageSize = pageSize
	}
}

// WithListLimit caps the total number of entries List delivers. Zero
// means no limit.
func WithListLimit(limit int) options.OptionCallback[listOptions] {
	return func(opts *listOptions) {
		opts.limit = limit
	}
}

// Typed provides object storage for a single type on top of a Store.
// Objects pass through the configured marshaller instead of the value
// codec, so the stored byte form is the marshaller's wire format.
type Typed[T any] struct {
	store *Store
	m     marshaller.TypedMarshaller[T]
}

// NewTyped creates a typed layer over the store. A nil marshaller
// defaults to JSON, the store's text format.
func NewTyped[T any](store *Store, m marshaller.TypedMarshaller[T]) *Typed[T] {
	if m == nil {
		m = marshaller.NewTypedJSONMarshaller[T]()
	}

	return &Typed[T]{store: store, m: m}
}

// Put marshals the value and stores it under key.
func (t *Typed[T]) Put(ctx context.Context, key string, value T) error {
	data, err := t.m.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal object: %w", err)
	}

	if err := t.store.driver.PutState(ctx, key, data); err != nil {
		return fmt.Errorf("failed to put state: %w", err)
	}

	return nil
}

// Get retrieves and unmarshals the value stored under key. An absent
// key yields ErrNotFound.
func (t *Typed[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T

	data, err := t.store.driver.GetState(ctx, key)
	if err != nil {
		return zero, fmt.Errorf("failed to get state: %w", err)
	}

	if data == nil {
		return zero, ErrNotFound
	}

	out, err := t.m.Unmarshal(data)
	if err != nil {
		return zero, fmt.Errorf("failed to unmarshal object: %w", err)
	}

	return out, nil
}

// Delete removes key. Deleting an absent key is not an error.
func (t *Typed[T]) Delete(ctx context.Context, key string) error {
	return t.store.DeleteValue(ctx, key)
}

// List retrieves and unmarshals all values with keys in [start, end),
// in lexicographic key order. Items without a payload are skipped; an
// item whose payload does not unmarshal fails the whole call. The
// underlying iterator is closed on every path.
// Options:
//   - WithListPageSize: entries fetched per backend round trip
//   - WithListLimit: total cap on delivered entries
func (t *Typed[T]) List(
	ctx context.Context,
	start, end string,
	opts ...options.OptionCallback[listOptions],
) (entries []Entry[T], err error) {
	o := options.ApplyOptions(nil, opts)

	it, err := t.store.Query(ctx, start, end, WithPageSize(o.pageSize), WithLimit(o.limit))
	if err != nil {
		return nil, err
	}

	defer func() {
		if cerr := it.Close(); err == nil {
			err = cerr
		}
	}()

	for {
		item, fetchErr := it.Next()
		if fetchErr != nil {
			return nil, fmt.Errorf("failed to fetch next item: %w", fetchErr)
		}

		if item == nil {
			return entries, nil
		}

		if len(item.Value) == 0 {
			continue
		}

		value, umErr := t.m.Unmarshal(item.Value)
		if umErr != nil {
			return nil, fmt.Errorf("failed to unmarshal object under %q: %w", item.Key, umErr)
		}

		entries = append(entries, Entry[T]{Key: item.Key, Value: value})
	}
}
