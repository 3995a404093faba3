// Package statestore provides a ledger-style key/value store facade:
// values are encoded for storage through the codec, stored through a
// pluggable state driver, and read back through range and history
// queries drained into in-memory records.
//
// See [Store] for value operations and queries, and [Typed] for a
// typed-object layer built on top of it.
package statestore

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/statecraft/go-statestore/codec"
	"github.com/statecraft/go-statestore/driver"
	"github.com/statecraft/go-statestore/internal/options"
	"github.com/statecraft/go-statestore/kv"
	"github.com/statecraft/go-statestore/query"
)

// storeOptions contains configuration options for store instances.
type storeOptions struct {
	logger *zap.Logger
	codec  *codec.Codec
}

// WithLogger configures the logger the store and its codec record to.
// Without it the store is silent.
func WithLogger(logger *zap.Logger) options.OptionCallback[storeOptions] {
	return func(opts *storeOptions) {
		opts.logger = logger
	}
}

// WithCodec configures the codec used to encode and decode values,
// replacing the one the store builds from its logger.
func WithCodec(c *codec.Codec) options.OptionCallback[storeOptions] {
	return func(opts *storeOptions) {
		opts.codec = c
	}
}

// rangeOptions contains configuration options for range queries.
type rangeOptions struct {
	pageSize int // Items fetched per backend round trip.
	limit    int // Total cap on delivered items.
}

// RangeOption is a function that configures range query options.
type RangeOption func(*rangeOptions)

// WithPageSize configures how many items a range query fetches per
// backend round trip. Zero picks the backend's default.
func WithPageSize(pageSize int) RangeOption {
	return func(opts *rangeOptions) {
		opts.pageSize = pageSize
	}
}

// WithLimit caps the total number of items a range query delivers.
// Zero means no limit.
func WithLimit(limit int) RangeOption {
	return func(opts *rangeOptions) {
		opts.limit = limit
	}
}

// Store is the ledger facade over a state driver. Outbound values pass
// through the codec before they reach the driver; inbound bytes and
// query results are decoded on the way back.
//
// A Store is immutable and safe for concurrent use whenever its driver
// is.
type Store struct {
	driver driver.Driver
	codec  *codec.Codec
	logger *zap.Logger
}

// New creates a Store backed by the given driver. Options:
//   - WithLogger: record codec fallbacks to the given logger
//   - WithCodec: encode and decode with a caller-built codec
func New(d driver.Driver, opts ...options.OptionCallback[storeOptions]) *Store {
	o := options.ApplyOptions(nil, opts)

	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	if o.codec == nil {
		o.codec = codec.New(o.logger)
	}

	return &Store{
		driver: d,
		codec:  o.codec,
		logger: o.logger.Named("store"),
	}
}

// PutValue encodes the value and stores it under key, overwriting any
// previous value.
func (s *Store) PutValue(ctx context.Context, key string, value codec.Value) error {
	data, err := s.codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := s.driver.PutState(ctx, key, data); err != nil {
		return fmt.Errorf("failed to put state: %w", err)
	}

	return nil
}

// GetValue returns the decode outcome for the bytes stored under key.
// An absent key yields the nil Result without an error.
func (s *Store) GetValue(ctx context.Context, key string) (codec.Result, error) {
	data, err := s.driver.GetState(ctx, key)
	if err != nil {
		return codec.NilResult(), fmt.Errorf("failed to get state: %w", err)
	}

	return s.codec.Unmarshal(data), nil
}

// DeleteValue removes key. Deleting an absent key is not an error.
func (s *Store) DeleteValue(ctx context.Context, key string) error {
	if err := s.driver.DeleteState(ctx, key); err != nil {
		return fmt.Errorf("failed to delete state: %w", err)
	}

	return nil
}

// Query returns the raw iterator over keys in [start, end) for callers
// that stream results instead of materializing them. The caller owns
// the iterator and must close it.
// Options:
//   - WithPageSize: items fetched per backend round trip
//   - WithLimit: total cap on delivered items
func (s *Store) Query(ctx context.Context, start, end string, opts ...RangeOption) (query.Iterator, error) {
	it, err := s.driver.Range(ctx, start, end, pageSpec(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to query range: %w", err)
	}

	return it, nil
}

// Range drains the keys in [start, end) into key-value records, each
// value decoded through the codec. Options are those of Query.
func (s *Store) Range(ctx context.Context, start, end string, opts ...RangeOption) ([]kv.KV, error) {
	it, err := s.Query(ctx, start, end, opts...)
	if err != nil {
		return nil, err
	}

	return query.DrainKV(it, s.codec)
}

// Values drains the keys in [start, end) into decode outcomes alone,
// without their keys. Options are those of Query.
func (s *Store) Values(ctx context.Context, start, end string, opts ...RangeOption) ([]codec.Result, error) {
	it, err := s.Query(ctx, start, end, opts...)
	if err != nil {
		return nil, err
	}

	return query.Drain(it, s.codec)
}

// History drains the recorded modifications of key into key
// modification records, oldest first where the backend preserves
// order.
func (s *Store) History(ctx context.Context, key string) ([]kv.KeyModification, error) {
	it, err := s.driver.History(ctx, key, driver.PageSpec{})
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}

	return query.DrainHistory(it, s.codec)
}

func pageSpec(opts []RangeOption) driver.PageSpec {
	var o rangeOptions

	for _, opt := range opts {
		opt(&o)
	}

	return driver.PageSpec{PageSize: o.pageSize, Limit: o.limit}
}
