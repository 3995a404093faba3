// Package query defines the iterator contract state backends produce
// for range and history queries, and the drain routines that
// materialize an iterator into decoded in-memory records.
package query

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Item is one raw result delivered by an Iterator. Range queries fill
// Key and Value; history queries additionally fill IsDelete, TxID and,
// when the backend records one, Timestamp.
type Item struct {
	// Key is the state key the item belongs to.
	Key string
	// Value is the stored byte payload, still encoded.
	Value []byte
	// IsDelete reports whether this history entry removed the key.
	IsDelete bool
	// TxID identifies the transaction behind this history entry.
	TxID string
	// Timestamp is the modification time of this history entry, nil
	// when the backend does not record one.
	Timestamp *timestamppb.Timestamp
}

// Iterator is a forward-only cursor over state query results,
// delivering them page by page from the backend. Iterators are
// single-use: once Next returns nil or an error, the iterator is
// spent. Close releases backend resources and must be called exactly
// once; the drain routines in this package take care of that.
type Iterator interface {
	// Next returns the following item, or nil when the iterator is
	// exhausted.
	Next() (*Item, error)
	// Close releases the resources held by the iterator.
	Close() error
}
