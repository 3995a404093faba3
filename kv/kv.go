// Package kv provides the record types produced by draining state
// queries: key-value pairs for range scans and key modifications for
// history scans.
package kv

import "github.com/statecraft/go-statestore/codec"

// KV is a key paired with its decoded value.
type KV struct {
	// Key is the state key.
	Key string `json:"key"`
	// Value is the decode outcome for the stored bytes under Key.
	Value codec.Result `json:"value"`
}

// KeyModification is one historical write or delete of a key.
type KeyModification struct {
	// TxID identifies the transaction that performed the modification.
	TxID string `json:"tx_id"`
	// Timestamp is the modification time in epoch seconds, 0 when the
	// backend supplies none.
	Timestamp int64 `json:"timestamp"`
	// IsDelete reports whether the modification removed the key.
	IsDelete bool `json:"is_delete"`
	// Value is the decode outcome for the bytes the modification wrote.
	Value codec.Result `json:"value"`
}
