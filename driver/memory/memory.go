// Package memory provides an in-memory implementation of the state
// driver interface for tests, examples, and reference semantics.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/statecraft/go-statestore/driver"
	"github.com/statecraft/go-statestore/query"
)

// version is one recorded modification of a key.
type version struct {
	value    []byte
	txID     string
	at       time.Time
	isDelete bool
}

// memoryState is a thread-safe structure that holds the current
// key-value state and the full modification history of every key.
type memoryState struct {
	current map[string][]byte
	history map[string][]version
	seq     int64
	mu      sync.RWMutex
}

// Driver is an in-memory implementation of the state driver interface.
// Every mutation is recorded, so history queries return the complete
// modification trail of a key, deletes included.
type Driver struct {
	data memoryState
}

var _ driver.Driver = &Driver{}

// New creates an empty in-memory driver.
func New() *Driver {
	return &Driver{
		data: memoryState{
			current: make(map[string][]byte),
			history: make(map[string][]version),
			seq:     0,
			mu:      sync.RWMutex{},
		},
	}
}

// GetState returns the bytes stored under key, or nil when the key is
// absent.
func (d *Driver) GetState(_ context.Context, key string) ([]byte, error) {
	d.data.mu.RLock()
	defer d.data.mu.RUnlock()

	value, ok := d.data.current[key]
	if !ok {
		return nil, nil
	}

	return value, nil
}

// PutState stores value under key and records the write in the key's
// history.
func (d *Driver) PutState(_ context.Context, key string, value []byte) error {
	d.data.mu.Lock()
	defer d.data.mu.Unlock()

	d.data.current[key] = value
	d.record(key, value, false)

	return nil
}

// DeleteState removes key and records the delete in the key's history.
// Deleting an absent key records nothing.
func (d *Driver) DeleteState(_ context.Context, key string) error {
	d.data.mu.Lock()
	defer d.data.mu.Unlock()

	if _, ok := d.data.current[key]; !ok {
		return nil
	}

	delete(d.data.current, key)
	d.record(key, nil, true)

	return nil
}

// record appends a modification to the key's history. The caller must
// hold the write lock.
func (d *Driver) record(key string, value []byte, isDelete bool) {
	d.data.seq++

	d.data.history[key] = append(d.data.history[key], version{
		value:    value,
		txID:     "mem-" + strconv.FormatInt(d.data.seq, 10),
		at:       time.Now(),
		isDelete: isDelete,
	})
}

// Range returns an iterator over a snapshot of the keys in
// [start, end), sorted lexicographically. The snapshot is taken when
// Range is called; later mutations do not show up in the iterator.
func (d *Driver) Range(ctx context.Context, start, end string, page driver.PageSpec) (query.Iterator, error) {
	d.data.mu.RLock()
	defer d.data.mu.RUnlock()

	keys := make([]string, 0, len(d.data.current))

	for key := range d.data.current {
		if start != "" && key < start {
			continue
		}

		if end != "" && key >= end {
			continue
		}

		keys = append(keys, key)
	}

	sort.Strings(keys)

	items := make([]*query.Item, 0, len(keys))
	for _, key := range keys {
		items = append(items, &query.Item{Key: key, Value: d.data.current[key]})
	}

	return newIterator(ctx, items, page.Limit), nil
}

// History returns an iterator over the recorded modifications of key,
// oldest first. An absent key yields an empty iterator.
func (d *Driver) History(ctx context.Context, key string, page driver.PageSpec) (query.Iterator, error) {
	d.data.mu.RLock()
	defer d.data.mu.RUnlock()

	versions := d.data.history[key]

	items := make([]*query.Item, 0, len(versions))
	for _, ver := range versions {
		items = append(items, &query.Item{
			Key:       key,
			Value:     ver.value,
			IsDelete:  ver.isDelete,
			TxID:      ver.txID,
			Timestamp: timestamppb.New(ver.at),
		})
	}

	return newIterator(ctx, items, page.Limit), nil
}

// iterator walks a snapshot taken when the query was created. There
// are no backend round trips, so the page size has no effect here;
// the limit is applied at creation.
type iterator struct {
	ctx    context.Context //nolint:containedctx
	mu     sync.Mutex
	items  []*query.Item
	closed bool
}

var _ query.Iterator = &iterator{}

func newIterator(ctx context.Context, items []*query.Item, limit int) *iterator {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	return &iterator{ctx: ctx, mu: sync.Mutex{}, items: items, closed: false}
}

// Next returns the following snapshot item, or nil when the snapshot
// is exhausted.
func (it *iterator) Next() (*query.Item, error) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if it.closed {
		return nil, driver.ErrIteratorClosed
	}

	if err := it.ctx.Err(); err != nil {
		return nil, err
	}

	if len(it.items) == 0 {
		return nil, nil
	}

	item := it.items[0]
	it.items = it.items[1:]

	return item, nil
}

// Close releases the snapshot. Closing twice is harmless.
func (it *iterator) Close() error {
	it.mu.Lock()
	defer it.mu.Unlock()

	it.closed = true
	it.items = nil

	return nil
}
