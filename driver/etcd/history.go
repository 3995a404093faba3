package etcd

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	etcd "go.etcd.io/etcd/client/v3"

	"github.com/statecraft/go-statestore/driver"
	"github.com/statecraft/go-statestore/query"
)

// historyIterator walks a key's MVCC revision chain newest first: each
// step reads the key as of the pending revision and the following step
// continues just below the modification revision it saw. The walk ends
// when it passes the head version's create revision. Transaction ids
// are the decimal modification revisions; etcd records no wall-clock
// timestamps, so items carry none.
type historyIterator struct {
	ctx    context.Context //nolint:containedctx
	client Client
	key    string

	mu        sync.Mutex
	rev       int64
	createRev int64
	limit     int
	delivered int
	closed    bool
}

var _ query.Iterator = &historyIterator{}

func newHistoryIterator(ctx context.Context, client Client, key string, rev, createRev int64, limit int) *historyIterator {
	return &historyIterator{
		ctx:       ctx,
		client:    client,
		key:       key,
		rev:       rev,
		createRev: createRev,
		limit:     limit,
	}
}

// Next returns the following version of the key, or nil once the walk
// has passed the create revision or reached the item limit. A version
// dropped by compaction surfaces as a fetch error.
func (it *historyIterator) Next() (*query.Item, error) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if it.closed {
		return nil, driver.ErrIteratorClosed
	}

	if it.limit > 0 && it.delivered >= it.limit {
		return nil, nil
	}

	if it.rev <= 0 || it.rev < it.createRev {
		return nil, nil
	}

	resp, err := it.client.Get(it.ctx, it.key, etcd.WithRev(it.rev), etcd.WithSerializable())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch revision %d: %w", it.rev, err)
	}

	if len(resp.Kvs) == 0 {
		return nil, nil
	}

	keyValue := resp.Kvs[0]

	it.rev = keyValue.ModRevision - 1
	it.delivered++

	return &query.Item{
		Key:   it.key,
		Value: keyValue.Value,
		TxID:  strconv.FormatInt(keyValue.ModRevision, 10),
	}, nil
}

// Close releases the iterator. Closing twice is harmless.
func (it *historyIterator) Close() error {
	it.mu.Lock()
	defer it.mu.Unlock()

	it.closed = true

	return nil
}
