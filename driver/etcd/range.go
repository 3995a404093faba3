package etcd

import (
	"context"
	"fmt"
	"sync"

	etcd "go.etcd.io/etcd/client/v3"

	"github.com/statecraft/go-statestore/driver"
	"github.com/statecraft/go-statestore/query"
)

// rangeIterator pages through a key range with limited serializable
// reads, continuing each page from the successor of the last key
// delivered by the previous one.
type rangeIterator struct {
	ctx    context.Context //nolint:containedctx
	client Client

	mu        sync.Mutex
	next      string
	end       string
	pageSize  int
	limit     int
	delivered int
	buf       []*query.Item
	exhausted bool
	closed    bool
}

var _ query.Iterator = &rangeIterator{}

func newRangeIterator(ctx context.Context, client Client, start, end string, pageSize, limit int) *rangeIterator {
	return &rangeIterator{
		ctx:      ctx,
		client:   client,
		next:     start,
		end:      end,
		pageSize: pageSize,
		limit:    limit,
	}
}

// Next returns the following key-value item, fetching the next page
// when the buffered one runs out. It returns nil once the range or the
// item limit is exhausted.
func (it *rangeIterator) Next() (*query.Item, error) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if it.closed {
		return nil, driver.ErrIteratorClosed
	}

	if it.limit > 0 && it.delivered >= it.limit {
		return nil, nil
	}

	if len(it.buf) == 0 {
		if it.exhausted {
			return nil, nil
		}

		if err := it.fetch(); err != nil {
			return nil, err
		}

		if len(it.buf) == 0 {
			return nil, nil
		}
	}

	item := it.buf[0]
	it.buf = it.buf[1:]
	it.delivered++

	return item, nil
}

// fetch loads the next page into the buffer and advances the
// continuation key. The caller must hold the lock.
func (it *rangeIterator) fetch() error {
	opts := []etcd.OpOption{
		etcd.WithLimit(int64(it.pageSize)),
		etcd.WithSerializable(),
	}

	if it.end == "" {
		opts = append(opts, etcd.WithFromKey())
	} else {
		opts = append(opts, etcd.WithRange(it.end))
	}

	resp, err := it.client.Get(it.ctx, it.next, opts...)
	if err != nil {
		return fmt.Errorf("failed to fetch range page: %w", err)
	}

	for _, keyValue := range resp.Kvs {
		it.buf = append(it.buf, &query.Item{
			Key:   string(keyValue.Key),
			Value: keyValue.Value,
		})
	}

	if len(resp.Kvs) == 0 || !resp.More {
		it.exhausted = true

		return nil
	}

	// The successor of the last delivered key starts the next page.
	it.next = string(resp.Kvs[len(resp.Kvs)-1].Key) + "\x00"

	return nil
}

// Close releases the iterator. Closing twice is harmless.
func (it *rangeIterator) Close() error {
	it.mu.Lock()
	defer it.mu.Unlock()

	it.closed = true
	it.buf = nil

	return nil
}
