package tarantool

import (
	"sync"

	"github.com/statecraft/go-statestore/driver"
	"github.com/statecraft/go-statestore/query"
)

// pagedIterator walks proc pages through their continuation cursor: a
// page's cursor feeds the next fetch, and an empty cursor marks the
// last page.
type pagedIterator struct {
	mu        sync.Mutex
	fetch     func(after string) ([]*query.Item, string, error)
	after     string
	buf       []*query.Item
	limit     int
	delivered int
	exhausted bool
	closed    bool
}

var _ query.Iterator = &pagedIterator{}

func newPagedIterator(fetch func(after string) ([]*query.Item, string, error), limit int) *pagedIterator {
	return &pagedIterator{fetch: fetch, limit: limit}
}

// Next returns the following item, fetching the next page when the
// buffered one runs out. It returns nil once the last page is spent or
// the item limit is reached.
func (it *pagedIterator) Next() (*query.Item, error) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if it.closed {
		return nil, driver.ErrIteratorClosed
	}

	if it.limit > 0 && it.delivered >= it.limit {
		return nil, nil
	}

	for len(it.buf) == 0 {
		if it.exhausted {
			return nil, nil
		}

		items, after, err := it.fetch(it.after)
		if err != nil {
			return nil, err
		}

		it.buf = items
		it.after = after

		if after == "" {
			it.exhausted = true
		}
	}

	item := it.buf[0]
	it.buf = it.buf[1:]
	it.delivered++

	return item, nil
}

// Close releases the iterator. Closing twice is harmless.
func (it *pagedIterator) Close() error {
	it.mu.Lock()
	defer it.mu.Unlock()

	it.closed = true
	it.buf = nil

	return nil
}
