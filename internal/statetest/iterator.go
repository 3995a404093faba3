// Package statetest provides hand-written fakes for exercising query
// drains and drivers in tests: a scripted iterator and a scripted
// Tarantool doer.
package statetest

import (
	"sync"
	"testing"

	"github.com/statecraft/go-statestore/query"
)

type iteratorStep struct {
	item *query.Item
	err  error
}

// Iterator is a scripted implementation of query.Iterator. It replays
// the steps given at construction and reports exhaustion once they run
// out.
type Iterator struct {
	mu sync.Mutex
	// CloseErr is returned by every Close call.
	CloseErr error

	steps      []iteratorStep
	closeCount int
}

var _ query.Iterator = &Iterator{}

// NewIterator creates an Iterator replaying the given steps in order.
// Each step is either a *query.Item to deliver or an error to fail
// with.
func NewIterator(tb testing.TB, steps ...any) *Iterator {
	tb.Helper()

	it := &Iterator{}

	for _, step := range steps {
		switch step := step.(type) {
		case *query.Item:
			it.steps = append(it.steps, iteratorStep{item: step, err: nil})
		case error:
			it.steps = append(it.steps, iteratorStep{item: nil, err: step})
		default:
			tb.Fatalf("unsupported step type: %T", step)
		}
	}

	return it
}

// Next replays the following scripted step, or reports exhaustion when
// the script has run out.
func (it *Iterator) Next() (*query.Item, error) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if len(it.steps) == 0 {
		return nil, nil
	}

	step := it.steps[0]
	it.steps = it.steps[1:]

	return step.item, step.err
}

// Close records the call and returns CloseErr.
func (it *Iterator) Close() error {
	it.mu.Lock()
	defer it.mu.Unlock()

	it.closeCount++

	return it.CloseErr
}

// Closes reports how many times Close has been called.
func (it *Iterator) Closes() int {
	it.mu.Lock()
	defer it.mu.Unlock()

	return it.closeCount
}
