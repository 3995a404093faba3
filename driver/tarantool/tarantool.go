// Package tarantool provides a Tarantool implementation of the state
// driver interface. State lives in a ledger space managed by
// server-side stored procedures; the driver calls them over the
// binary protocol and decodes their msgpack responses.
package tarantool

import (
	"context"
	"errors"
	"fmt"

	"github.com/tarantool/go-tarantool/v2"

	"github.com/statecraft/go-statestore/driver"
	"github.com/statecraft/go-statestore/query"
)

// Server-side procedures the driver calls. ledger.range and
// ledger.history return their items oldest first together with an
// opaque cursor for the next page.
const (
	getProc     = "ledger.get"
	putProc     = "ledger.put"
	deleteProc  = "ledger.delete"
	rangeProc   = "ledger.range"
	historyProc = "ledger.history"
)

// defaultPageSize is the number of items requested per proc call when
// the caller does not pick one.
const defaultPageSize = 100

var (
	// ErrUnexpectedResponse is returned when the response from
	// tarantool has unexpected format.
	ErrUnexpectedResponse = errors.New("unexpected response from tarantool")
)

// Driver is a Tarantool implementation of the state driver interface.
// It issues calls through a tarantool.Doer; tarantool.Connection and
// pool adapters implement that interface.
type Driver struct {
	conn tarantool.Doer
}

var _ driver.Driver = &Driver{}

// New creates a new Tarantool driver instance on top of an
// established connection.
func New(conn tarantool.Doer) *Driver {
	return &Driver{conn: conn}
}

// GetState returns the bytes stored under key, or nil when the ledger
// space has no tuple for it.
func (d *Driver) GetState(ctx context.Context, key string) ([]byte, error) {
	req := tarantool.NewCallRequest(getProc).
		Args([]any{key}).Context(ctx)

	var result []getResponse

	switch err := d.conn.Do(req).GetTyped(&result); {
	case err != nil:
		return nil, fmt.Errorf("failed to call %s: %w", getProc, err)
	case len(result) != 1:
		return nil, fmt.Errorf("%w: expected 1 response, got %d", ErrUnexpectedResponse, len(result))
	}

	if !result[0].Found {
		return nil, nil
	}

	return result[0].Value, nil
}

// PutState stores value under key.
func (d *Driver) PutState(ctx context.Context, key string, value []byte) error {
	req := tarantool.NewCallRequest(putProc).
		Args([]any{key, value}).Context(ctx)

	return d.await(req, putProc)
}

// DeleteState removes key. Deleting an absent key is not an error.
func (d *Driver) DeleteState(ctx context.Context, key string) error {
	req := tarantool.NewCallRequest(deleteProc).
		Args([]any{key}).Context(ctx)

	return d.await(req, deleteProc)
}

// await runs a mutating call and checks its acknowledgement.
func (d *Driver) await(req tarantool.Request, proc string) error {
	var result []ackResponse

	switch err := d.conn.Do(req).GetTyped(&result); {
	case err != nil:
		return fmt.Errorf("failed to call %s: %w", proc, err)
	case len(result) != 1:
		return fmt.Errorf("%w: expected 1 response, got %d", ErrUnexpectedResponse, len(result))
	}

	return nil
}

// Range returns an iterator over keys in [start, end), paged through
// ledger.range with the cursor it hands back.
func (d *Driver) Range(ctx context.Context, start, end string, page driver.PageSpec) (query.Iterator, error) {
	pageSize := page.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	fetch := func(after string) ([]*query.Item, string, error) {
		return d.rangePage(ctx, start, end, pageSize, after)
	}

	return newPagedIterator(fetch, page.Limit), nil
}

// History returns an iterator over the modifications of key, oldest
// first, paged through ledger.history with the cursor it hands back.
func (d *Driver) History(ctx context.Context, key string, page driver.PageSpec) (query.Iterator, error) {
	pageSize := page.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	fetch := func(after string) ([]*query.Item, string, error) {
		return d.historyPage(ctx, key, pageSize, after)
	}

	return newPagedIterator(fetch, page.Limit), nil
}
