// Package etcd provides an etcd implementation of the state driver
// interface. It enables using etcd as a distributed state backend,
// with range scans paged through limited reads and key history walked
// through the MVCC revision chain.
package etcd

import (
	"context"
	"fmt"

	etcd "go.etcd.io/etcd/client/v3"

	"github.com/statecraft/go-statestore/driver"
	"github.com/statecraft/go-statestore/query"
)

// defaultPageSize is the number of keys fetched per range request when
// the caller does not pick one.
const defaultPageSize = 100

// Client defines the minimal interface needed for etcd operations.
// This allows for easier testing and mock implementations;
// *etcd.Client satisfies it as is.
type Client interface {
	// Get retrieves keys from etcd.
	Get(ctx context.Context, key string, opts ...etcd.OpOption) (*etcd.GetResponse, error)
	// Put stores a key-value pair in etcd.
	Put(ctx context.Context, key, val string, opts ...etcd.OpOption) (*etcd.PutResponse, error)
	// Delete removes keys from etcd.
	Delete(ctx context.Context, key string, opts ...etcd.OpOption) (*etcd.DeleteResponse, error)
}

// Driver is an etcd implementation of the state driver interface.
// It uses etcd as the underlying key-value storage backend.
type Driver struct {
	client Client
}

var _ driver.Driver = &Driver{}

// New creates a new etcd driver instance. The client should be
// properly configured and connected to an etcd cluster; pass an
// *etcd.Client directly.
func New(client Client) *Driver {
	return &Driver{client: client}
}

// GetState returns the bytes stored under key, or nil when the key is
// absent.
func (d *Driver) GetState(ctx context.Context, key string) ([]byte, error) {
	resp, err := d.client.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get key: %w", err)
	}

	if len(resp.Kvs) == 0 {
		return nil, nil
	}

	return resp.Kvs[0].Value, nil
}

// PutState stores value under key.
func (d *Driver) PutState(ctx context.Context, key string, value []byte) error {
	if _, err := d.client.Put(ctx, key, string(value)); err != nil {
		return fmt.Errorf("failed to put key: %w", err)
	}

	return nil
}

// DeleteState removes key. Deleting an absent key is not an error.
func (d *Driver) DeleteState(ctx context.Context, key string) error {
	if _, err := d.client.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}

	return nil
}

// Range returns an iterator over keys in [start, end), fetched in
// pages of the given size. An empty start begins at the smallest key;
// an empty end extends to the end of the keyspace.
func (d *Driver) Range(ctx context.Context, start, end string, page driver.PageSpec) (query.Iterator, error) {
	pageSize := page.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	if start == "" {
		// "\x00" is the smallest key etcd accepts.
		start = "\x00"
	}

	return newRangeIterator(ctx, d.client, start, end, pageSize, page.Limit), nil
}

// History returns an iterator over the modifications of key, walked
// newest first through etcd's MVCC revision chain. Only the current
// incarnation of the key is covered: revisions before the latest
// delete and re-create are not reachable from the head version.
// Revisions dropped by compaction surface as fetch errors.
func (d *Driver) History(ctx context.Context, key string, page driver.PageSpec) (query.Iterator, error) {
	head, err := d.client.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get head revision: %w", err)
	}

	if len(head.Kvs) == 0 {
		return newHistoryIterator(ctx, d.client, key, 0, 0, page.Limit), nil
	}

	return newHistoryIterator(
		ctx,
		d.client,
		key,
		head.Kvs[0].ModRevision,
		head.Kvs[0].CreateRevision,
		page.Limit,
	), nil
}
