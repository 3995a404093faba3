package statetest

import (
	"context"
	"sync"
	"testing"

	etcd "go.etcd.io/etcd/client/v3"

	etcddriver "github.com/statecraft/go-statestore/driver/etcd"
)

// EtcdGet is one recorded Get call. Op carries the call's options
// rebuilt into an etcd.Op so tests can inspect the range end and
// revision.
type EtcdGet struct {
	Key string
	Op  etcd.Op
}

// EtcdPut is one recorded Put call.
type EtcdPut struct {
	Key   string
	Value string
}

// EtcdClient is a scripted implementation of the etcd driver's Client
// interface. Get calls consume scripted steps; Put and Delete calls
// are recorded and succeed unless an error is injected.
type EtcdClient struct {
	mu sync.Mutex
	// PutErr fails every Put call when set.
	PutErr error
	// DeleteErr fails every Delete call when set.
	DeleteErr error
	// Gets records every Get call in order.
	Gets []EtcdGet
	// Puts records every Put call in order.
	Puts []EtcdPut
	// Deletes records the key of every Delete call in order.
	Deletes []string

	getSteps []any
	tb       testing.TB
}

var _ etcddriver.Client = &EtcdClient{}

// NewEtcdClient creates an EtcdClient replaying the given Get steps in
// order. Each step is either an *etcd.GetResponse or an error.
func NewEtcdClient(tb testing.TB, getSteps ...any) *EtcdClient {
	tb.Helper()

	for _, step := range getSteps {
		switch step.(type) {
		case *etcd.GetResponse, error:
		default:
			tb.Fatalf("unsupported step type: %T", step)
		}
	}

	return &EtcdClient{tb: tb, getSteps: getSteps}
}

// Get records the call and replays the next scripted step.
func (c *EtcdClient) Get(_ context.Context, key string, opts ...etcd.OpOption) (*etcd.GetResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Gets = append(c.Gets, EtcdGet{Key: key, Op: etcd.OpGet(key, opts...)})

	if len(c.getSteps) == 0 {
		c.tb.Fatalf("no scripted get response left for key %q", key)
	}

	step := c.getSteps[0]
	c.getSteps = c.getSteps[1:]

	switch step := step.(type) {
	case *etcd.GetResponse:
		return step, nil
	case error:
		return nil, step
	default:
		c.tb.Fatalf("unsupported step type: %T", step)

		return nil, nil
	}
}

// Put records the call and returns PutErr.
func (c *EtcdClient) Put(_ context.Context, key, val string, _ ...etcd.OpOption) (*etcd.PutResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Puts = append(c.Puts, EtcdPut{Key: key, Value: val})

	if c.PutErr != nil {
		return nil, c.PutErr
	}

	return &etcd.PutResponse{}, nil
}

// Delete records the call and returns DeleteErr.
func (c *EtcdClient) Delete(_ context.Context, key string, _ ...etcd.OpOption) (*etcd.DeleteResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Deletes = append(c.Deletes, key)

	if c.DeleteErr != nil {
		return nil, c.DeleteErr
	}

	return &etcd.DeleteResponse{}, nil
}
