package statetest

import (
	"bytes"
	"sync"
	"testing"

	"github.com/tarantool/go-iproto"
	"github.com/tarantool/go-tarantool/v2"
	"github.com/vmihailenco/msgpack/v5"
)

type doerStep struct {
	body []byte
	err  error
}

// Doer is a scripted implementation of tarantool.Doer. Each Do call
// consumes the next scripted step and resolves the returned future
// with it, recording the request for later inspection.
type Doer struct {
	mu sync.Mutex
	// Requests is a slice of received requests. It could be used to
	// compare incoming requests with expected.
	Requests []tarantool.Request

	steps []doerStep
	tb    testing.TB
}

var _ tarantool.Doer = &Doer{}

// NewDoer creates a Doer replaying the given steps in order. Each step
// is either a []byte call-response body, typically built with
// CallBody, or an error to fail the future with.
func NewDoer(tb testing.TB, steps ...any) *Doer {
	tb.Helper()

	doer := &Doer{tb: tb}

	for _, step := range steps {
		switch step := step.(type) {
		case []byte:
			doer.steps = append(doer.steps, doerStep{body: step, err: nil})
		case error:
			doer.steps = append(doer.steps, doerStep{body: nil, err: step})
		default:
			tb.Fatalf("unsupported step type: %T", step)
		}
	}

	return doer
}

// Do records the request and returns a future resolved with the next
// scripted step.
func (d *Doer) Do(req tarantool.Request) *tarantool.Future {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.Requests = append(d.Requests, req)

	if len(d.steps) == 0 {
		d.tb.Fatalf("no scripted response left for request %T", req)
	}

	step := d.steps[0]
	d.steps = d.steps[1:]

	fut := tarantool.NewFuture(req)

	if step.err != nil {
		fut.SetError(step.err)
	} else {
		_ = fut.SetResponse(tarantool.Header{}, bytes.NewReader(step.body))
	}

	return fut
}

// CallBody encodes payload as the body of a successful call response,
// the msgpack map a Tarantool server frames return values in.
func CallBody(tb testing.TB, payload any) []byte {
	tb.Helper()

	var buf bytes.Buffer

	encoder := msgpack.NewEncoder(&buf)

	if err := encoder.EncodeMapLen(1); err != nil {
		tb.Fatalf("failed to encode body map length: %s", err)
	}

	if err := encoder.EncodeUint(uint64(iproto.IPROTO_DATA)); err != nil {
		tb.Fatalf("failed to encode data key: %s", err)
	}

	if err := encoder.Encode(payload); err != nil {
		tb.Fatalf("failed to encode payload: %s", err)
	}

	return buf.Bytes()
}
