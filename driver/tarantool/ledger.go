package tarantool

import (
	"context"
	"fmt"

	"github.com/tarantool/go-tarantool/v2"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/statecraft/go-statestore/query"
)

type getResponse struct {
	Found bool   `msgpack:"found"`
	Value []byte `msgpack:"value"`
}

type ackResponse struct {
	OK bool `msgpack:"ok"`
}

type rangeRequest struct {
	_msgpack struct{} `msgpack:",omitempty"`

	Start    string `msgpack:"start"`
	End      string `msgpack:"end"`
	PageSize int    `msgpack:"page_size"`
	After    string `msgpack:"after"`
}

type rangeItem struct {
	Key   string `msgpack:"key"`
	Value []byte `msgpack:"value"`
}

type rangeResponse struct {
	Items []rangeItem `msgpack:"items"`
	// After is the cursor for the next page, empty on the last one.
	After string `msgpack:"after"`
}

type historyRequest struct {
	_msgpack struct{} `msgpack:",omitempty"`

	Key      string `msgpack:"key"`
	PageSize int    `msgpack:"page_size"`
	After    string `msgpack:"after"`
}

type historyItem struct {
	TxID      string `msgpack:"tx_id"`
	Timestamp int64  `msgpack:"timestamp"`
	IsDelete  bool   `msgpack:"is_delete"`
	Value     []byte `msgpack:"value"`
}

type historyResponse struct {
	Items []historyItem `msgpack:"items"`
	After string        `msgpack:"after"`
}

// rangePage fetches one ledger.range page and converts it to iterator
// items.
func (d *Driver) rangePage(ctx context.Context, start, end string, pageSize int, after string) ([]*query.Item, string, error) {
	arg := rangeRequest{
		_msgpack: struct{}{},
		Start:    start,
		End:      end,
		PageSize: pageSize,
		After:    after,
	}

	req := tarantool.NewCallRequest(rangeProc).
		Args([]any{arg}).Context(ctx)

	var result []rangeResponse

	switch err := d.conn.Do(req).GetTyped(&result); {
	case err != nil:
		return nil, "", fmt.Errorf("failed to call %s: %w", rangeProc, err)
	case len(result) != 1:
		return nil, "", fmt.Errorf("%w: expected 1 response, got %d", ErrUnexpectedResponse, len(result))
	}

	items := make([]*query.Item, 0, len(result[0].Items))
	for _, item := range result[0].Items {
		items = append(items, &query.Item{
			Key:   item.Key,
			Value: item.Value,
		})
	}

	return items, result[0].After, nil
}

// historyPage fetches one ledger.history page and converts it to
// iterator items. Zero timestamps mean the server recorded none and
// come through as nil.
func (d *Driver) historyPage(ctx context.Context, key string, pageSize int, after string) ([]*query.Item, string, error) {
	arg := historyRequest{
		_msgpack: struct{}{},
		Key:      key,
		PageSize: pageSize,
		After:    after,
	}

	req := tarantool.NewCallRequest(historyProc).
		Args([]any{arg}).Context(ctx)

	var result []historyResponse

	switch err := d.conn.Do(req).GetTyped(&result); {
	case err != nil:
		return nil, "", fmt.Errorf("failed to call %s: %w", historyProc, err)
	case len(result) != 1:
		return nil, "", fmt.Errorf("%w: expected 1 response, got %d", ErrUnexpectedResponse, len(result))
	}

	items := make([]*query.Item, 0, len(result[0].Items))

	for _, item := range result[0].Items {
		var at *timestamppb.Timestamp
		if item.Timestamp > 0 {
			at = &timestamppb.Timestamp{Seconds: item.Timestamp}
		}

		items = append(items, &query.Item{
			Key:       key,
			Value:     item.Value,
			IsDelete:  item.IsDelete,
			TxID:      item.TxID,
			Timestamp: at,
		})
	}

	return items, result[0].After, nil
}
