package query

import (
	"fmt"

	"github.com/statecraft/go-statestore/codec"
	"github.com/statecraft/go-statestore/kv"
)

// Drain consumes the iterator to exhaustion and returns the decode
// outcome of every valued item, in delivery order. Items without a
// value payload are skipped. The iterator is closed exactly once on
// every path, including a failing Next; after a fetch error the fetch
// error is returned and the close error is discarded.
func Drain(it Iterator, c *codec.Codec) ([]codec.Result, error) {
	return drain(it, c, func(_ *Item, result codec.Result) codec.Result {
		return result
	})
}

// DrainKV consumes the iterator to exhaustion and returns each valued
// item's key with its decode outcome. Closing behaves as in Drain.
func DrainKV(it Iterator, c *codec.Codec) ([]kv.KV, error) {
	return drain(it, c, func(item *Item, result codec.Result) kv.KV {
		return kv.KV{Key: item.Key, Value: result}
	})
}

// DrainHistory consumes the iterator to exhaustion and returns each
// valued item as a key modification, copying its transaction id,
// delete marker, and timestamp seconds alongside the decode outcome.
// Closing behaves as in Drain.
func DrainHistory(it Iterator, c *codec.Codec) ([]kv.KeyModification, error) {
	return drain(it, c, func(item *Item, result codec.Result) kv.KeyModification {
		return kv.KeyModification{
			TxID:      item.TxID,
			Timestamp: item.Timestamp.GetSeconds(),
			IsDelete:  item.IsDelete,
			Value:     result,
		}
	})
}

// drain is the loop shared by the three variants: fetch until nil,
// skip payload-less items, decode the payload, derive a record. Close
// runs once via defer so a failing Next still releases the iterator.
func drain[T any](it Iterator, c *codec.Codec, derive func(*Item, codec.Result) T) (records []T, err error) {
	defer func() {
		if cerr := it.Close(); err == nil {
			err = cerr
		}
	}()

	for {
		item, fetchErr := it.Next()
		if fetchErr != nil {
			return nil, fmt.Errorf("failed to fetch next item: %w", fetchErr)
		}

		if item == nil {
			return records, nil
		}

		if len(item.Value) == 0 {
			continue
		}

		records = append(records, derive(item, c.Unmarshal(item.Value)))
	}
}
