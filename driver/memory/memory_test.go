package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statecraft/go-statestore/driver"
	"github.com/statecraft/go-statestore/driver/memory"
	"github.com/statecraft/go-statestore/query"
)

func drainItems(t *testing.T, it query.Iterator) []*query.Item {
	t.Helper()

	var items []*query.Item

	for {
		item, err := it.Next()
		require.NoError(t, err)

		if item == nil {
			break
		}

		items = append(items, item)
	}

	require.NoError(t, it.Close())

	return items
}

func TestMemoryDriver_PutGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := memory.New()

	require.NoError(t, drv.PutState(ctx, "asset-1", []byte("one")))

	value, err := drv.GetState(ctx, "asset-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), value)

	require.NoError(t, drv.PutState(ctx, "asset-1", []byte("two")))

	value, err = drv.GetState(ctx, "asset-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), value, "put should overwrite the previous value")
}

func TestMemoryDriver_GetAbsent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := memory.New()

	value, err := drv.GetState(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestMemoryDriver_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := memory.New()

	require.NoError(t, drv.PutState(ctx, "asset-1", []byte("one")))
	require.NoError(t, drv.DeleteState(ctx, "asset-1"))

	value, err := drv.GetState(ctx, "asset-1")
	require.NoError(t, err)
	assert.Nil(t, value)

	require.NoError(t, drv.DeleteState(ctx, "never-existed"))
}

func TestMemoryDriver_Range(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := memory.New()

	require.NoError(t, drv.PutState(ctx, "b", []byte("2")))
	require.NoError(t, drv.PutState(ctx, "a", []byte("1")))
	require.NoError(t, drv.PutState(ctx, "c", []byte("3")))

	tests := []struct {
		name         string
		start        string
		end          string
		expectedKeys []string
	}{
		{
			name:         "open on both ends",
			start:        "",
			end:          "",
			expectedKeys: []string{"a", "b", "c"},
		},
		{
			name:         "bounded",
			start:        "a",
			end:          "c",
			expectedKeys: []string{"a", "b"},
		},
		{
			name:         "open end",
			start:        "b",
			end:          "",
			expectedKeys: []string{"b", "c"},
		},
		{
			name:         "open start",
			start:        "",
			end:          "b",
			expectedKeys: []string{"a"},
		},
		{
			name:         "empty window",
			start:        "x",
			end:          "z",
			expectedKeys: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			it, err := drv.Range(ctx, tt.start, tt.end, driver.PageSpec{})
			require.NoError(t, err)

			items := drainItems(t, it)

			keys := make([]string, 0, len(items))
			for _, item := range items {
				keys = append(keys, item.Key)
			}

			if tt.expectedKeys == nil {
				assert.Empty(t, keys)
			} else {
				assert.Equal(t, tt.expectedKeys, keys)
			}
		})
	}
}

func TestMemoryDriver_RangeLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := memory.New()

	require.NoError(t, drv.PutState(ctx, "a", []byte("1")))
	require.NoError(t, drv.PutState(ctx, "b", []byte("2")))
	require.NoError(t, drv.PutState(ctx, "c", []byte("3")))

	it, err := drv.Range(ctx, "", "", driver.PageSpec{PageSize: 1, Limit: 2})
	require.NoError(t, err)

	items := drainItems(t, it)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Key)
	assert.Equal(t, "b", items[1].Key)
}

func TestMemoryDriver_RangeIsSnapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := memory.New()

	require.NoError(t, drv.PutState(ctx, "a", []byte("1")))

	it, err := drv.Range(ctx, "", "", driver.PageSpec{})
	require.NoError(t, err)

	require.NoError(t, drv.PutState(ctx, "b", []byte("2")))

	items := drainItems(t, it)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].Key, "writes after the query should not appear")
}

func TestMemoryDriver_History(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := memory.New()

	require.NoError(t, drv.PutState(ctx, "asset-1", []byte("one")))
	require.NoError(t, drv.PutState(ctx, "asset-1", []byte("two")))
	require.NoError(t, drv.DeleteState(ctx, "asset-1"))

	it, err := drv.History(ctx, "asset-1", driver.PageSpec{})
	require.NoError(t, err)

	items := drainItems(t, it)
	require.Len(t, items, 3)

	assert.Equal(t, []byte("one"), items[0].Value)
	assert.Equal(t, "mem-1", items[0].TxID)
	assert.False(t, items[0].IsDelete)

	assert.Equal(t, []byte("two"), items[1].Value)
	assert.Equal(t, "mem-2", items[1].TxID)

	assert.True(t, items[2].IsDelete)
	assert.Nil(t, items[2].Value)
	assert.Equal(t, "mem-3", items[2].TxID)

	for _, item := range items {
		require.NotNil(t, item.Timestamp)
		assert.False(t, item.Timestamp.AsTime().IsZero())
	}
}

func TestMemoryDriver_HistoryAbsentKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := memory.New()

	it, err := drv.History(ctx, "missing", driver.PageSpec{})
	require.NoError(t, err)

	assert.Empty(t, drainItems(t, it))
}

func TestMemoryDriver_NextAfterClose(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := memory.New()

	require.NoError(t, drv.PutState(ctx, "a", []byte("1")))

	it, err := drv.Range(ctx, "", "", driver.PageSpec{})
	require.NoError(t, err)
	require.NoError(t, it.Close())

	_, err = it.Next()
	require.ErrorIs(t, err, driver.ErrIteratorClosed)
}

func TestMemoryDriver_NextAfterCancel(t *testing.T) {
	t.Parallel()

	drv := memory.New()

	require.NoError(t, drv.PutState(context.Background(), "a", []byte("1")))

	ctx, cancel := context.WithCancel(context.Background())

	it, err := drv.Range(ctx, "", "", driver.PageSpec{})
	require.NoError(t, err)

	cancel()

	_, err = it.Next()
	require.ErrorIs(t, err, context.Canceled)
	require.NoError(t, it.Close())
}
