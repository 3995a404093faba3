package statestore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	statestore "github.com/statecraft/go-statestore"
	"github.com/statecraft/go-statestore/driver/memory"
	"github.com/statecraft/go-statestore/marshaller"
)

type account struct {
	Owner   string `json:"owner" msgpack:"owner"`
	Balance int64  `json:"balance" msgpack:"balance"`
}

func TestTyped_PutGetRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := statestore.New(memory.New())
	accounts := statestore.NewTyped[account](store, nil)

	in := account{Owner: "alice", Balance: 100}

	require.NoError(t, accounts.Put(ctx, "acc-1", in))

	out, err := accounts.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestTyped_DefaultMarshallerIsJSON(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := statestore.New(memory.New())
	accounts := statestore.NewTyped[account](store, nil)

	require.NoError(t, accounts.Put(ctx, "acc-1", account{Owner: "alice", Balance: 100}))

	// The stored bytes are plain JSON, so the untyped value surface
	// reads them back as a parsed value.
	result, err := store.GetValue(ctx, "acc-1")
	require.NoError(t, err)

	parsed, ok := result.Parsed()
	require.True(t, ok)
	assert.NotNil(t, parsed)
}

func TestTyped_GetAbsent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := statestore.New(memory.New())
	accounts := statestore.NewTyped[account](store, nil)

	_, err := accounts.Get(ctx, "missing")
	require.ErrorIs(t, err, statestore.ErrNotFound)
}

func TestTyped_GetBrokenBytes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := memory.New()
	store := statestore.New(drv)
	accounts := statestore.NewTyped[account](store, nil)

	require.NoError(t, drv.PutState(ctx, "acc-1", []byte("{broken")))

	_, err := accounts.Get(ctx, "acc-1")
	require.Error(t, err)

	var umErr marshaller.UnmarshalError

	assert.ErrorAs(t, err, &umErr)
}

func TestTyped_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := statestore.New(memory.New())
	accounts := statestore.NewTyped[account](store, nil)

	require.NoError(t, accounts.Put(ctx, "acc-1", account{Owner: "alice"}))
	require.NoError(t, accounts.Delete(ctx, "acc-1"))

	_, err := accounts.Get(ctx, "acc-1")
	require.ErrorIs(t, err, statestore.ErrNotFound)
}

func TestTyped_List(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := memory.New()
	store := statestore.New(drv)
	accounts := statestore.NewTyped[account](store, nil)

	require.NoError(t, accounts.Put(ctx, "acc-2", account{Owner: "bob", Balance: 2}))
	require.NoError(t, accounts.Put(ctx, "acc-1", account{Owner: "alice", Balance: 1}))
	require.NoError(t, accounts.Put(ctx, "acc-3", account{Owner: "carol", Balance: 3}))

	// Payload-less keys are skipped, not surfaced as zero values.
	require.NoError(t, drv.PutState(ctx, "acc-0", nil))

	entries, err := accounts.List(ctx, "acc-", "acc-\xff")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "acc-1", entries[0].Key)
	assert.Equal(t, account{Owner: "alice", Balance: 1}, entries[0].Value)
	assert.Equal(t, "acc-2", entries[1].Key)
	assert.Equal(t, "acc-3", entries[2].Key)
}

func TestTyped_ListLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := statestore.New(memory.New())
	accounts := statestore.NewTyped[account](store, nil)

	require.NoError(t, accounts.Put(ctx, "acc-1", account{Owner: "alice"}))
	require.NoError(t, accounts.Put(ctx, "acc-2", account{Owner: "bob"}))

	entries, err := accounts.List(ctx, "", "",
		statestore.WithListLimit(1),
		statestore.WithListPageSize(1))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "acc-1", entries[0].Key)
}

func TestTyped_ListBrokenEntryFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	drv := memory.New()
	store := statestore.New(drv)
	accounts := statestore.NewTyped[account](store, nil)

	require.NoError(t, accounts.Put(ctx, "acc-1", account{Owner: "alice"}))
	require.NoError(t, drv.PutState(ctx, "acc-2", []byte("{broken")))

	_, err := accounts.List(ctx, "", "")
	require.Error(t, err)

	var umErr marshaller.UnmarshalError

	assert.ErrorAs(t, err, &umErr)
}

func TestTyped_MsgpackMarshaller(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := statestore.New(memory.New())
	accounts := statestore.NewTyped[account](store, marshaller.NewTypedMsgpackMarshaller[account]())

	in := account{Owner: "alice", Balance: 100}

	require.NoError(t, accounts.Put(ctx, "acc-1", in))

	out, err := accounts.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, in, out)

	entries, err := accounts.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, in, entries[0].Value)
}
