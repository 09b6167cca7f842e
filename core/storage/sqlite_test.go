package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewSQLiteKV(":memory:")
	require.NoError(t, kv.Open(ctx))
	defer kv.Close(ctx)

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Put(ctx, "a", []byte("1")))
	value, ok, err := kv.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("1"), value)

	require.NoError(t, kv.Put(ctx, "a", []byte("2")))
	value, _, err = kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), value, "Put on an existing key should overwrite")

	require.NoError(t, kv.Delete(ctx, "a"))
	_, ok, err = kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteKVEachStopsEarly(t *testing.T) {
	ctx := context.Background()
	kv := NewSQLiteKV(":memory:")
	require.NoError(t, kv.Open(ctx))
	defer kv.Close(ctx)

	require.NoError(t, kv.Put(ctx, "a", []byte("1")))
	require.NoError(t, kv.Put(ctx, "b", []byte("2")))
	require.NoError(t, kv.Put(ctx, "c", []byte("3")))

	seen := 0
	err := kv.Each(ctx, func(key string, value []byte) bool {
		seen++
		return seen < 2
	})
	require.NoError(t, err)
	assert.Equal(t, 2, seen)
}

func TestSQLiteKVUnopenedReturnsErrUnsupported(t *testing.T) {
	ctx := context.Background()
	kv := NewSQLiteKV(":memory:")

	_, _, err := kv.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.ErrorIs(t, kv.Put(ctx, "a", nil), ErrUnsupported)
	assert.ErrorIs(t, kv.Delete(ctx, "a"), ErrUnsupported)
}
