package draftstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "draft:abc:plan_new_week1", []byte(`{"name":"Strength"}`)))
	value, err := store.Get(ctx, "draft:abc:plan_new_week1")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Strength"}`, string(value))
	assert.Equal(t, 1, store.Len())

	require.NoError(t, store.Remove(ctx, "draft:abc:plan_new_week1"))
	_, err = store.Get(ctx, "draft:abc:plan_new_week1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreRemoveMissingIsNoop(t *testing.T) {
	store := NewMemoryStore()
	assert.NoError(t, store.Remove(context.Background(), "never-set"))
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	original := []byte("aaa")
	require.NoError(t, store.Set(ctx, "k", original))
	original[0] = 'z'

	stored, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "aaa", string(stored))

	// Mutating a returned value must not leak back either.
	stored[0] = 'z'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "aaa", string(again))
}
