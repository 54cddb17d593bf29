package draftstore

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStoreGet(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client)

	mock.ExpectGet("draft:abc:plan_new_week1").SetVal(`{"name":"Strength"}`)
	value, err := store.Get(ctx, "draft:abc:plan_new_week1")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Strength"}`, string(value))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreGetMissingMapsToNotFound(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client)

	mock.ExpectGet("draft:abc:plan_new_week1").RedisNil()
	_, err := store.Get(ctx, "draft:abc:plan_new_week1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreSetUsesTTL(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client)

	payload := []byte(`{"name":"Strength"}`)
	mock.ExpectSet("draft:abc:plan_new_week1", payload, defaultTTL).SetVal("OK")
	require.NoError(t, store.Set(ctx, "draft:abc:plan_new_week1", payload))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreRemove(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client)

	mock.ExpectDel("draft:abc:plan_new_week1").SetVal(1)
	require.NoError(t, store.Remove(ctx, "draft:abc:plan_new_week1"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
