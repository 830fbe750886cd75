// Package redis_test provides unit tests for the Redis store.
package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentdesk/console-service/internal/core/kv"
	rediskv "github.com/agentdesk/console-service/internal/infrastructure/kv/redis"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, kv.Store) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	store, err := rediskv.NewStore(rediskv.Config{
		Host:     mr.Host(),
		Port:     mr.Port(),
		Password: "",
		DB:       0,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
		mr.Close()
	})

	return mr, store
}

func TestNewStore_Success(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	store, err := rediskv.NewStore(rediskv.Config{
		Host: mr.Host(),
		Port: mr.Port(),
	})

	assert.NoError(t, err)
	assert.NotNil(t, store)

	store.Close()
}

func TestNewStore_ConnectionRefused(t *testing.T) {
	store, err := rediskv.NewStore(rediskv.Config{
		Host: "localhost",
		Port: "1",
	})

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestStore_SetAndGet(t *testing.T) {
	_, store := setupMiniredis(t)
	ctx := context.Background()

	err := store.Set(ctx, kv.KeyToken, []byte("tok-123"))
	assert.NoError(t, err)

	result, err := store.Get(ctx, kv.KeyToken)
	assert.NoError(t, err)
	assert.Equal(t, []byte("tok-123"), result)
}

func TestStore_GetMissingKey(t *testing.T) {
	_, store := setupMiniredis(t)

	result, err := store.Get(context.Background(), "console:missing")

	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestStore_SetOverwrites(t *testing.T) {
	_, store := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, kv.KeyLanguage, []byte("en")))
	require.NoError(t, store.Set(ctx, kv.KeyLanguage, []byte("fr")))

	result, err := store.Get(ctx, kv.KeyLanguage)
	assert.NoError(t, err)
	assert.Equal(t, []byte("fr"), result)
}

func TestStore_EntriesDoNotExpire(t *testing.T) {
	mr, store := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, kv.KeyToken, []byte("tok-123")))

	// Entries persist until explicitly removed
	mr.FastForward(24 * time.Hour)
	result, err := store.Get(ctx, kv.KeyToken)
	assert.NoError(t, err)
	assert.Equal(t, []byte("tok-123"), result)
}

func TestStore_Delete(t *testing.T) {
	_, store := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, kv.KeyUser, []byte(`{"username":"agent1"}`)))

	deleted, err := store.Delete(ctx, kv.KeyUser)
	assert.NoError(t, err)
	assert.True(t, deleted)

	result, err := store.Get(ctx, kv.KeyUser)
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestStore_DeleteMissingKey(t *testing.T) {
	_, store := setupMiniredis(t)

	deleted, err := store.Delete(context.Background(), "console:missing")

	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestStore_Ping(t *testing.T) {
	mr, store := setupMiniredis(t)

	assert.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}
