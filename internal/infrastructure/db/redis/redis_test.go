package redis

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// liveClient connects to TEST_REDIS_ADDR or skips the test.
func liveClient(t *testing.T) *IdempotencyStore {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client, err := Connect(context.Background(), Config{Addr: addr, Timeout: 2 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewIdempotencyStore(client)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "idem:post:abc", (&IdempotencyStore{}).key("post", "abc"))
	assert.Equal(t, "revoked:j1", (&TokenRevoker{}).key("j1"))
}

func TestTokenRevoker_ExpiredTokenIsNoop(t *testing.T) {
	// A nil client would panic if Revoke reached Redis.
	r := &TokenRevoker{now: func() time.Time { return time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC) }}
	require.NoError(t, r.Revoke(context.Background(), "j1", time.Date(2024, 6, 10, 11, 0, 0, 0, time.UTC)))
}

func TestIdempotencyStore_Live(t *testing.T) {
	store := liveClient(t)
	ctx := context.Background()
	key := uuid.NewString()

	id, claimed, err := store.Claim(ctx, "post", key)
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Empty(t, id)

	id, claimed, err = store.Claim(ctx, "post", key)
	require.NoError(t, err)
	assert.False(t, claimed, "second claim loses while the first is in flight")
	assert.Empty(t, id)

	require.NoError(t, store.Remember(ctx, "post", key, "p1"))
	id, claimed, err = store.Claim(ctx, "post", key)
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Equal(t, "p1", id)

	require.NoError(t, store.Release(ctx, "post", key))
	_, claimed, err = store.Claim(ctx, "post", key)
	require.NoError(t, err)
	assert.True(t, claimed, "released keys can be claimed again")
}

func TestIdempotencyStore_ConcurrentClaims_Live(t *testing.T) {
	store := liveClient(t)
	ctx := context.Background()
	key := uuid.NewString()

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, claimed, err := store.Claim(ctx, "post", key); err == nil && claimed {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}

func TestTokenRevoker_Live(t *testing.T) {
	store := liveClient(t)
	revoker := NewTokenRevoker(store.client)
	ctx := context.Background()
	jti := uuid.NewString()

	revoked, err := revoker.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, revoker.Revoke(ctx, jti, time.Now().Add(time.Minute)))
	revoked, err = revoker.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)
}
