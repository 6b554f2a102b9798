package session

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/wonderland-tickets/internal/model"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb), mr
}

func TestRedisStore_TTLFollowsAbsoluteExpiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	s := Session{
		ID:            "abc123",
		Identity:      model.Identity{UserID: 1, Username: "abc", Role: model.RoleGuest},
		Authenticated: true,
		ExpiresAt:     time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Create(ctx, s))
	assert.InDelta(t, time.Hour.Seconds(), mr.TTL("session:abc123").Seconds(), 5)

	got, err := store.Get(ctx, "abc123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s.Identity, got.Identity)
	assert.True(t, got.Authenticated)

	mr.FastForward(time.Hour + time.Second)
	got, err = store.Get(ctx, "abc123")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_CreateRejectsBadSessions(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	assert.Error(t, store.Create(ctx, Session{ExpiresAt: time.Now().Add(time.Hour)}))
	assert.Error(t, store.Create(ctx, Session{ID: "old", ExpiresAt: time.Now().Add(-time.Second)}))
}

func TestRedisStore_Delete(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, Session{ID: "x", Authenticated: true, ExpiresAt: time.Now().Add(time.Minute)}))
	require.NoError(t, store.Delete(ctx, "x"))
	assert.False(t, mr.Exists("session:x"))

	got, err := store.Get(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestManager_WithRedisStore(t *testing.T) {
	store, _ := newRedisStore(t)
	mgr := NewManager(store, "secret", time.Hour, false)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	_, err := mgr.Start(ctx, rec, model.Identity{Username: "Aptech", Role: model.RoleAdmin})
	require.NoError(t, err)

	s, err := mgr.Load(ctx, requestWithCookies(rec))
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.True(t, s.Identity.IsAdmin())
}
