package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestAppSessionLifecycle(t *testing.T) {
	mr, rdb := newRedis(t)
	s := NewAppSessionStore(rdb, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "sid-1", "user-1"))
	got, err := s.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.True(t, mr.Exists("app:user_sessions:user-1"))

	require.NoError(t, s.Delete(ctx, "sid-1"))
	_, err = s.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestAppSessionExpires(t *testing.T) {
	mr, rdb := newRedis(t)
	s := NewAppSessionStore(rdb, time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "sid-1", "user-1"))
	mr.FastForward(2 * time.Minute)
	_, err := s.Get(ctx, "sid-1")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestFlashPushPop(t *testing.T) {
	_, rdb := newRedis(t)
	f := NewFlashStore(rdb, time.Minute)
	ctx := context.Background()

	require.NoError(t, f.Push(ctx, "sid-1", Banner{Style: "success", Message: "one"}))
	require.NoError(t, f.Push(ctx, "sid-1", Banner{Style: "success", Message: "two"}))

	got, err := f.Pop(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, []Banner{{"success", "one"}, {"success", "two"}}, got)

	got, err = f.Pop(ctx, "sid-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}
