package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocker(client, "test:lock:"), mr
}

func TestRedisLocker_LockUnlock(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "slot-1", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:lock:slot-1"), "lock key should be set")

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("test:lock:slot-1"), "lock key should be removed after unlock")
}

func TestRedisLocker_Contention(t *testing.T) {
	locker, _ := newTestLocker(t)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "slot-1", 5*time.Second)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, "slot-1", 5*time.Second)
	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))

	unlock2, err := locker.Lock(ctx, "slot-1", 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

func TestRedisLocker_UnlockDoesNotStealForeignLock(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "slot-1", 5*time.Second)
	require.NoError(t, err)

	// Simulate expiry and takeover by another holder.
	mr.Del("test:lock:slot-1")
	require.NoError(t, mr.Set("test:lock:slot-1", "someone-else"))

	require.NoError(t, unlock(ctx))
	got, err := mr.Get("test:lock:slot-1")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestGuardSlot_RunsUnlockedWhenRedisIsDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	client := redis.NewClient(&redis.Options{Addr: addr, MaxRetries: -1})
	defer client.Close()
	locker := NewRedisLocker(client, "test:lock:")

	ran := false
	err = GuardSlot(context.Background(), locker, "slot-1", time.Second, zap.NewNop(), func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestGuardSlot_TimesOutWhenHeld(t *testing.T) {
	locker, _ := newTestLocker(t)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "slot-1", 5*time.Second)
	require.NoError(t, err)
	defer unlock(ctx)

	err = GuardSlot(ctx, locker, "slot-1", 100*time.Millisecond, zap.NewNop(), func() error {
		t.Fatal("fn must not run while the lock is held elsewhere")
		return nil
	})
	assert.ErrorIs(t, err, ErrLockTimeout)
}

func TestGuardSlot_NilLocker(t *testing.T) {
	calls := 0
	err := GuardSlot(context.Background(), nil, "slot-1", time.Second, zap.NewNop(), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
