package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrLockTimeout is returned when a lock could not be acquired before the context ended.
var ErrLockTimeout = errors.New("timed out waiting for lock")

// Unlocker releases a lock acquired by Locker.Lock.
type Unlocker func(ctx context.Context) error

// Locker serializes work on a named resource across processes.
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (Unlocker, error)
}

// unlockScript deletes the key only when it still holds our token.
var unlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker implements Locker with SET NX PX and a compare-and-delete release.
type RedisLocker struct {
	client *redis.Client
	prefix string
	retry  time.Duration
}

func NewRedisLocker(client *redis.Client, prefix string) *RedisLocker {
	return &RedisLocker{client: client, prefix: prefix, retry: 50 * time.Millisecond}
}

// Lock blocks until the lock is acquired or ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, key string, ttl time.Duration) (Unlocker, error) {
	fullKey := l.prefix + key
	token := uuid.New().String()

	contended := false
	for {
		ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
		if err != nil {
			// A deadline hit while someone else holds the lock is a timeout,
			// anything else is a backend failure.
			if contended && ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrLockTimeout, key, ctx.Err())
			}
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}
		contended = true

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %w", ErrLockTimeout, key, ctx.Err())
		case <-time.After(l.retry):
		}
	}

	return func(ctx context.Context) error {
		if err := unlockScript.Run(ctx, l.client, []string{fullKey}, token).Err(); err != nil && err != redis.Nil {
			return fmt.Errorf("release lock %s: %w", key, err)
		}
		return nil
	}, nil
}

// GuardSlot runs fn while holding the lock of a slot. Without a locker, or when
// the lock backend is unreachable, fn runs unlocked and a warning is logged.
// Waiting longer than ttl for a held lock yields ErrLockTimeout.
func GuardSlot(ctx context.Context, locker Locker, slotID string, ttl time.Duration, logger *zap.Logger, fn func() error) error {
	if locker == nil {
		return fn()
	}

	waitCtx, cancel := context.WithTimeout(ctx, ttl)
	unlock, err := locker.Lock(waitCtx, slotID, ttl)
	cancel()
	switch {
	case errors.Is(err, ErrLockTimeout):
		return err
	case err != nil:
		logger.Warn("Slot lock unavailable, continuing unlocked", zap.String("slot_id", slotID), zap.Error(err))
		return fn()
	}

	defer func() {
		if err := unlock(context.Background()); err != nil {
			logger.Warn("Failed to release slot lock", zap.String("slot_id", slotID), zap.Error(err))
		}
	}()
	return fn()
}
