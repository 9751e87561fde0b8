// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"chairbid/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	// CacheClient is the generic cache client (tenants, profiles, auction events).
	CacheClient *redis.Client
	// LockClient is the dedicated client for slot locks.
	LockClient *redis.Client
)

func newClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

// InitRedis creates both Redis clients. An unreachable server is logged but not
// fatal: caches degrade to misses and slot locks are skipped.
func InitRedis() {
	CacheClient = newClient(config.AppConfig.RedisCacheDB)
	LockClient = newClient(config.AppConfig.RedisLockDB)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for name, c := range map[string]*redis.Client{"cache": CacheClient, "lock": LockClient} {
		if err := c.Ping(ctx).Err(); err != nil {
			GetLogger().Warn("Redis not reachable", zap.String("client", name), zap.Error(err))
		}
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitRedis()
	}
	return CacheClient
}

// GetLockClient returns the Redis client used for slot locks.
func GetLockClient() *redis.Client {
	if LockClient == nil {
		InitRedis()
	}
	return LockClient
}

// CloseRedis closes both clients.
func CloseRedis() {
	for _, c := range []*redis.Client{CacheClient, LockClient} {
		if c != nil {
			_ = c.Close()
		}
	}
}
