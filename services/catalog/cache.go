package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// cached reads key into dst. A miss or an unreachable cache reports false.
func (s *DefaultCatalogService) cached(ctx context.Context, key string, dst any) bool {
	if s.Cache == nil {
		return false
	}
	raw, err := s.Cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.Logger.Debug("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.Logger.Warn("Dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		_ = s.Cache.Del(ctx, key).Err()
		return false
	}
	return true
}

func (s *DefaultCatalogService) store(ctx context.Context, key string, v any, ttl time.Duration) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, raw, ttl).Err(); err != nil {
		s.Logger.Debug("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *DefaultCatalogService) evict(ctx context.Context, key string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, key).Err(); err != nil {
		s.Logger.Warn("Cache eviction failed", zap.String("key", key), zap.Error(err))
	}
}
