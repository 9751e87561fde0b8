package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func TestStartHealthMonitor(t *testing.T) {
	mr := miniredis.RunT(t)
	up := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	down := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	t.Cleanup(func() {
		_ = up.Close()
		_ = down.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartHealthMonitor(ctx, []*redis.Client{up, down}, nil)

	assert.Eventually(t, func() bool {
		return !GetHealthStatus().CheckedAt.IsZero()
	}, 2*time.Second, 10*time.Millisecond)

	status := GetHealthStatus()
	assert.True(t, status.Mongo, "no mongo client counts as healthy")
	assert.Equal(t, []bool{true, false}, status.Redis)
}
