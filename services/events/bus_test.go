package events

import (
	"context"
	"testing"
	"time"

	"chairbid/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisBus_PublishSubscribe(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	bus := NewRedisBus(client, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	events, closeSub, err := bus.Subscribe(ctx, "slot-1")
	require.NoError(t, err)
	defer closeSub()

	require.NoError(t, bus.Publish(ctx, models.AuctionEvent{Type: "bid_placed", SlotID: "slot-1", BidID: "b1"}))
	// Events for other slots are not delivered.
	require.NoError(t, bus.Publish(ctx, models.AuctionEvent{Type: "bid_placed", SlotID: "slot-2", BidID: "b2"}))

	select {
	case ev := <-events:
		assert.Equal(t, "b1", ev.BidID)
		assert.Equal(t, "bid_placed", ev.Type)
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}
