package events

import (
	"context"
	"encoding/json"
	"fmt"

	"chairbid/models"
	"chairbid/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Publisher broadcasts auction events to live viewers.
type Publisher interface {
	Publish(ctx context.Context, event models.AuctionEvent) error
}

// Subscriber streams the events of one auction slot.
type Subscriber interface {
	Subscribe(ctx context.Context, slotID string) (<-chan models.AuctionEvent, func() error, error)
}

// RedisBus publishes auction events on Redis pub/sub, one channel per slot.
type RedisBus struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisBus(client *redis.Client, logger *zap.Logger) *RedisBus {
	return &RedisBus{client: client, logger: logger}
}

func channel(slotID string) string {
	return utils.AuctionChannelPrefix + slotID
}

func (b *RedisBus) Publish(ctx context.Context, event models.AuctionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal auction event: %w", err)
	}
	if err := b.client.Publish(ctx, channel(event.SlotID), payload).Err(); err != nil {
		return fmt.Errorf("publish auction event: %w", err)
	}
	return nil
}

// Subscribe returns a channel of decoded events. The channel is closed when ctx
// ends or the returned close function is called.
func (b *RedisBus) Subscribe(ctx context.Context, slotID string) (<-chan models.AuctionEvent, func() error, error) {
	sub := b.client.Subscribe(ctx, channel(slotID))
	// Wait for the subscription confirmation so no event published right after is lost.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("subscribe to slot %s: %w", slotID, err)
	}

	out := make(chan models.AuctionEvent)
	go func() {
		defer close(out)
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev models.AuctionEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					b.logger.Warn("Dropping malformed auction event", zap.String("channel", msg.Channel), zap.Error(err))
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, sub.Close, nil
}
