package bidRepo

import (
	"context"
	"fmt"
	"time"

	"chairbid/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBidRepo) ListBySlot(ctx context.Context, slotID string) ([]models.Bid, error) {
	return r.find(ctx, bson.M{"slotId": slotID})
}

// ListByParticipant returns the bids a user takes part in, as customer or provider.
func (r *mongoBidRepo) ListByParticipant(ctx context.Context, userID string) ([]models.Bid, error) {
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"customerId": userID},
		bson.M{"providerId": userID},
	}})
}

func (r *mongoBidRepo) ListReplies(ctx context.Context, parentID string) ([]models.Bid, error) {
	return r.find(ctx, bson.M{"parentBidId": parentID})
}

func (r *mongoBidRepo) find(ctx context.Context, filter bson.M) ([]models.Bid, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error fetching bids: %w", err)
	}
	defer cursor.Close(ctx)

	bids := []models.Bid{}
	for cursor.Next(ctx) {
		var b models.Bid
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding bid: %w", err)
		}
		bids = append(bids, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bids, nil
}
