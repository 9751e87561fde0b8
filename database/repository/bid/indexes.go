package bidRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bids collection.
func (r *mongoBidRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "slotId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("slot_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "parentBidId", Value: 1}},
			Options: options.Index().SetName("parent_idx").SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "customerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("customer_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("provider_created_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create bid indexes: %w", err)
	}
	return nil
}
