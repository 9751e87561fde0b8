// FILE: database/repository/slot/indexes.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the slots collection.
func (r *mongoSlotRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Tenant listing by time (primary query pattern)
		{
			Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "startsAt", Value: 1}},
			Options: options.Index().SetName("tenant_starts_idx"),
		},
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "startsAt", Value: 1}},
			Options: options.Index().SetName("provider_starts_idx"),
		},
		{
			Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "isAuction", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("tenant_auction_status_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create slot indexes: %w", err)
	}
	return nil
}
