// File: database/repository/slot/queries.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"chairbid/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// List returns slots matching the filter ordered by start time.
func (r *mongoSlotRepo) List(ctx context.Context, f models.SlotFilter) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, buildFilter(f), options.Find().SetSort(bson.D{{Key: "startsAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing slots: %w", err)
	}
	defer cursor.Close(ctx)

	slots := []models.Slot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding slots: %w", err)
	}
	return slots, nil
}

func buildFilter(f models.SlotFilter) bson.M {
	filter := bson.M{}
	if f.TenantID != "" {
		filter["tenantId"] = f.TenantID
	}
	if f.ProviderID != "" {
		filter["providerId"] = f.ProviderID
	}
	if f.ServiceID != "" {
		filter["serviceId"] = f.ServiceID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.AuctionOnly {
		filter["isAuction"] = true
	}
	window := bson.M{}
	if !f.From.IsZero() {
		window["$gte"] = f.From
	}
	if !f.To.IsZero() {
		window["$lt"] = f.To
	}
	if len(window) > 0 {
		filter["startsAt"] = window
	}
	return filter
}
