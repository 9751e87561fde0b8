package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"chairbid/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBookingRepo) ListBySlot(ctx context.Context, slotID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"slotId": slotID})
}

func (r *mongoBookingRepo) ListForCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"customerId": customerID})
}

func (r *mongoBookingRepo) ListForProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"providerId": providerID})
}

func (r *mongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// EnsureIndexes creates the necessary indexes on the bookings collection.
func (r *mongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "slotId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("slot_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "customerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("customer_created_idx"),
		},
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("provider_created_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
