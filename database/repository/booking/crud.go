package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chairbid/database/repository"
	"chairbid/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new booking document.
func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its ID.
func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		return nil, repository.Translate(err)
	}
	return &booking, nil
}

func (r *mongoBookingRepo) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.BookingStatusConfirmed}
	update := bson.M{"$set": bson.M{"status": models.BookingStatusCancelled, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("error cancelling booking %s: %w", id, err)
	}
	return &booking, nil
}

func (r *mongoBookingRepo) CancelOthersForSlot(ctx context.Context, slotID, keepID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"slotId": slotID,
		"status": models.BookingStatusConfirmed,
		"id":     bson.M{"$ne": keepID},
	}
	update := bson.M{"$set": bson.M{"status": models.BookingStatusCancelled, "updatedAt": time.Now().UTC()}}
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("error cancelling bookings for slot %s: %w", slotID, err)
	}
	return res.ModifiedCount, nil
}

func (r *mongoBookingRepo) SetPaymentIntent(ctx context.Context, id, intentID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"paymentIntentId": intentID, "updatedAt": time.Now().UTC()}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("error updating booking %s: %w", id, err)
	}
	return nil
}
