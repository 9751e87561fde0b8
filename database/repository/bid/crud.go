package bidRepo

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

func (r *mongoBidRepo) Create(ctx context.Context, bid *models.Bid) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	if bid.ID == "" {
		bid.ID = uuid.New().String()
	}
	bid.CreatedAt = now
	bid.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, bid); err != nil {
		return fmt.Errorf("error creating bid: %w", err)
	}
	return nil
}

func (r *mongoBidRepo) GetByID(ctx context.Context, id string) (*models.Bid, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var bid models.Bid
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&bid); err != nil {
		return nil, repository.Translate(err)
	}
	return &bid, nil
}

func (r *mongoBidRepo) TransitionStatus(ctx context.Context, id, from, to string) (*models.Bid, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var bid models.Bid
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&bid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("error updating bid %s status: %w", id, err)
	}
	return &bid, nil
}

func (r *mongoBidRepo) RejectPendingForSlot(ctx context.Context, slotID, keepID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"slotId": slotID,
		"status": models.BidStatusPending,
		"id":     bson.M{"$ne": keepID},
	}
	update := bson.M{"$set": bson.M{"status": models.BidStatusRejected, "updatedAt": time.Now().UTC()}}
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("error rejecting pending bids for slot %s: %w", slotID, err)
	}
	return res.ModifiedCount, nil
}
