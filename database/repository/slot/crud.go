// File: database/repository/slot/crud.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"chairbid/database/repository"
	"chairbid/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoSlotRepo) CreateMany(ctx context.Context, slots []models.Slot) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	ids := make([]string, len(slots))
	docs := make([]interface{}, len(slots))
	for i := range slots {
		slot := slots[i]
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		if slot.Status == "" {
			slot.Status = models.SlotStatusAvailable
		}
		slot.CreatedAt = now
		slot.UpdatedAt = now
		ids[i] = slot.ID
		docs[i] = slot
	}

	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, fmt.Errorf("error creating slots: %w", err)
	}
	return ids, nil
}

func (r *mongoSlotRepo) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.Slot
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&slot); err != nil {
		return nil, repository.Translate(err)
	}
	return &slot, nil
}

func (r *mongoSlotRepo) TransitionStatus(ctx context.Context, id, from, to string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating slot %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrConflict
	}
	return nil
}

func (r *mongoSlotRepo) SetAuction(ctx context.Context, id string, minPrice decimal.Decimal) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"isAuction": true,
		"minPrice":  minPrice,
		"updatedAt": time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error enabling auction on slot %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
