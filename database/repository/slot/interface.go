// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"

	"chairbid/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/mongo"
)

type SlotRepository interface {
	CreateMany(ctx context.Context, slots []models.Slot) ([]string, error)
	GetByID(ctx context.Context, id string) (*models.Slot, error)
	List(ctx context.Context, filter models.SlotFilter) ([]models.Slot, error)
	// TransitionStatus moves a slot from one status to another. It returns
	// repository.ErrConflict when the slot is not in the expected status.
	TransitionStatus(ctx context.Context, id, from, to string) error
	SetAuction(ctx context.Context, id string, minPrice decimal.Decimal) error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo(db *mongo.Database) SlotRepository {
	return &mongoSlotRepo{coll: db.Collection("slots")}
}
