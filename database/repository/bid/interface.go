package bidRepo

import (
	"context"

	"chairbid/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type BidRepository interface {
	Create(ctx context.Context, bid *models.Bid) error
	GetByID(ctx context.Context, id string) (*models.Bid, error)
	ListBySlot(ctx context.Context, slotID string) ([]models.Bid, error)
	ListByParticipant(ctx context.Context, userID string) ([]models.Bid, error)
	ListReplies(ctx context.Context, parentID string) ([]models.Bid, error)
	// TransitionStatus moves a bid between statuses and returns the updated
	// document. It returns repository.ErrConflict when the bid is not in the
	// expected status.
	TransitionStatus(ctx context.Context, id, from, to string) (*models.Bid, error)
	// RejectPendingForSlot rejects every pending bid on a slot except keepID.
	RejectPendingForSlot(ctx context.Context, slotID, keepID string) (int64, error)
}

type mongoBidRepo struct {
	coll *mongo.Collection
}

func NewMongoBidRepo(db *mongo.Database) BidRepository {
	return &mongoBidRepo{coll: db.Collection("bids")}
}
