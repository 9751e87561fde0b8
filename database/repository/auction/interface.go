package auctionRepo

import (
	"context"
	"time"

	"chairbid/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type AuctionRepository interface {
	// Create inserts an auction. It returns repository.ErrConflict when the slot
	// already has an open auction.
	Create(ctx context.Context, auction *models.Auction) error
	// GetLatestBySlot returns the most recent auction of a slot.
	GetLatestBySlot(ctx context.Context, slotID string) (*models.Auction, error)
	ListOpenEndingBefore(ctx context.Context, t time.Time) ([]models.Auction, error)
	// Close moves an open auction to closed; repository.ErrConflict if it is not open.
	Close(ctx context.Context, id string, at time.Time) error
}

type mongoAuctionRepo struct {
	coll *mongo.Collection
}

func NewMongoAuctionRepo(db *mongo.Database) AuctionRepository {
	return &mongoAuctionRepo{coll: db.Collection("auctions")}
}
