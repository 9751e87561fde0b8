package auctionRepo

import (
	"context"
	"fmt"
	"time"

	"chairbid/database/repository"
	"chairbid/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoAuctionRepo) Create(ctx context.Context, auction *models.Auction) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if auction.ID == "" {
		auction.ID = uuid.New().String()
	}
	auction.CreatedAt = time.Now().UTC()
	if auction.Status == "" {
		auction.Status = models.AuctionStatusOpen
	}

	if _, err := r.coll.InsertOne(ctx, auction); err != nil {
		if repository.IsDuplicateKey(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("error creating auction: %w", err)
	}
	return nil
}

func (r *mongoAuctionRepo) GetLatestBySlot(ctx context.Context, slotID string) (*models.Auction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var auction models.Auction
	if err := r.coll.FindOne(ctx, bson.M{"slotId": slotID}, opts).Decode(&auction); err != nil {
		return nil, repository.Translate(err)
	}
	return &auction, nil
}

func (r *mongoAuctionRepo) ListOpenEndingBefore(ctx context.Context, t time.Time) ([]models.Auction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"status": models.AuctionStatusOpen, "endsAt": bson.M{"$lte": t}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing expired auctions: %w", err)
	}
	defer cursor.Close(ctx)

	auctions := []models.Auction{}
	if err := cursor.All(ctx, &auctions); err != nil {
		return nil, fmt.Errorf("error decoding auctions: %w", err)
	}
	return auctions, nil
}

func (r *mongoAuctionRepo) Close(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.AuctionStatusOpen}
	update := bson.M{"$set": bson.M{"status": models.AuctionStatusClosed, "closedAt": at}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error closing auction %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrConflict
	}
	return nil
}

// EnsureIndexes creates the necessary indexes on the auctions collection.
// At most one open auction per slot is enforced with a partial unique index.
func (r *mongoAuctionRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "slotId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("one_open_per_slot").
				SetPartialFilterExpression(bson.M{"status": models.AuctionStatusOpen}),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "endsAt", Value: 1}},
			Options: options.Index().SetName("status_ends_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create auction indexes: %w", err)
	}
	return nil
}
