package memory

import (
	"context"
	"sync"
	"time"

	"chairbid/database/repository"
	"chairbid/models"

	"github.com/google/uuid"
)

type AuctionRepo struct {
	mu       sync.RWMutex
	auctions []models.Auction
}

func NewAuctionRepo() *AuctionRepo {
	return &AuctionRepo{}
}

func (r *AuctionRepo) Create(_ context.Context, auction *models.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if auction.Status == "" {
		auction.Status = models.AuctionStatusOpen
	}
	for _, a := range r.auctions {
		if a.SlotID == auction.SlotID && a.Status == models.AuctionStatusOpen && auction.Status == models.AuctionStatusOpen {
			return repository.ErrConflict
		}
	}
	if auction.ID == "" {
		auction.ID = uuid.New().String()
	}
	auction.CreatedAt = time.Now().UTC()
	r.auctions = append(r.auctions, *auction)
	return nil
}

func (r *AuctionRepo) GetLatestBySlot(_ context.Context, slotID string) (*models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.auctions) - 1; i >= 0; i-- {
		if r.auctions[i].SlotID == slotID {
			a := r.auctions[i]
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *AuctionRepo) ListOpenEndingBefore(_ context.Context, t time.Time) ([]models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Auction{}
	for _, a := range r.auctions {
		if a.Status == models.AuctionStatusOpen && !a.EndsAt.After(t) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AuctionRepo) Close(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.auctions {
		if r.auctions[i].ID != id {
			continue
		}
		if r.auctions[i].Status != models.AuctionStatusOpen {
			return repository.ErrConflict
		}
		closedAt := at
		r.auctions[i].Status = models.AuctionStatusClosed
		r.auctions[i].ClosedAt = &closedAt
		return nil
	}
	return repository.ErrConflict
}
