package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"chairbid/database/repository"
	"chairbid/models"

	"github.com/google/uuid"
)

type BidRepo struct {
	mu   sync.RWMutex
	byID map[string]models.Bid
	seq  int64
	// insertion order keeps listings stable when timestamps collide
	order map[string]int64
}

func NewBidRepo() *BidRepo {
	return &BidRepo{
		byID:  make(map[string]models.Bid),
		order: make(map[string]int64),
	}
}

func (r *BidRepo) Create(_ context.Context, bid *models.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if bid.ID == "" {
		bid.ID = uuid.New().String()
	}
	bid.CreatedAt = now
	bid.UpdatedAt = now
	r.seq++
	r.order[bid.ID] = r.seq
	r.byID[bid.ID] = *bid
	return nil
}

func (r *BidRepo) GetByID(_ context.Context, id string) (*models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *BidRepo) ListBySlot(_ context.Context, slotID string) ([]models.Bid, error) {
	return r.filter(func(b models.Bid) bool { return b.SlotID == slotID }), nil
}

func (r *BidRepo) ListByParticipant(_ context.Context, userID string) ([]models.Bid, error) {
	return r.filter(func(b models.Bid) bool { return b.CustomerID == userID || b.ProviderID == userID }), nil
}

func (r *BidRepo) ListReplies(_ context.Context, parentID string) ([]models.Bid, error) {
	return r.filter(func(b models.Bid) bool { return b.ParentBidID == parentID }), nil
}

func (r *BidRepo) TransitionStatus(_ context.Context, id, from, to string) (*models.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok || b.Status != from {
		return nil, repository.ErrConflict
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	r.byID[id] = b
	return &b, nil
}

func (r *BidRepo) RejectPendingForSlot(_ context.Context, slotID, keepID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	now := time.Now().UTC()
	for id, b := range r.byID {
		if b.SlotID != slotID || b.Status != models.BidStatusPending || id == keepID {
			continue
		}
		b.Status = models.BidStatusRejected
		b.UpdatedAt = now
		r.byID[id] = b
		n++
	}
	return n, nil
}

func (r *BidRepo) filter(keep func(models.Bid) bool) []models.Bid {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Bid{}
	for _, b := range r.byID {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.order[out[i].ID] < r.order[out[j].ID] })
	return out
}
