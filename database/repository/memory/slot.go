package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"chairbid/database/repository"
	"chairbid/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SlotRepo struct {
	mu   sync.RWMutex
	byID map[string]models.Slot
}

func NewSlotRepo() *SlotRepo {
	return &SlotRepo{byID: make(map[string]models.Slot)}
}

func (r *SlotRepo) CreateMany(_ context.Context, slots []models.Slot) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	ids := make([]string, len(slots))
	for i, slot := range slots {
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		if slot.Status == "" {
			slot.Status = models.SlotStatusAvailable
		}
		slot.CreatedAt = now
		slot.UpdatedAt = now
		r.byID[slot.ID] = slot
		ids[i] = slot.ID
	}
	return ids, nil
}

func (r *SlotRepo) GetByID(_ context.Context, id string) (*models.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *SlotRepo) List(_ context.Context, f models.SlotFilter) ([]models.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Slot{}
	for _, s := range r.byID {
		if matchesSlot(s, f) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func matchesSlot(s models.Slot, f models.SlotFilter) bool {
	switch {
	case f.TenantID != "" && s.TenantID != f.TenantID:
		return false
	case f.ProviderID != "" && s.ProviderID != f.ProviderID:
		return false
	case f.ServiceID != "" && s.ServiceID != f.ServiceID:
		return false
	case f.Status != "" && s.Status != f.Status:
		return false
	case f.AuctionOnly && !s.IsAuction:
		return false
	case !f.From.IsZero() && s.StartsAt.Before(f.From):
		return false
	case !f.To.IsZero() && !s.StartsAt.Before(f.To):
		return false
	}
	return true
}

func (r *SlotRepo) TransitionStatus(_ context.Context, id, from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok || s.Status != from {
		return repository.ErrConflict
	}
	s.Status = to
	s.UpdatedAt = time.Now().UTC()
	r.byID[id] = s
	return nil
}

func (r *SlotRepo) SetAuction(_ context.Context, id string, minPrice decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.IsAuction = true
	s.MinPrice = minPrice
	s.UpdatedAt = time.Now().UTC()
	r.byID[id] = s
	return nil
}
