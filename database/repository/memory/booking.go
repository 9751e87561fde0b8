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

type BookingRepo struct {
	mu    sync.RWMutex
	byID  map[string]models.Booking
	seq   int64
	order map[string]int64
}

func NewBookingRepo() *BookingRepo {
	return &BookingRepo{
		byID:  make(map[string]models.Booking),
		order: make(map[string]int64),
	}
}

func (r *BookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.seq++
	r.order[booking.ID] = r.seq
	r.byID[booking.ID] = *booking
	return nil
}

func (r *BookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *BookingRepo) ListBySlot(_ context.Context, slotID string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.SlotID == slotID }), nil
}

func (r *BookingRepo) ListForCustomer(_ context.Context, customerID string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.CustomerID == customerID }), nil
}

func (r *BookingRepo) ListForProvider(_ context.Context, providerID string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.ProviderID == providerID }), nil
}

func (r *BookingRepo) Cancel(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok || b.Status != models.BookingStatusConfirmed {
		return nil, repository.ErrConflict
	}
	b.Status = models.BookingStatusCancelled
	b.UpdatedAt = time.Now().UTC()
	r.byID[id] = b
	return &b, nil
}

func (r *BookingRepo) CancelOthersForSlot(_ context.Context, slotID, keepID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	now := time.Now().UTC()
	for id, b := range r.byID {
		if b.SlotID != slotID || b.Status != models.BookingStatusConfirmed || id == keepID {
			continue
		}
		b.Status = models.BookingStatusCancelled
		b.UpdatedAt = now
		r.byID[id] = b
		n++
	}
	return n, nil
}

func (r *BookingRepo) SetPaymentIntent(_ context.Context, id, intentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.PaymentIntentID = intentID
	r.byID[id] = b
	return nil
}

// newest first, like the MongoDB repository
func (r *BookingRepo) filter(keep func(models.Booking) bool) []models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range r.byID {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.order[out[i].ID] > r.order[out[j].ID] })
	return out
}
