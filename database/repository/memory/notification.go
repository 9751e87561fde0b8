package memory

import (
	"context"
	"sync"
	"time"

	"chairbid/database/repository"
	"chairbid/models"

	"github.com/google/uuid"
)

type NotificationRepo struct {
	mu    sync.RWMutex
	items []models.Notification
}

func NewNotificationRepo() *NotificationRepo {
	return &NotificationRepo{}
}

func (r *NotificationRepo) Create(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	r.items = append(r.items, *n)
	return nil
}

func (r *NotificationRepo) ListByRecipient(_ context.Context, recipientID string, limit int64) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Notification{}
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].RecipientID != recipientID {
			continue
		}
		out = append(out, r.items[i])
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (r *NotificationRepo) MarkRead(_ context.Context, recipientID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id && r.items[i].RecipientID == recipientID {
			r.items[i].Read = true
			return nil
		}
	}
	return repository.ErrNotFound
}
