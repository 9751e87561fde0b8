package notification

import (
	"context"
	"fmt"
	"time"

	"chairbid/models"

	"go.uber.org/zap"
)

func (s *DefaultNotificationService) Notify(
	ctx context.Context,
	recipientID, kind, title, body string,
	data map[string]string,
) error {
	n := &models.Notification{
		RecipientID: recipientID,
		Type:        kind,
		Title:       title,
		Body:        body,
		Data:        data,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return fmt.Errorf("Notify: could not store notification for %s: %w", recipientID, err)
	}

	if s.Pusher == nil {
		return nil
	}

	profile, err := s.Profiles.GetByID(ctx, recipientID)
	if err != nil || profile.FCMToken == "" {
		// no push target
		return nil
	}

	pushData := map[string]string{"type": kind, "notificationId": n.ID}
	for k, v := range data {
		pushData[k] = v
	}
	go func(token string) {
		pushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Pusher.Push(pushCtx, token, title, body, pushData); err != nil {
			s.Logger.Warn("Push notification failed", zap.String("recipient", recipientID), zap.Error(err))
		}
	}(profile.FCMToken)

	return nil
}

func (s *DefaultNotificationService) List(ctx context.Context, recipientID string, limit int64) ([]models.Notification, error) {
	return s.Repo.ListByRecipient(ctx, recipientID, limit)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, recipientID, id string) error {
	return s.Repo.MarkRead(ctx, recipientID, id)
}
