package notification

import (
	"context"

	notificationRepo "chairbid/database/repository/notification"
	profileRepo "chairbid/database/repository/profile"
	"chairbid/models"

	"go.uber.org/zap"
)

// NotificationService records in-app notifications and forwards them as pushes.
type NotificationService interface {
	Notify(ctx context.Context, recipientID, kind, title, body string, data map[string]string) error
	List(ctx context.Context, recipientID string, limit int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, recipientID, id string) error
}

// DefaultNotificationService is the production implementation. Pusher may be
// nil, in which case only the in-app record is written.
type DefaultNotificationService struct {
	Repo     notificationRepo.NotificationRepository
	Profiles profileRepo.ProfileRepository
	Pusher   Pusher
	Logger   *zap.Logger
}
