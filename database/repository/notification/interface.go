package notificationRepo

import (
	"context"

	"chairbid/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID string, limit int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, recipientID, id string) error
}

type mongoNotificationRepo struct {
	coll *mongo.Collection
}

func NewMongoNotificationRepo(db *mongo.Database) NotificationRepository {
	return &mongoNotificationRepo{coll: db.Collection("notifications")}
}
