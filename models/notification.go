package models

import "time"

const (
	NotificationBidPlaced      = "bid_placed"
	NotificationBidCountered   = "bid_countered"
	NotificationBidAccepted    = "bid_accepted"
	NotificationBidRejected    = "bid_rejected"
	NotificationBidWithdrawn   = "bid_withdrawn"
	NotificationBookingCreated = "booking_created"
	NotificationBookingCancel  = "booking_cancelled"
	NotificationReminder       = "appointment_reminder"
)

type Notification struct {
	ID          string            `bson:"id" json:"id"`
	RecipientID string            `bson:"recipientId" json:"recipientId"`
	Type        string            `bson:"type" json:"type"`
	Title       string            `bson:"title" json:"title"`
	Body        string            `bson:"body" json:"body"`
	Data        map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	Read        bool              `bson:"read" json:"read"`
	CreatedAt   time.Time         `bson:"createdAt" json:"createdAt"`
}
