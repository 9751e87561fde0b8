package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

const (
	BookingSourceFixedPrice = "fixed_price"
	BookingSourceAuction    = "auction"
)

// Booking represents a confirmed (or later cancelled) reservation of a slot.
type Booking struct {
	ID              string          `bson:"id" json:"id"`
	TenantID        string          `bson:"tenantId" json:"tenantId"`
	SlotID          string          `bson:"slotId" json:"slotId"`
	ServiceID       string          `bson:"serviceId" json:"serviceId"`
	ProviderID      string          `bson:"providerId" json:"providerId"`
	CustomerID      string          `bson:"customerId" json:"customerId"`
	BidID           string          `bson:"bidId,omitempty" json:"bidId,omitempty"` // set when created by an accepted bid
	Source          string          `bson:"source" json:"source"`                   // "fixed_price" or "auction"
	Status          string          `bson:"status" json:"status"`
	PricePaid       decimal.Decimal `bson:"pricePaid" json:"pricePaid"`
	PaymentIntentID string          `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	CreatedAt       time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updatedAt" json:"updatedAt"`
}
