package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SlotStatusAvailable = "available"
	SlotStatusBooked    = "booked"
)

// Slot is a bookable time unit of one provider for one service.
// There is no version field: concurrent writers are only narrowed by the
// conditional status updates and the slot lock.
type Slot struct {
	ID         string          `bson:"id" json:"id"`
	TenantID   string          `bson:"tenantId" json:"tenantId"`
	ProviderID string          `bson:"providerId" json:"providerId"`
	ServiceID  string          `bson:"serviceId" json:"serviceId"`
	StartsAt   time.Time       `bson:"startsAt" json:"startsAt"`
	EndsAt     time.Time       `bson:"endsAt" json:"endsAt"`
	Status     string          `bson:"status" json:"status"` // "available" or "booked"
	IsAuction  bool            `bson:"isAuction" json:"isAuction"`
	MinPrice   decimal.Decimal `bson:"minPrice" json:"minPrice"` // lowest acceptable customer bid
	CreatedAt  time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// SlotInput is one entry of a create-slots request.
type SlotInput struct {
	ServiceID  string          `json:"serviceId" binding:"required"`
	ProviderID string          `json:"providerId"` // defaults to the caller
	StartsAt   time.Time       `json:"startsAt" binding:"required"`
	EndsAt     time.Time       `json:"endsAt" binding:"required"`
	IsAuction  bool            `json:"isAuction"`
	MinPrice   decimal.Decimal `json:"minPrice"`
}

// SlotFilter narrows slot listings. Zero values are ignored.
type SlotFilter struct {
	TenantID    string
	ProviderID  string
	ServiceID   string
	Status      string
	From        time.Time
	To          time.Time
	AuctionOnly bool
}
