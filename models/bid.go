package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	BidOwnerCustomer = "customer"
	BidOwnerProvider = "provider"
)

const (
	BidStatusPending   = "pending"
	BidStatusAccepted  = "accepted"
	BidStatusRejected  = "rejected"
	BidStatusWithdrawn = "withdrawn"
	BidStatusCountered = "countered"
)

// Bid is an offer on an auction slot. A provider counter-bid points at the
// customer bid it answers through ParentBidID; chains are one level deep.
type Bid struct {
	ID          string          `bson:"id" json:"id"`
	TenantID    string          `bson:"tenantId" json:"tenantId"`
	SlotID      string          `bson:"slotId" json:"slotId"`
	ProviderID  string          `bson:"providerId" json:"providerId"`
	CustomerID  string          `bson:"customerId" json:"customerId"`
	Amount      decimal.Decimal `bson:"amount" json:"amount"`
	OwnerType   string          `bson:"ownerType" json:"ownerType"` // "customer" or "provider"
	Status      string          `bson:"status" json:"status"`
	ParentBidID string          `bson:"parentBidId,omitempty" json:"parentBidId,omitempty"`
	Message     string          `bson:"message,omitempty" json:"message,omitempty"`
	CreatedAt   time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// OwnerID returns the id of the party that placed the bid.
func (b Bid) OwnerID() string {
	if b.OwnerType == BidOwnerProvider {
		return b.ProviderID
	}
	return b.CustomerID
}

// IsCounter reports whether the bid is a provider reply to a customer bid.
func (b Bid) IsCounter() bool {
	return b.ParentBidID != ""
}

// BidThread is a customer bid together with the provider replies to it.
type BidThread struct {
	Root    Bid   `json:"root"`
	Replies []Bid `json:"replies"`
}
