package models

import "time"

const (
	AuctionStatusOpen   = "open"
	AuctionStatusClosed = "closed"
)

// Auction tracks the bidding window of an auction slot.
type Auction struct {
	ID        string     `bson:"id" json:"id"`
	TenantID  string     `bson:"tenantId" json:"tenantId"`
	SlotID    string     `bson:"slotId" json:"slotId"`
	Status    string     `bson:"status" json:"status"`
	EndsAt    time.Time  `bson:"endsAt" json:"endsAt"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	ClosedAt  *time.Time `bson:"closedAt,omitempty" json:"closedAt,omitempty"`
}

// AcceptsBidsAt reports whether bids may still be placed at the given time.
func (a Auction) AcceptsBidsAt(now time.Time) bool {
	return a.Status == AuctionStatusOpen && now.Before(a.EndsAt)
}

// AuctionEvent is published on every bid change of an auction slot.
type AuctionEvent struct {
	Type      string    `json:"type"` // e.g. "bid_placed", "bid_accepted"
	SlotID    string    `json:"slotId"`
	BidID     string    `json:"bidId,omitempty"`
	Status    string    `json:"status,omitempty"`
	Amount    string    `json:"amount,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
