package bidding

import (
	"context"
	"time"

	auctionRepo "chairbid/database/repository/auction"
	bidRepo "chairbid/database/repository/bid"
	bookingRepo "chairbid/database/repository/booking"
	slotRepo "chairbid/database/repository/slot"
	"chairbid/models"
	"chairbid/services/events"
	"chairbid/services/notification"
	"chairbid/services/payment"
	"chairbid/services/reminder"
	"chairbid/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BiddingService runs the bid / counter-bid negotiation on auction slots.
type BiddingService interface {
	PlaceBid(ctx context.Context, actor models.Actor, in PlaceBidInput) (*models.Bid, error)
	CounterBid(ctx context.Context, actor models.Actor, bidID string, amount decimal.Decimal, message string) (*models.Bid, error)
	AcceptBid(ctx context.Context, actor models.Actor, bidID string) (*AcceptResult, error)
	RejectBid(ctx context.Context, actor models.Actor, bidID string) (*models.Bid, error)
	WithdrawBid(ctx context.Context, actor models.Actor, bidID string) (*models.Bid, error)
	ListSlotBids(ctx context.Context, slotID string) ([]models.Bid, error)
	ListMyBids(ctx context.Context, actor models.Actor) ([]models.Bid, error)
	GetThread(ctx context.Context, actor models.Actor, bidID string) (*models.BidThread, error)
}

// PlaceBidInput is a customer's offer on an auction slot.
type PlaceBidInput struct {
	SlotID  string          `json:"-"`
	Amount  decimal.Decimal `json:"amount"`
	Message string          `json:"message"`
}

// AcceptResult reports the outcome of an accept. Warnings name the best-effort
// steps that failed; those steps are not rolled back.
type AcceptResult struct {
	Bid      models.Bid      `json:"bid"`
	Booking  *models.Booking `json:"booking,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
}

// DefaultBiddingService implements BiddingService. Locker, Notifier, Payments,
// Reminders and Events are optional.
type DefaultBiddingService struct {
	Bids     bidRepo.BidRepository
	Slots    slotRepo.SlotRepository
	Bookings bookingRepo.BookingRepository
	Auctions auctionRepo.AuctionRepository

	Locker    utils.Locker
	LockTTL   time.Duration
	Notifier  notification.NotificationService
	Payments  payment.Gateway
	Reminders reminder.Scheduler
	Events    events.Publisher

	Logger *zap.Logger
	Now    func() time.Time
}

func (s *DefaultBiddingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *DefaultBiddingService) lockTTL() time.Duration {
	if s.LockTTL > 0 {
		return s.LockTTL
	}
	return 10 * time.Second
}
