package auction

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"chairbid/database/repository"
	auctionRepo "chairbid/database/repository/auction"
	bidRepo "chairbid/database/repository/bid"
	slotRepo "chairbid/database/repository/slot"
	"chairbid/models"
	"chairbid/services/events"
	"chairbid/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	CodeNotFound     = "not_found"
	CodeForbidden    = "forbidden"
	CodeInvalidInput = "invalid_input"
	CodeConflict     = "conflict"
)

type AuctionError struct {
	Code    string
	Message string
}

func (e *AuctionError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

// ErrorCode is the machine-readable code sent to API clients.
func (e *AuctionError) ErrorCode() string { return e.Code }

func (e *AuctionError) Status() int {
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeInvalidInput:
		return http.StatusUnprocessableEntity
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func newAuctionError(code, format string, args ...any) error {
	return &AuctionError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func HasCode(err error, code string) bool {
	var ae *AuctionError
	return errors.As(err, &ae) && ae.Code == code
}

// Snapshot is the live view of an auction slot.
type Snapshot struct {
	Slot       models.Slot     `json:"slot"`
	Auction    *models.Auction `json:"auction,omitempty"`
	Bids       []models.Bid    `json:"bids"`
	HighestBid *models.Bid     `json:"highestBid,omitempty"`
}

// OpenInput starts a bidding window on a slot.
type OpenInput struct {
	MinPrice decimal.Decimal `json:"minPrice"`
	EndsAt   time.Time       `json:"endsAt" binding:"required"`
}

type AuctionService interface {
	OpenAuction(ctx context.Context, actor models.Actor, slotID string, in OpenInput) (*models.Auction, error)
	Snapshot(ctx context.Context, slotID string) (*Snapshot, error)
	CloseExpired(ctx context.Context, now time.Time) (int, error)
}

type DefaultAuctionService struct {
	Auctions auctionRepo.AuctionRepository
	Slots    slotRepo.SlotRepository
	Bids     bidRepo.BidRepository
	Events   events.Publisher
	Logger   *zap.Logger
	Now      func() time.Time
}

func (s *DefaultAuctionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// OpenAuction flags the slot for bidding and opens a window ending at EndsAt.
func (s *DefaultAuctionService) OpenAuction(ctx context.Context, actor models.Actor, slotID string, in OpenInput) (*models.Auction, error) {
	slot, err := s.Slots.GetByID(ctx, slotID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newAuctionError(CodeNotFound, "slot %s not found", slotID)
	}
	if err != nil {
		return nil, fmt.Errorf("OpenAuction: %w", err)
	}
	isOwner := actor.Role == models.RoleOwner && actor.TenantID == slot.TenantID
	if actor.ID != slot.ProviderID && !isOwner {
		return nil, newAuctionError(CodeForbidden, "only the slot's provider can auction it")
	}
	if slot.Status != models.SlotStatusAvailable {
		return nil, newAuctionError(CodeConflict, "slot %s is already booked", slot.ID)
	}
	if in.MinPrice.IsNegative() {
		return nil, newAuctionError(CodeInvalidInput, "minimum price cannot be negative")
	}
	now := s.now()
	if !in.EndsAt.After(now) {
		return nil, newAuctionError(CodeInvalidInput, "auction must end in the future")
	}
	if in.EndsAt.After(slot.StartsAt) {
		return nil, newAuctionError(CodeInvalidInput, "auction must end before the appointment starts")
	}

	auction := &models.Auction{
		TenantID: slot.TenantID,
		SlotID:   slot.ID,
		Status:   models.AuctionStatusOpen,
		EndsAt:   in.EndsAt.UTC(),
	}
	if err := s.Auctions.Create(ctx, auction); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, newAuctionError(CodeConflict, "slot %s already has an open auction", slot.ID)
		}
		return nil, fmt.Errorf("OpenAuction: %w", err)
	}
	if err := s.Slots.SetAuction(ctx, slot.ID, in.MinPrice); err != nil {
		// Close the window again so the slot can be re-auctioned.
		if cerr := s.Auctions.Close(ctx, auction.ID, now); cerr != nil {
			s.Logger.Warn("Failed to close orphaned auction",
				zap.String("slot_id", slot.ID), zap.String("auction_id", auction.ID), zap.Error(cerr))
		}
		return nil, fmt.Errorf("OpenAuction: flag slot: %w", err)
	}

	s.publish(ctx, models.AuctionEvent{Type: "auction_opened", SlotID: slot.ID, Status: auction.Status, Amount: in.MinPrice.StringFixed(2)})
	s.Logger.Info("Auction opened", zap.String("slot_id", slot.ID), zap.Time("ends_at", auction.EndsAt))
	return auction, nil
}

// Snapshot returns the slot with its latest auction window and bids.
func (s *DefaultAuctionService) Snapshot(ctx context.Context, slotID string) (*Snapshot, error) {
	slot, err := s.Slots.GetByID(ctx, slotID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newAuctionError(CodeNotFound, "slot %s not found", slotID)
	}
	if err != nil {
		return nil, fmt.Errorf("Snapshot: %w", err)
	}

	snap := &Snapshot{Slot: *slot}
	auction, err := s.Auctions.GetLatestBySlot(ctx, slotID)
	switch {
	case err == nil:
		snap.Auction = auction
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("Snapshot: %w", err)
	}

	bids, err := s.Bids.ListBySlot(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("Snapshot: %w", err)
	}
	if bids == nil {
		bids = []models.Bid{}
	}
	snap.Bids = bids
	snap.HighestBid = highestPending(bids)
	return snap, nil
}

func highestPending(bids []models.Bid) *models.Bid {
	var best *models.Bid
	for i := range bids {
		b := &bids[i]
		if b.OwnerType != models.BidOwnerCustomer || b.Status != models.BidStatusPending {
			continue
		}
		if best == nil || b.Amount.GreaterThan(best.Amount) {
			best = b
		}
	}
	return best
}

// CloseExpired closes every open auction whose window ended before now.
// Pending bids are left for the provider to settle.
func (s *DefaultAuctionService) CloseExpired(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.Auctions.ListOpenEndingBefore(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("CloseExpired: %w", err)
	}

	closed := 0
	for _, a := range expired {
		err := s.Auctions.Close(ctx, a.ID, now)
		if errors.Is(err, repository.ErrConflict) {
			continue
		}
		if err != nil {
			s.Logger.Error("Failed to close auction", zap.String("auction_id", a.ID), zap.Error(err))
			continue
		}
		closed++
		utils.AuctionsClosed.Inc()
		s.publish(ctx, models.AuctionEvent{Type: "auction_closed", SlotID: a.SlotID, Status: models.AuctionStatusClosed})
	}
	return closed, nil
}

func (s *DefaultAuctionService) publish(ctx context.Context, event models.AuctionEvent) {
	if s.Events == nil {
		return
	}
	event.CreatedAt = s.now()
	if err := s.Events.Publish(ctx, event); err != nil {
		s.Logger.Warn("Failed to publish auction event", zap.String("slot_id", event.SlotID), zap.Error(err))
	}
}
