package bidding

import (
	"context"
	"errors"
	"fmt"

	"chairbid/database/repository"
	"chairbid/models"
	"chairbid/utils"

	"go.uber.org/zap"
)

func (s *DefaultBiddingService) loadBid(ctx context.Context, bidID string) (*models.Bid, error) {
	bid, err := s.Bids.GetByID(ctx, bidID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newBidError(CodeNotFound, "bid %s not found", bidID)
	}
	if err != nil {
		return nil, fmt.Errorf("load bid %s: %w", bidID, err)
	}
	return bid, nil
}

// stepFailed logs a best-effort step failure and returns the warning text.
func (s *DefaultBiddingService) stepFailed(step string, bid models.Bid, err error) string {
	utils.StepFailures.WithLabelValues(step).Inc()
	s.Logger.Warn("Best-effort step failed",
		zap.String("step", step),
		zap.String("slot_id", bid.SlotID),
		zap.String("bid_id", bid.ID),
		zap.Error(err))
	return fmt.Sprintf("%s: %v", step, err)
}

// afterTransition records the metric and publishes the live auction event.
func (s *DefaultBiddingService) afterTransition(ctx context.Context, bid models.Bid, eventType string) {
	utils.BidTransitions.WithLabelValues(bid.Status).Inc()
	if s.Events == nil {
		return
	}
	event := models.AuctionEvent{
		Type:      eventType,
		SlotID:    bid.SlotID,
		BidID:     bid.ID,
		Status:    bid.Status,
		Amount:    bid.Amount.StringFixed(2),
		CreatedAt: s.now(),
	}
	if err := s.Events.Publish(ctx, event); err != nil {
		s.Logger.Warn("Failed to publish auction event", zap.String("slot_id", bid.SlotID), zap.Error(err))
	}
}

func (s *DefaultBiddingService) notify(ctx context.Context, bid models.Bid, recipientID, kind, title, body string) {
	if s.Notifier == nil || recipientID == "" {
		return
	}
	data := map[string]string{"bidId": bid.ID, "slotId": bid.SlotID}
	if err := s.Notifier.Notify(ctx, recipientID, kind, title, body, data); err != nil {
		s.Logger.Warn("Failed to notify", zap.String("recipient", recipientID), zap.String("kind", kind), zap.Error(err))
	}
}
