package cron

import (
	"context"
	"time"

	"chairbid/services/auction"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// closeTimeout bounds one sweep of expired auctions.
const closeTimeout = 30 * time.Second

// StartAuctionCloser closes auctions whose window has passed on the given
// schedule (standard cron spec or "@every 1m").
func StartAuctionCloser(schedule string, svc auction.AuctionService, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(schedule, func() {
		closeExpiredAuctions(svc, logger, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	logger.Info("Auction closer scheduled", zap.String("schedule", schedule))
	return c, nil
}

func closeExpiredAuctions(svc auction.AuctionService, logger *zap.Logger, now time.Time) int {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	n, err := svc.CloseExpired(ctx, now)
	if err != nil {
		logger.Error("Closing expired auctions failed", zap.Int("closed", n), zap.Error(err))
		return n
	}
	if n > 0 {
		logger.Info("Closed expired auctions", zap.Int("count", n))
	}
	return n
}
