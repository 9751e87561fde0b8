package main

import (
	"context"
	"fmt"

	"chairbid/database"
	"chairbid/database/repository"
	auctionRepo "chairbid/database/repository/auction"
	bidRepo "chairbid/database/repository/bid"
	bookingRepo "chairbid/database/repository/booking"
	catalogRepo "chairbid/database/repository/catalog"
	"chairbid/database/repository/memory"
	notificationRepo "chairbid/database/repository/notification"
	profileRepo "chairbid/database/repository/profile"
	slotRepo "chairbid/database/repository/slot"
	tenantRepo "chairbid/database/repository/tenant"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// stores groups the repositories the services are built on.
type stores struct {
	Tenants       tenantRepo.TenantRepository
	Services      catalogRepo.ServiceRepository
	Profiles      profileRepo.ProfileRepository
	Slots         slotRepo.SlotRepository
	Auctions      auctionRepo.AuctionRepository
	Bids          bidRepo.BidRepository
	Bookings      bookingRepo.BookingRepository
	Notifications notificationRepo.NotificationRepository
}

func mongoStores(db *mongo.Database) *stores {
	return &stores{
		Tenants:       tenantRepo.NewMongoTenantRepo(db),
		Services:      catalogRepo.NewMongoServiceRepo(db),
		Profiles:      profileRepo.NewMongoProfileRepo(db),
		Slots:         slotRepo.NewMongoSlotRepo(db),
		Auctions:      auctionRepo.NewMongoAuctionRepo(db),
		Bids:          bidRepo.NewMongoBidRepo(db),
		Bookings:      bookingRepo.NewMongoBookingRepo(db),
		Notifications: notificationRepo.NewMongoNotificationRepo(db),
	}
}

func memoryStores() *stores {
	return &stores{
		Tenants:       memory.NewTenantRepo(),
		Services:      memory.NewServiceRepo(),
		Profiles:      memory.NewProfileRepo(),
		Slots:         memory.NewSlotRepo(),
		Auctions:      memory.NewAuctionRepo(),
		Bids:          memory.NewBidRepo(),
		Bookings:      memory.NewBookingRepo(),
		Notifications: memory.NewNotificationRepo(),
	}
}

// ensureIndexes creates the indexes of every repository backed by MongoDB.
// Memory repositories are skipped.
func ensureIndexes(ctx context.Context, s *stores, logger *zap.Logger) error {
	repos := map[string]any{
		"tenants":       s.Tenants,
		"services":      s.Services,
		"profiles":      s.Profiles,
		"slots":         s.Slots,
		"auctions":      s.Auctions,
		"bids":          s.Bids,
		"bookings":      s.Bookings,
		"notifications": s.Notifications,
	}
	for name, r := range repos {
		ensurer, ok := r.(repository.IndexEnsurer)
		if !ok {
			continue
		}
		if err := ensurer.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", name, err)
		}
		logger.Debug("Indexes ensured", zap.String("collection", name))
	}
	return nil
}

func openMongoStores() *stores {
	database.InitDB()
	return mongoStores(database.DB())
}
