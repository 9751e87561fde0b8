package handlers

import (
	"chairbid/middleware"
)

// HandlerBundle groups the endpoint handlers and what the routes need to
// authenticate callers.
type HandlerBundle struct {
	Catalog       *CatalogHandler
	Profile       *ProfileHandler
	Bidding       *BiddingHandler
	Booking       *BookingHandler
	Auction       *AuctionHandler
	Notifications *NotificationHandler

	Profiles  middleware.ProfileLoader
	Tenants   middleware.TenantResolver
	JWTSecret []byte
}
