package routes

import (
	"net/http"
	"time"

	"chairbid/handlers"
	"chairbid/middleware"
	"chairbid/models"
	"chairbid/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var staff = []string{models.RoleProvider, models.RoleOwner}

// RegisterTenantRoutes registers the public catalog of a business and the
// staff endpoints that publish into it.
func RegisterTenantRoutes(r *gin.RouterGroup, hb *handlers.HandlerBundle) {
	auth := middleware.JWTAuthMiddleware(hb.Profiles, hb.JWTSecret)

	r.POST("/tenants", auth, middleware.RequireRole(models.RoleOwner), hb.Catalog.CreateTenant)

	tenant := r.Group("/tenants/:slug")
	tenant.Use(middleware.TenantMiddleware(hb.Tenants))
	{
		tenant.GET("", hb.Catalog.GetTenant)
		tenant.GET("/services", hb.Catalog.ListServices)
		tenant.GET("/staff", hb.Catalog.ListStaff)
		tenant.GET("/slots", hb.Catalog.ListSlots)

		tenant.POST("/services", auth, middleware.RequireRole(models.RoleOwner), hb.Catalog.CreateService)
		tenant.POST("/slots", auth, middleware.RequireRole(staff...), hb.Catalog.CreateSlots)
	}
}

// RegisterSlotRoutes registers slot detail, booking, bidding and auction endpoints.
func RegisterSlotRoutes(r *gin.RouterGroup, hb *handlers.HandlerBundle) {
	auth := middleware.JWTAuthMiddleware(hb.Profiles, hb.JWTSecret)

	slots := r.Group("/slots/:slotID")
	{
		slots.GET("", hb.Catalog.GetSlot)
		slots.GET("/bids", hb.Bidding.ListSlotBids)

		slots.POST("/book", auth, middleware.RequireRole(models.RoleCustomer), hb.Booking.BookSlot)
		slots.POST("/bids", auth, middleware.RequireRole(models.RoleCustomer), hb.Bidding.PlaceBid)
		slots.POST("/auction", auth, middleware.RequireRole(staff...), hb.Auction.OpenAuction)
	}

	auctions := r.Group("/auctions/:slotID")
	{
		auctions.GET("", hb.Auction.GetAuction)
		auctions.GET("/stream", hb.Auction.StreamAuction)
	}
}

// RegisterBidRoutes registers the negotiation endpoints.
func RegisterBidRoutes(r *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bids := r.Group("/bids")
	bids.Use(middleware.JWTAuthMiddleware(hb.Profiles, hb.JWTSecret), middleware.RequireRole(models.RoleCustomer, models.RoleProvider, models.RoleOwner))
	{
		bids.GET("/mine", hb.Bidding.ListMyBids)
		bids.GET("/:bidID/thread", hb.Bidding.GetThread)
		bids.POST("/:bidID/accept", hb.Bidding.AcceptBid)
		bids.POST("/:bidID/reject", hb.Bidding.RejectBid)
		bids.POST("/:bidID/withdraw", hb.Bidding.WithdrawBid)
		bids.POST("/:bidID/counter", middleware.RequireRole(staff...), hb.Bidding.CounterBid)
	}
}

// RegisterBookingRoutes registers the caller's bookings.
func RegisterBookingRoutes(r *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.JWTAuthMiddleware(hb.Profiles, hb.JWTSecret))
	{
		bookings.GET("", hb.Booking.ListMyBookings)
		bookings.GET("/:bookingID", hb.Booking.GetBooking)
		bookings.POST("/:bookingID/cancel", hb.Booking.CancelBooking)
	}
}

// RegisterAccountRoutes registers profile and notification endpoints.
func RegisterAccountRoutes(r *gin.RouterGroup, hb *handlers.HandlerBundle) {
	auth := middleware.JWTAuthMiddleware(hb.Profiles, hb.JWTSecret)

	me := r.Group("/me", auth)
	{
		me.GET("", hb.Profile.GetMe)
		me.PUT("", hb.Profile.UpsertMe)
	}

	notifications := r.Group("/notifications", auth)
	{
		notifications.GET("", hb.Notifications.List)
		notifications.POST("/:id/read", hb.Notifications.MarkRead)
	}
}

// RegisterHealthRoutes registers the health check and the Prometheus endpoint.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.CheckedAt.IsZero() && !status.Mongo {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": http.StatusText(code), "checks": status})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-Bid-Status"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoutes(r)

	api := r.Group("/api")
	RegisterTenantRoutes(api, hb)
	RegisterSlotRoutes(api, hb)
	RegisterBidRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterAccountRoutes(api, hb)
}
