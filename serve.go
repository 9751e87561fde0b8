package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chairbid/config"
	"chairbid/cron"
	"chairbid/database"
	"chairbid/handlers"
	"chairbid/middleware"
	"chairbid/routes"
	"chairbid/services/auction"
	"chairbid/services/bidding"
	"chairbid/services/booking"
	"chairbid/services/catalog"
	"chairbid/services/events"
	"chairbid/services/notification"
	"chairbid/services/payment"
	"chairbid/services/reminder"
	"chairbid/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the auction closer and the reminder worker",
	Run: func(cmd *cobra.Command, args []string) {
		config.LoadConfig()
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			config.AppConfig.AppPort = port
		}
		if store, _ := cmd.Flags().GetString("store"); store != "" {
			config.AppConfig.Store = store
		}
		serve()
	},
}

func init() {
	serveCmd.Flags().String("port", "", "Port to listen on (overrides APP_PORT)")
	serveCmd.Flags().String("store", "", "Repository backend: mongo or memory (overrides STORE)")
	rootCmd.AddCommand(serveCmd)
}

func serve() {
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	if len(config.AppConfig.JWTSecret) == 0 {
		logger.Fatal("JWT_SECRET is required")
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	utils.InitRedis()

	var repos *stores
	if config.UseMemoryStore() {
		logger.Warn("Using in-memory repositories; data is lost on restart")
		repos = memoryStores()
	} else {
		repos = openMongoStores()
		ctx, cancel := context.WithTimeout(rootCtx, time.Minute)
		if err := ensureIndexes(ctx, repos, logger); err != nil {
			logger.Fatal("Failed to ensure indexes", zap.Error(err))
		}
		cancel()
	}

	// Payments.
	var gateway payment.Gateway = payment.NoopGateway{}
	if config.AppConfig.StripeKey != "" {
		stripe.Key = config.AppConfig.StripeKey
		gateway = &payment.StripeGateway{Currency: config.AppConfig.Currency}
	}

	// Notifications.
	notifications := &notification.DefaultNotificationService{
		Repo:     repos.Notifications,
		Profiles: repos.Profiles,
		Logger:   logger,
	}
	if file := config.AppConfig.FirebaseCredentialsFile; file != "" {
		pusher, err := notification.NewFCMPusher(rootCtx, file)
		if err != nil {
			logger.Warn("Push notifications disabled", zap.Error(err))
		} else {
			notifications.Pusher = pusher
		}
	}

	locker := utils.NewRedisLocker(utils.GetLockClient(), utils.SlotLockPrefix)
	bus := events.NewRedisBus(utils.GetCacheClient(), logger)

	// Reminders need a persistent queue; the memory store runs without them.
	var (
		reminders      reminder.Scheduler
		reminderClient *asynq.Client
		reminderWorker *asynq.Server
	)
	if !config.UseMemoryStore() {
		reminderClient = asynq.NewClient(cron.ReminderRedisOpt())
		reminders = &reminder.AsynqScheduler{Client: reminderClient, Lead: config.AppConfig.ReminderLead}
		reminderWorker = cron.InitReminderWorker(repos.Bookings, notifications, logger)
	}

	catalogSvc := &catalog.DefaultCatalogService{
		Tenants:  repos.Tenants,
		Services: repos.Services,
		Profiles: repos.Profiles,
		Slots:    repos.Slots,
		Cache:    utils.GetCacheClient(),
		Logger:   logger,
	}
	auctionSvc := &auction.DefaultAuctionService{
		Auctions: repos.Auctions,
		Slots:    repos.Slots,
		Bids:     repos.Bids,
		Events:   bus,
		Logger:   logger,
	}
	biddingSvc := &bidding.DefaultBiddingService{
		Bids:      repos.Bids,
		Slots:     repos.Slots,
		Bookings:  repos.Bookings,
		Auctions:  repos.Auctions,
		Locker:    locker,
		LockTTL:   config.AppConfig.SlotLockTTL,
		Notifier:  notifications,
		Payments:  gateway,
		Reminders: reminders,
		Events:    bus,
		Logger:    logger,
	}
	bookingSvc := &booking.DefaultBookingService{
		Bookings:  repos.Bookings,
		Slots:     repos.Slots,
		Services:  repos.Services,
		Locker:    locker,
		LockTTL:   config.AppConfig.SlotLockTTL,
		Notifier:  notifications,
		Payments:  gateway,
		Reminders: reminders,
		Logger:    logger,
	}

	handlerBundle := &handlers.HandlerBundle{
		Catalog:       handlers.NewCatalogHandler(catalogSvc),
		Profile:       handlers.NewProfileHandler(catalogSvc),
		Bidding:       handlers.NewBiddingHandler(biddingSvc),
		Booking:       handlers.NewBookingHandler(bookingSvc),
		Auction:       handlers.NewAuctionHandler(auctionSvc, bus),
		Notifications: handlers.NewNotificationHandler(notifications),
		Profiles:      catalogSvc,
		Tenants:       catalogSvc,
		JWTSecret:     []byte(config.AppConfig.JWTSecret),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(rootCtx, []*redis.Client{utils.GetCacheClient(), utils.GetLockClient()}, database.MongoClient)

	closer, err := cron.StartAuctionCloser(config.AppConfig.AuctionCloseSchedule, auctionSvc, logger)
	if err != nil {
		logger.Fatal("Invalid auction close schedule", zap.String("schedule", config.AppConfig.AuctionCloseSchedule), zap.Error(err))
	}

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("store", config.AppConfig.Store))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Server is shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	<-closer.Stop().Done()
	stopBackground()
	if reminderWorker != nil {
		reminderWorker.Shutdown()
	}
	if reminderClient != nil {
		_ = reminderClient.Close()
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Warn("Failed to disconnect MongoDB", zap.Error(err))
	}
	utils.CloseRedis()

	logger.Info("Server stopped gracefully")
}
