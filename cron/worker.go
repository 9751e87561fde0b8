package cron

import (
	"time"

	"chairbid/config"
	bookingRepo "chairbid/database/repository/booking"
	"chairbid/services/notification"
	"chairbid/services/reminder"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderRedisOpt is the asynq connection shared by the reminder client and worker.
func ReminderRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.ReminderQueueDB,
	}
}

// NewReminderMux routes reminder tasks to their handler.
func NewReminderMux(bookings bookingRepo.BookingRepository, notifier notification.NotificationService, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(reminder.TypeAppointmentReminder, reminder.HandleReminder(bookings, notifier, logger))
	return mux
}

// InitReminderWorker starts the asynq worker in the background. The returned
// server must be shut down by the caller.
func InitReminderWorker(bookings bookingRepo.BookingRepository, notifier notification.NotificationService, logger *zap.Logger) *asynq.Server {
	concurrency := config.AppConfig.ReminderConcurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(ReminderRedisOpt(), asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{"default": 1},
		Logger:      logger.Sugar(),
	})
	mux := NewReminderMux(bookings, notifier, logger)

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5

		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("Reminder worker failed to start",
				zap.Int("attempt", attempt), zap.Int("max_attempts", maxAttempts), zap.Error(err))
			if attempt == maxAttempts {
				logger.Error("Reminder worker gave up; reminders will not be delivered")
				return
			}
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
	}()
	return srv
}
