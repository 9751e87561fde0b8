package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"chairbid/database/repository"
	bookingRepo "chairbid/database/repository/booking"
	"chairbid/models"
	"chairbid/services/notification"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// HandleReminder sends the reminder unless the booking has been cancelled
// since it was scheduled.
func HandleReminder(bookings bookingRepo.BookingRepository, notifier notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p Payload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid reminder payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		booking, err := bookings.GetByID(ctx, p.BookingID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if booking.Status != models.BookingStatusConfirmed {
			logger.Debug("Skipping reminder for inactive booking", zap.String("booking_id", p.BookingID))
			return nil
		}

		body := fmt.Sprintf("Your appointment starts at %s", p.StartsAt.UTC().Format("Jan 2 15:04 MST"))
		data := map[string]string{"bookingId": p.BookingID, "slotId": p.SlotID}
		if err := notifier.Notify(ctx, p.RecipientID, models.NotificationReminder, "Upcoming appointment", body, data); err != nil {
			logger.Warn("Reminder delivery failed", zap.String("booking_id", p.BookingID), zap.Error(err))
			return err
		}
		return nil
	}
}
