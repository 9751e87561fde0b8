package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chairbid/models"

	"github.com/hibiken/asynq"
)

// Scheduler plans the reminders of a confirmed booking.
type Scheduler interface {
	ScheduleReminders(ctx context.Context, booking models.Booking, startsAt time.Time) error
}

// Enqueuer is the part of *asynq.Client the scheduler uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqScheduler enqueues one reminder for the customer and one for the
// provider, Lead before the appointment.
type AsynqScheduler struct {
	Client Enqueuer
	Lead   time.Duration
	Now    func() time.Time
}

func (s *AsynqScheduler) ScheduleReminders(ctx context.Context, booking models.Booking, startsAt time.Time) error {
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now()
	}
	fireAt := startsAt.Add(-s.Lead)
	if !fireAt.After(now) {
		// too close to the appointment
		return nil
	}

	for _, recipient := range []string{booking.CustomerID, booking.ProviderID} {
		task, opts, err := NewReminderTask(Payload{
			BookingID:   booking.ID,
			RecipientID: recipient,
			SlotID:      booking.SlotID,
			StartsAt:    startsAt,
		}, fireAt)
		if err != nil {
			return fmt.Errorf("build reminder: %w", err)
		}
		if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
			return fmt.Errorf("enqueue reminder for %s: %w", recipient, err)
		}
	}
	return nil
}
