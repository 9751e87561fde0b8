package reminder

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeAppointmentReminder = "reminder:appointment"

// Payload is the body of an appointment reminder task.
type Payload struct {
	BookingID   string    `json:"bookingId"`
	RecipientID string    `json:"recipientId"`
	SlotID      string    `json:"slotId"`
	StartsAt    time.Time `json:"startsAt"`
}

// NewReminderTask builds a reminder task that fires at fireAt. The task id is
// derived from booking and recipient so re-scheduling is idempotent.
func NewReminderTask(p Payload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(fmt.Sprintf("reminder:%s:%s", p.BookingID, p.RecipientID)),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}
