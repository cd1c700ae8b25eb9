package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ghtour/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSendReminder = "reminder:send"
	ReminderQueue    = "default"
)

// ReminderTaskID is the asynq task id of a booking's reminder, so it can be withdrawn.
func ReminderTaskID(bookingID string) string {
	return "reminder:" + bookingID
}

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.Queue(ReminderQueue),
		asynq.TaskID(ReminderTaskID(payload.BookingID)),
		asynq.MaxRetry(3),
	}

	return task, opts, nil
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskDeleter is satisfied by *asynq.Inspector.
type TaskDeleter interface {
	DeleteTask(queue, id string) error
}

// AsynqReminderScheduler queues a push reminder LeadTime before each booked slot.
type AsynqReminderScheduler struct {
	Client    Enqueuer
	Inspector TaskDeleter
	LeadTime  time.Duration
	Location  *time.Location
	Now       func() time.Time
}

func NewAsynqReminderScheduler(client Enqueuer, inspector TaskDeleter, leadTime time.Duration, loc *time.Location) *AsynqReminderScheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &AsynqReminderScheduler{
		Client:    client,
		Inspector: inspector,
		LeadTime:  leadTime,
		Location:  loc,
		Now:       time.Now,
	}
}

// Schedule enqueues the reminder. Slots already in the past are skipped.
func (s *AsynqReminderScheduler) Schedule(ctx context.Context, b models.Booking) error {
	slot, err := time.ParseInLocation(models.BookingDateLayout+" "+models.BookingTimeLayout, b.BookingDate+" "+b.BookingTime, s.Location)
	if err != nil {
		return fmt.Errorf("reminder for %s: %w", b.ID, err)
	}
	if !slot.After(s.Now()) {
		return nil
	}

	task, opts, err := NewReminderTask(ReminderFor(b), slot.Add(-s.LeadTime))
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return err
	}
	return nil
}

// Cancel withdraws the reminder of a booking. A missing task is not an error.
func (s *AsynqReminderScheduler) Cancel(ctx context.Context, bookingID string) error {
	err := s.Inspector.DeleteTask(ReminderQueue, ReminderTaskID(bookingID))
	if err == nil || errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	return err
}

// ReminderFor builds the push text for a booking.
func ReminderFor(b models.Booking) models.ReminderPayload {
	guide := b.GuideName
	if guide == "" {
		guide = "Your guide"
	}
	return models.ReminderPayload{
		UserID:      b.UserID,
		BookingID:   b.ID,
		Title:       "Upcoming tour: " + b.Destination,
		Body:        fmt.Sprintf("%s meets you on %s at %s.", guide, b.BookingDate, b.BookingTime),
		FireDate:    b.BookingDate + "T" + b.BookingTime,
		Destination: b.Destination,
	}
}
