package booking

import (
	"context"
	"time"

	"ghtour/config"
	"ghtour/database/store"
	"ghtour/models"

	"go.uber.org/zap"
)

// BookingService creates, lists and cancels bookings for an authenticated principal.
type BookingService interface {
	// Create validates req and inserts a pending booking owned by principal.
	// Identical requests create distinct bookings.
	Create(ctx context.Context, principal *models.Principal, req models.BookingRequest) (string, error)
	// List returns the principal's bookings, newest first.
	List(ctx context.Context, principal *models.Principal) ([]models.Booking, error)
	// Cancel deletes the booking. Cancelling an absent id succeeds.
	Cancel(ctx context.Context, bookingID string) error
}

// ReminderScheduler queues and withdraws the push reminder of a booking.
type ReminderScheduler interface {
	Schedule(ctx context.Context, b models.Booking) error
	Cancel(ctx context.Context, bookingID string) error
}

// EventPublisher emits booking lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event models.BookingEvent) error
}

// DefaultBookingService is the store-backed BookingService.
// Reminders and Events are optional; their failures are logged and never fail a call.
type DefaultBookingService struct {
	Store      store.DocumentStore
	Collection string
	Validator  *BookingValidator
	Reminders  ReminderScheduler
	Events     EventPublisher
	Logger     *zap.Logger
	Now        func() time.Time
	Location   *time.Location
}

func NewBookingService(s store.DocumentStore, reminders ReminderScheduler, events EventPublisher, logger *zap.Logger) *DefaultBookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBookingService{
		Store:      s,
		Collection: config.BookingsCollection,
		Validator:  NewBookingValidator(),
		Reminders:  reminders,
		Events:     events,
		Logger:     logger,
		Now:        time.Now,
		Location:   config.Location(),
	}
}
