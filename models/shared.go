package models

import "time"

// ReminderPayload is the asynq payload of a booking reminder push.
type ReminderPayload struct {
	UserID      string `json:"userId"`
	BookingID   string `json:"bookingId"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	FireDate    string `json:"fireDate"`
	Destination string `json:"destination,omitempty"`
}

type BookingEventType string

const (
	BookingCreatedEvent   BookingEventType = "booking.created"
	BookingCancelledEvent BookingEventType = "booking.cancelled"
)

// BookingEvent is published on every lifecycle transition of a booking.
type BookingEvent struct {
	Type        BookingEventType `json:"type"`
	BookingID   string           `json:"bookingId"`
	UserID      string           `json:"userId,omitempty"`
	GuideID     string           `json:"guideId,omitempty"`
	Destination string           `json:"destination,omitempty"`
	BookingDate string           `json:"bookingDate,omitempty"`
	BookingTime string           `json:"bookingTime,omitempty"`
	Guests      int              `json:"guests,omitempty"`
	OccurredAt  time.Time        `json:"occurredAt"`
}
