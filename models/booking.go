package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingCancelled BookingStatus = "cancelled"
)

// CustomTourLabel is the destination label of bookings made from the guide directory.
const CustomTourLabel = "Custom Tour"

// Booking date and time layouts as persisted in the bookings collection.
const (
	BookingDateLayout = "2006-01-02"
	BookingTimeLayout = "15:04"
)

// Booking represents a guided visit reserved by a user.
// Guide fields are a snapshot taken at booking time and are never re-joined.
type Booking struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	GuideID         string        `json:"guideId"`
	GuideName       string        `json:"guideName"`
	GuidePhoto      string        `json:"guidePhoto"`
	UserName        string        `json:"userName"`
	UserEmail       string        `json:"userEmail"`
	Destination     string        `json:"destination"`
	BookingDate     string        `json:"bookingDate"`
	BookingTime     string        `json:"bookingTime"`
	Guests          int           `json:"guests"`
	SpecialRequests string        `json:"specialRequests"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// Cancellable reports whether the booking can still be cancelled.
func (b Booking) Cancellable() bool {
	return b.Status == BookingPending
}

// GuideSnapshot is the part of a guide that a booking copies.
type GuideSnapshot struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name"`
	Photo       string `json:"photo,omitempty"`
	Destination string `json:"destination,omitempty"`
}

// BookingRequest carries the booking form as entered by the user.
// Date, Time and GuestCount are kept as text so validation can name bad input.
type BookingRequest struct {
	Guide              GuideSnapshot `json:"guide"`
	DestinationLabel   string        `json:"destination,omitempty"`
	FromGuideDirectory bool          `json:"fromGuides,omitempty"`
	Date               string        `json:"date" validate:"required"`
	Time               string        `json:"time" validate:"required"`
	GuestCount         string        `json:"guests" validate:"required"`
	SpecialRequests    string        `json:"specialRequests,omitempty"`
	ContactName        string        `json:"contactName" validate:"required"`
	ContactEmail       string        `json:"contactEmail" validate:"required"`
}

// ResolveDestination picks the label stored on the booking.
func (r BookingRequest) ResolveDestination() string {
	if r.FromGuideDirectory {
		return CustomTourLabel
	}
	if r.DestinationLabel != "" {
		return r.DestinationLabel
	}
	if r.Guide.Destination != "" {
		return r.Guide.Destination
	}
	return CustomTourLabel
}
