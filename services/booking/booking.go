package booking

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"ghtour/apperrors"
	"ghtour/database/store"
	"ghtour/models"

	"go.uber.org/zap"
)

// Stored field names of the bookings collection.
const (
	fieldUserID          = "userId"
	fieldGuideID         = "guideId"
	fieldGuideName       = "guideName"
	fieldGuidePhoto      = "guidePhoto"
	fieldUserName        = "userName"
	fieldUserEmail       = "userEmail"
	fieldDestination     = "destination"
	fieldBookingDate     = "bookingDate"
	fieldBookingTime     = "bookingTime"
	fieldGuests          = "guests"
	fieldSpecialRequests = "specialRequests"
	fieldStatus          = "status"
	fieldCreatedAt       = "createdAt"
)

func (s *DefaultBookingService) Create(ctx context.Context, principal *models.Principal, req models.BookingRequest) (string, error) {
	if principal == nil || principal.ID == "" {
		return "", apperrors.ErrUnauthenticated
	}

	now := s.now()
	slot, err := s.Validator.Validate(req, startOfDay(now))
	if err != nil {
		return "", err
	}

	b := models.Booking{
		UserID:          principal.ID,
		GuideID:         req.Guide.ID,
		GuideName:       req.Guide.Name,
		GuidePhoto:      req.Guide.Photo,
		UserName:        strings.TrimSpace(req.ContactName),
		UserEmail:       strings.TrimSpace(req.ContactEmail),
		Destination:     req.ResolveDestination(),
		BookingDate:     slot.Date.Format(models.BookingDateLayout),
		BookingTime:     slot.Time,
		Guests:          slot.Guests,
		SpecialRequests: req.SpecialRequests,
		Status:          models.BookingPending,
		CreatedAt:       now,
	}

	id, err := s.Store.Insert(ctx, s.Collection, toFields(b))
	if err != nil {
		s.Logger.Error("Failed to insert booking", zap.String("userId", principal.ID), zap.Error(err))
		return "", apperrors.RemoteUnavailable("insert "+s.Collection, err)
	}
	b.ID = id

	s.Logger.Info("Booking created",
		zap.String("bookingId", id),
		zap.String("userId", b.UserID),
		zap.String("guideId", b.GuideID),
		zap.String("date", b.BookingDate),
	)

	s.afterCreate(ctx, b)
	return id, nil
}

func (s *DefaultBookingService) List(ctx context.Context, principal *models.Principal) ([]models.Booking, error) {
	if principal == nil || principal.ID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	docs, err := s.Store.Query(ctx, s.Collection, store.Eq(fieldUserID, principal.ID))
	if err != nil {
		s.Logger.Error("Failed to list bookings", zap.String("userId", principal.ID), zap.Error(err))
		return nil, apperrors.RemoteUnavailable("query "+s.Collection, err)
	}

	bookings := make([]models.Booking, 0, len(docs))
	for _, doc := range docs {
		bookings = append(bookings, DecodeBooking(doc))
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		if !bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
		}
		return bookings[i].ID < bookings[j].ID
	})
	return bookings, nil
}

func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID string) error {
	if bookingID == "" {
		return apperrors.NewValidation(map[string]string{"bookingId": "is required"})
	}

	// Firestore deletes report success for absent documents, so look first.
	if _, err := s.Store.Get(ctx, s.Collection, bookingID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.Logger.Debug("Booking already absent", zap.String("bookingId", bookingID))
			return nil
		}
		s.Logger.Error("Failed to look up booking", zap.String("bookingId", bookingID), zap.Error(err))
		return apperrors.RemoteUnavailable("get "+s.Collection, err)
	}

	err := s.Store.Delete(ctx, s.Collection, bookingID)
	if errors.Is(err, store.ErrNotFound) {
		s.Logger.Debug("Booking already absent", zap.String("bookingId", bookingID))
		return nil
	}
	if err != nil {
		s.Logger.Error("Failed to delete booking", zap.String("bookingId", bookingID), zap.Error(err))
		return apperrors.RemoteUnavailable("delete "+s.Collection, err)
	}

	s.Logger.Info("Booking cancelled", zap.String("bookingId", bookingID))
	s.afterCancel(ctx, bookingID)
	return nil
}

func (s *DefaultBookingService) afterCreate(ctx context.Context, b models.Booking) {
	if s.Reminders != nil {
		if err := s.Reminders.Schedule(ctx, b); err != nil {
			s.Logger.Warn("Failed to schedule reminder", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
	s.publish(ctx, models.BookingEvent{
		Type:        models.BookingCreatedEvent,
		BookingID:   b.ID,
		UserID:      b.UserID,
		GuideID:     b.GuideID,
		Destination: b.Destination,
		BookingDate: b.BookingDate,
		BookingTime: b.BookingTime,
		Guests:      b.Guests,
		OccurredAt:  b.CreatedAt,
	})
}

func (s *DefaultBookingService) afterCancel(ctx context.Context, bookingID string) {
	if s.Reminders != nil {
		if err := s.Reminders.Cancel(ctx, bookingID); err != nil {
			s.Logger.Warn("Failed to withdraw reminder", zap.String("bookingId", bookingID), zap.Error(err))
		}
	}
	s.publish(ctx, models.BookingEvent{
		Type:       models.BookingCancelledEvent,
		BookingID:  bookingID,
		OccurredAt: s.now(),
	})
}

func (s *DefaultBookingService) publish(ctx context.Context, event models.BookingEvent) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, event); err != nil {
		s.Logger.Warn("Failed to publish booking event",
			zap.String("type", string(event.Type)),
			zap.String("bookingId", event.BookingID),
			zap.Error(err),
		)
	}
}

func (s *DefaultBookingService) now() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func toFields(b models.Booking) map[string]any {
	return map[string]any{
		fieldUserID:          b.UserID,
		fieldGuideID:         b.GuideID,
		fieldGuideName:       b.GuideName,
		fieldGuidePhoto:      b.GuidePhoto,
		fieldUserName:        b.UserName,
		fieldUserEmail:       b.UserEmail,
		fieldDestination:     b.Destination,
		fieldBookingDate:     b.BookingDate,
		fieldBookingTime:     b.BookingTime,
		fieldGuests:          b.Guests,
		fieldSpecialRequests: b.SpecialRequests,
		fieldStatus:          string(b.Status),
		fieldCreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// DecodeBooking reads a bookings document. Missing fields decode to zero values.
func DecodeBooking(doc store.Document) models.Booking {
	str := func(key string) string {
		v, _ := doc.String(key)
		return v
	}

	status := models.BookingStatus(str(fieldStatus))
	if status == "" {
		status = models.BookingPending
	}

	return models.Booking{
		ID:              doc.ID,
		UserID:          str(fieldUserID),
		GuideID:         str(fieldGuideID),
		GuideName:       str(fieldGuideName),
		GuidePhoto:      str(fieldGuidePhoto),
		UserName:        str(fieldUserName),
		UserEmail:       str(fieldUserEmail),
		Destination:     str(fieldDestination),
		BookingDate:     str(fieldBookingDate),
		BookingTime:     str(fieldBookingTime),
		Guests:          doc.Int(fieldGuests),
		SpecialRequests: str(fieldSpecialRequests),
		Status:          status,
		CreatedAt:       doc.Time(fieldCreatedAt),
	}
}
