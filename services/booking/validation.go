package booking

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"ghtour/apperrors"
	"ghtour/models"

	"github.com/go-playground/validator/v10"
)

// Accepted wall-clock inputs. The first is what gets stored.
var timeLayouts = []string{models.BookingTimeLayout, "3:04 PM", "03:04 PM", "3:04PM"}

// BookingValidator checks a booking form and reports every bad field at once.
type BookingValidator struct {
	validate *validator.Validate
}

func NewBookingValidator() *BookingValidator {
	v := validator.New()
	// Report fields under the names the client sent them as.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &BookingValidator{validate: v}
}

// ParsedSlot is a validated booking date, time and party size.
type ParsedSlot struct {
	Date   time.Time
	Time   string
	Guests int
}

// Validate runs the required-field rules and then the format rules on the fields
// that passed them. today is the first bookable calendar day.
func (v *BookingValidator) Validate(req models.BookingRequest, today time.Time) (*ParsedSlot, error) {
	req = trimRequest(req)
	fields := map[string]string{}

	if err := v.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		for _, fe := range verrs {
			fields[fieldName(fe)] = reason(fe)
		}
	}

	slot := &ParsedSlot{}

	if _, failed := fields["date"]; !failed {
		d, err := time.ParseInLocation(models.BookingDateLayout, strings.TrimSpace(req.Date), today.Location())
		switch {
		case err != nil:
			fields["date"] = "must be a date formatted YYYY-MM-DD"
		case d.Before(today):
			fields["date"] = "must be today or later"
		default:
			slot.Date = d
		}
	}

	if _, failed := fields["time"]; !failed {
		t, ok := parseWallClock(req.Time)
		if !ok {
			fields["time"] = "must be a time such as 14:30 or 2:30 PM"
		} else {
			slot.Time = t
		}
	}

	if _, failed := fields["guests"]; !failed {
		n, err := strconv.Atoi(strings.TrimSpace(req.GuestCount))
		switch {
		case err != nil:
			fields["guests"] = "must be a whole number"
		case n < 1:
			fields["guests"] = "must be at least 1"
		default:
			slot.Guests = n
		}
	}

	if len(fields) > 0 {
		return nil, apperrors.NewValidation(fields)
	}
	return slot, nil
}

// trimRequest drops surrounding whitespace so a blank entry counts as missing.
func trimRequest(req models.BookingRequest) models.BookingRequest {
	req.Guide.ID = strings.TrimSpace(req.Guide.ID)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.GuestCount = strings.TrimSpace(req.GuestCount)
	req.ContactName = strings.TrimSpace(req.ContactName)
	req.ContactEmail = strings.TrimSpace(req.ContactEmail)
	return req
}

func parseWallClock(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(models.BookingTimeLayout), true
		}
	}
	return "", false
}

// fieldName drops the struct name from the namespace, so nested fields read "guide.id".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	default:
		return "is invalid"
	}
}
