package user

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"ghtour/apperrors"
	"ghtour/database/store"
	"ghtour/models"

	"firebase.google.com/go/v4/auth"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

func (s *DefaultUserService) Register(ctx context.Context, reg models.UserRegistration) (*models.UserProfile, error) {
	reg.Email = strings.TrimSpace(reg.Email)
	reg.FirstName = strings.TrimSpace(reg.FirstName)
	reg.LastName = strings.TrimSpace(reg.LastName)

	if err := s.validateRegistration(reg); err != nil {
		return nil, err
	}

	params := (&auth.UserToCreate{}).
		Email(reg.Email).
		Password(reg.Password).
		DisplayName(reg.DisplayName())

	record, err := s.Accounts.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, apperrors.NewValidation(map[string]string{"email": "is already registered"})
		}
		s.Logger.Error("Failed to create account", zap.String("email", reg.Email), zap.Error(err))
		return nil, apperrors.RemoteUnavailable("create account", err)
	}

	profile := &models.UserProfile{
		ID:        record.UID,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Email:     reg.Email,
		Phone:     strings.TrimSpace(reg.Phone),
		CreatedAt: s.Now().UTC(),
	}

	// The password stays with Firebase Auth; only the profile is stored.
	if err := s.Store.Set(ctx, s.Collection, profile.ID, map[string]any{
		"firstname":    profile.FirstName,
		"lastname":     profile.LastName,
		"email":        profile.Email,
		"phone":        profile.Phone,
		"is_tourguide": profile.IsTourGuide,
		"created_at":   profile.CreatedAt.Format(time.RFC3339Nano),
	}); err != nil {
		s.Logger.Error("Failed to store profile", zap.String("uid", profile.ID), zap.Error(err))
		return nil, apperrors.RemoteUnavailable("set "+s.Collection, err)
	}

	s.Logger.Info("User registered", zap.String("uid", profile.ID))
	return profile, nil
}

func (s *DefaultUserService) GetProfile(ctx context.Context, principal *models.Principal) (*models.UserProfile, error) {
	if principal == nil || principal.ID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	doc, err := s.Store.Get(ctx, s.Collection, principal.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("user", principal.ID)
		}
		s.Logger.Error("Failed to fetch profile", zap.String("uid", principal.ID), zap.Error(err))
		return nil, apperrors.RemoteUnavailable("get "+s.Collection, err)
	}

	str := func(key string) string {
		v, _ := doc.String(key)
		return v
	}
	email := str("email")
	if email == "" {
		email = principal.Email
	}

	return &models.UserProfile{
		ID:          doc.ID,
		FirstName:   str("firstname"),
		LastName:    str("lastname"),
		Email:       email,
		Phone:       str("phone"),
		IsTourGuide: doc.Bool("is_tourguide"),
		CreatedAt:   doc.Time("created_at"),
	}, nil
}

func (s *DefaultUserService) validateRegistration(reg models.UserRegistration) error {
	err := s.validate.Struct(reg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "is required"
		case "email":
			fields[fe.Field()] = "must be a valid email address"
		case "min":
			fields[fe.Field()] = "must be at least " + fe.Param() + " characters"
		case "eqfield":
			fields[fe.Field()] = "does not match password"
		default:
			fields[fe.Field()] = "is invalid"
		}
	}
	return apperrors.NewValidation(fields)
}
