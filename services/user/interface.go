package user

import (
	"context"
	"time"

	"ghtour/config"
	"ghtour/database/store"
	"ghtour/models"

	"firebase.google.com/go/v4/auth"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type UserService interface {
	// Register creates the Firebase account and its users/{uid} profile.
	Register(ctx context.Context, reg models.UserRegistration) (*models.UserProfile, error)
	GetProfile(ctx context.Context, principal *models.Principal) (*models.UserProfile, error)
}

// AccountCreator is the part of the Firebase Auth admin client registration needs.
type AccountCreator interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Accounts   AccountCreator
	Store      store.DocumentStore
	Collection string
	Logger     *zap.Logger
	Now        func() time.Time
	validate   *validator.Validate
}

func NewUserService(accounts AccountCreator, s store.DocumentStore, logger *zap.Logger) *DefaultUserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultUserService{
		Accounts:   accounts,
		Store:      s,
		Collection: config.UsersCollection,
		Logger:     logger,
		Now:        time.Now,
		validate:   newValidator(),
	}
}
