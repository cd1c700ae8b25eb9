package identity

import (
	"context"
	"time"

	"ghtour/models"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
)

// IdentityProvider resolves and manages the authenticated principal.
type IdentityProvider interface {
	// CurrentPrincipal returns the principal an ID token belongs to,
	// or apperrors.ErrUnauthenticated when the token is missing, expired or revoked.
	CurrentPrincipal(ctx context.Context, idToken string) (*models.Principal, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	// SignOut revokes every refresh token of the principal and forgets the cached ID token.
	SignOut(ctx context.Context, principal *models.Principal, idToken string) error
}

// AuthClient is the part of the Firebase Auth admin client this package uses.
type AuthClient interface {
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
}

// PasswordVerifier exchanges an email and password for Firebase tokens.
type PasswordVerifier interface {
	VerifyPassword(ctx context.Context, email, password string) (*PasswordSignIn, error)
}

// PasswordSignIn is the result of a successful password check.
type PasswordSignIn struct {
	UID          string
	Email        string
	DisplayName  string
	IDToken      string
	RefreshToken string
	ExpiresIn    int64
}

// SessionCache remembers verified ID tokens so repeat requests skip verification.
type SessionCache interface {
	Get(ctx context.Context, idToken string) (*models.Principal, bool)
	Put(ctx context.Context, idToken string, principal *models.Principal, ttl time.Duration) error
	Delete(ctx context.Context, idToken string) error
}

// FirebaseIdentityProvider is the IdentityProvider backed by Firebase Auth.
// Cache is optional.
type FirebaseIdentityProvider struct {
	Auth      AuthClient
	Passwords PasswordVerifier
	Cache     SessionCache
	Logger    *zap.Logger
	Now       func() time.Time
}

func NewFirebaseIdentityProvider(client AuthClient, passwords PasswordVerifier, cache SessionCache, logger *zap.Logger) *FirebaseIdentityProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FirebaseIdentityProvider{
		Auth:      client,
		Passwords: passwords,
		Cache:     cache,
		Logger:    logger,
		Now:       time.Now,
	}
}
