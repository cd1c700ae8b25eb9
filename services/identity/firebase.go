package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"ghtour/apperrors"
	"ghtour/models"

	"firebase.google.com/go/v4/auth"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// maxCacheTTL bounds how long a verified token is trusted without asking Firebase again.
const maxCacheTTL = 15 * time.Minute

func (p *FirebaseIdentityProvider) CurrentPrincipal(ctx context.Context, idToken string) (*models.Principal, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	if p.Cache != nil {
		if principal, ok := p.Cache.Get(ctx, idToken); ok {
			return principal, nil
		}
	}

	token, err := p.Auth.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		if auth.IsIDTokenRevoked(err) || auth.IsIDTokenExpired(err) || auth.IsIDTokenInvalid(err) || auth.IsUserDisabled(err) {
			p.Logger.Debug("Rejected ID token", zap.Error(err))
			return nil, apperrors.ErrUnauthenticated
		}
		p.Logger.Error("Failed to verify ID token", zap.Error(err))
		return nil, apperrors.RemoteUnavailable("verify id token", err)
	}

	principal := principalFromToken(token)

	if p.Cache != nil {
		if ttl := p.cacheTTL(token.Expires); ttl > 0 {
			if err := p.Cache.Put(ctx, idToken, principal, ttl); err != nil {
				p.Logger.Warn("Failed to cache session", zap.String("uid", principal.ID), zap.Error(err))
			}
		}
	}
	return principal, nil
}

func (p *FirebaseIdentityProvider) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	email = strings.TrimSpace(email)
	fields := map[string]string{}
	if email == "" {
		fields["email"] = "is required"
	}
	if password == "" {
		fields["password"] = "is required"
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidation(fields)
	}

	res, err := p.Passwords.VerifyPassword(ctx, email, password)
	if err != nil {
		var authErr *apperrors.AuthError
		if errors.As(err, &authErr) {
			p.Logger.Info("Sign-in rejected", zap.String("email", email), zap.String("reason", authErr.Reason))
			return nil, err
		}
		p.Logger.Error("Sign-in failed", zap.String("email", email), zap.Error(err))
		return nil, apperrors.RemoteUnavailable("verify password", err)
	}

	p.Logger.Info("User signed in", zap.String("uid", res.UID))
	return &models.Session{
		Principal: models.Principal{
			ID:          res.UID,
			DisplayName: res.DisplayName,
			Email:       res.Email,
		},
		IDToken:      res.IDToken,
		RefreshToken: res.RefreshToken,
		ExpiresIn:    res.ExpiresIn,
	}, nil
}

func (p *FirebaseIdentityProvider) SignOut(ctx context.Context, principal *models.Principal, idToken string) error {
	if principal == nil || principal.ID == "" {
		return apperrors.ErrUnauthenticated
	}

	if err := p.Auth.RevokeRefreshTokens(ctx, principal.ID); err != nil {
		p.Logger.Error("Failed to revoke refresh tokens", zap.String("uid", principal.ID), zap.Error(err))
		return apperrors.RemoteUnavailable("revoke refresh tokens", err)
	}

	if p.Cache != nil && idToken != "" {
		if err := p.Cache.Delete(ctx, idToken); err != nil {
			p.Logger.Warn("Failed to drop cached session", zap.String("uid", principal.ID), zap.Error(err))
		}
	}

	p.Logger.Info("User signed out", zap.String("uid", principal.ID))
	return nil
}

func (p *FirebaseIdentityProvider) cacheTTL(expiresUnix int64) time.Duration {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	ttl := time.Unix(expiresUnix, 0).Sub(now())
	if ttl > maxCacheTTL {
		ttl = maxCacheTTL
	}
	return ttl
}

func principalFromToken(token *auth.Token) *models.Principal {
	return &models.Principal{
		ID:          token.UID,
		DisplayName: cast.ToString(token.Claims["name"]),
		Email:       cast.ToString(token.Claims["email"]),
	}
}

// IdentityToolkitVerifier checks passwords through the Identity Toolkit REST API,
// the same endpoint the Firebase client SDKs use.
type IdentityToolkitVerifier struct {
	svc *identitytoolkit.Service
}

func NewIdentityToolkitVerifier(ctx context.Context, apiKey string) (*IdentityToolkitVerifier, error) {
	svc, err := identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &IdentityToolkitVerifier{svc: svc}, nil
}

func (v *IdentityToolkitVerifier) VerifyPassword(ctx context.Context, email, password string) (*PasswordSignIn, error) {
	res, err := v.svc.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == 400 {
			return nil, &apperrors.AuthError{Reason: signInReason(gerr.Message), Err: err}
		}
		return nil, err
	}

	return &PasswordSignIn{
		UID:          res.LocalId,
		Email:        res.Email,
		DisplayName:  res.DisplayName,
		IDToken:      res.IdToken,
		RefreshToken: res.RefreshToken,
		ExpiresIn:    res.ExpiresIn,
	}, nil
}

// signInReason turns Identity Toolkit error codes into a message safe to show.
// Unknown and missing accounts read the same as a wrong password.
func signInReason(code string) string {
	switch {
	case strings.HasPrefix(code, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(code, "INVALID_PASSWORD"),
		strings.HasPrefix(code, "INVALID_LOGIN_CREDENTIALS"):
		return "invalid email or password"
	case strings.HasPrefix(code, "USER_DISABLED"):
		return "account disabled"
	case strings.HasPrefix(code, "TOO_MANY_ATTEMPTS_TRY_LATER"):
		return "too many attempts, try again later"
	case strings.HasPrefix(code, "INVALID_EMAIL"):
		return "invalid email address"
	default:
		return "sign-in rejected"
	}
}
