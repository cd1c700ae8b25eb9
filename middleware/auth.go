package middleware

import (
	"strings"

	"ghtour/apperrors"
	"ghtour/services/identity"
	"ghtour/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by this package.
const (
	PrincipalKey = "principal"
	LoggerKey    = "logger"
)

// BearerToken extracts the ID token from the Authorization header.
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// FirebaseAuthMiddleware resolves the caller's Firebase ID token into a principal.
// Requests without a valid token are rejected before reaching the handler.
func FirebaseAuthMiddleware(provider identity.IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			utils.RespondError(c, apperrors.ErrUnauthenticated)
			return
		}

		principal, err := provider.CurrentPrincipal(c.Request.Context(), token)
		if err != nil {
			utils.RespondError(c, err)
			return
		}

		c.Set(PrincipalKey, principal)
		if l, ok := c.Get(LoggerKey); ok {
			if logger, ok := l.(*zap.Logger); ok {
				c.Set(LoggerKey, logger.With(zap.String("userId", principal.ID)))
			}
		}
		c.Next()
	}
}
