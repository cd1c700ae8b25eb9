package handlers

import (
	"ghtour/middleware"
	"ghtour/models"
	"ghtour/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request-scoped Zap logger from the Gin context or falls back to the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(middleware.LoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// getPrincipal returns the principal set by the auth middleware, or nil.
func getPrincipal(c *gin.Context) *models.Principal {
	if p, exists := c.Get(middleware.PrincipalKey); exists {
		if principal, ok := p.(*models.Principal); ok {
			return principal
		}
	}
	return nil
}
