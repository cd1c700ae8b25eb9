package handlers

import (
	"net/http"
	"time"

	"ghtour/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandlerFunc handles GET /health.
func (h *HealthHandler) HealthHandlerFunc(c *gin.Context) {
	status := utils.GetHealthStatus()
	if h.MaxAge <= 0 || status.CheckedAt.IsZero() || time.Since(status.CheckedAt) > h.MaxAge {
		status = utils.CheckHealth(c.Request.Context(), h.Redis, h.Store)
	}

	code := http.StatusOK
	if !status.Store {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":  http.StatusText(code),
		"message": "Akwaaba, this is ghtour",
		"health":  status,
	})
}
