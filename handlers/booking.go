package handlers

import (
	"net/http"

	"ghtour/models"
	"ghtour/services/booking"
	"ghtour/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	Bookings booking.BookingService
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid booking request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	id, err := h.Bookings.Create(c.Request.Context(), getPrincipal(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "status": models.BookingPending})
}

// ListBookingsHandler handles GET /api/bookings.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	bookings, err := h.Bookings.List(c.Request.Context(), getPrincipal(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBookingHandler handles DELETE /api/bookings/:id.
// Only pending bookings present in the caller's own list are deleted; anything else reads as
// already gone, so cancelling is safe to repeat.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	logger := getLogger(c)
	ctx := c.Request.Context()
	principal := getPrincipal(c)
	id := c.Param("id")

	bookings, err := h.Bookings.List(ctx, principal)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	owned := false
	for _, b := range bookings {
		if b.ID == id && b.Cancellable() {
			owned = true
			break
		}
	}
	if !owned {
		logger.Info("Cancel of booking not in caller's list", zap.String("bookingId", id), zap.String("userId", principal.ID))
		c.Status(http.StatusNoContent)
		return
	}

	if err := h.Bookings.Cancel(ctx, id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
