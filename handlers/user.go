package handlers

import (
	"net/http"

	"ghtour/services/user"
	"ghtour/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Users user.UserService
}

// MeHandler handles GET /api/users/me with the signed-in principal and its profile document.
func (h *UserHandler) MeHandler(c *gin.Context) {
	principal := getPrincipal(c)
	profile, err := h.Users.GetProfile(c.Request.Context(), principal)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"principal": principal, "profile": profile})
}
