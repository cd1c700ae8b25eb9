package handlers

import (
	"net/http"

	"ghtour/models"
	"ghtour/services/guide"
	"ghtour/utils"

	"github.com/gin-gonic/gin"
)

type GuideHandler struct {
	Guides guide.GuideDirectory
}

// ListGuidesHandler handles GET /api/guides.
func (h *GuideHandler) ListGuidesHandler(c *gin.Context) {
	guides, err := h.Guides.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"guides": models.GuideCards(guides)})
}

// GetGuideHandler handles GET /api/guides/:id.
func (h *GuideHandler) GetGuideHandler(c *gin.Context) {
	g, err := h.Guides.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g.Card())
}
