package handlers

import (
	"net/http"

	"ghtour/apperrors"
	"ghtour/models"
	"ghtour/services/catalog"
	"ghtour/utils"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	Catalog catalog.DestinationCatalog
}

// ListDestinationsHandler handles GET /api/destinations.
func (h *CatalogHandler) ListDestinationsHandler(c *gin.Context) {
	destinations, err := h.Catalog.ListDestinations(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, destinations)
}

// ListSitesHandler handles GET /api/destinations/sites.
func (h *CatalogHandler) ListSitesHandler(c *gin.Context) {
	sites, err := h.Catalog.ListSites(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sites": sites})
}

// ListAttractionsHandler handles GET /api/destinations/attractions.
func (h *CatalogHandler) ListAttractionsHandler(c *gin.Context) {
	attractions, err := h.Catalog.ListAttractions(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attractions": attractions})
}

// GetDestinationHandler handles GET /api/destinations/:kind/:id and returns the
// destination together with the guides that can be booked for it.
func (h *CatalogHandler) GetDestinationHandler(c *gin.Context) {
	kind, ok := models.ParseEntityKind(c.Param("kind"))
	if !ok {
		utils.RespondError(c, apperrors.NotFound("destination kind", c.Param("kind")))
		return
	}

	ctx := c.Request.Context()
	destination, err := h.Catalog.GetDestination(ctx, kind, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	joined, err := h.Catalog.WithGuides(ctx, destination)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"type":        joined.Destination.EntityKind(),
		"destination": joined.Destination,
		"guides":      models.GuideCards(joined.Guides),
	})
}
