package catalog

import (
	"context"

	"ghtour/database/store"
	"ghtour/models"
	"ghtour/services/guide"

	"go.uber.org/zap"
)

// DestinationCatalog lists catalog entities and joins them with guides.
// Every call is a fresh read from the store; nothing is cached between calls.
type DestinationCatalog interface {
	ListSites(ctx context.Context) ([]*models.Site, error)
	ListAttractions(ctx context.Context) ([]*models.Attraction, error)
	// ListDestinations fetches both collections; a failure on either fails the whole call.
	ListDestinations(ctx context.Context) (*models.Destinations, error)
	GetDestination(ctx context.Context, kind models.EntityKind, id string) (models.CatalogEntity, error)
	// WithGuides pairs a destination with the full guide list.
	WithGuides(ctx context.Context, destination models.CatalogEntity) (*models.DestinationGuides, error)
}

// DefaultDestinationCatalog is the store-backed DestinationCatalog.
type DefaultDestinationCatalog struct {
	Store  store.DocumentStore
	Guides guide.GuideDirectory
	Logger *zap.Logger
}

func NewDestinationCatalog(s store.DocumentStore, guides guide.GuideDirectory, logger *zap.Logger) *DefaultDestinationCatalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultDestinationCatalog{Store: s, Guides: guides, Logger: logger}
}
