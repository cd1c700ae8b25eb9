package guide

import (
	"context"

	"ghtour/database/store"
	"ghtour/models"

	"go.uber.org/zap"
)

// GuideDirectory reads tour guides from the remote store. It never retries.
type GuideDirectory interface {
	// ListAll returns every guide as of the call.
	ListAll(ctx context.Context) ([]models.Guide, error)
	// GetByID returns one guide or a NotFoundError.
	GetByID(ctx context.Context, id string) (*models.Guide, error)
}

// DefaultGuideDirectory is the store-backed GuideDirectory.
type DefaultGuideDirectory struct {
	Store      store.DocumentStore
	Collection string
	Logger     *zap.Logger
}

func NewGuideDirectory(s store.DocumentStore, collection string, logger *zap.Logger) *DefaultGuideDirectory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultGuideDirectory{Store: s, Collection: collection, Logger: logger}
}
