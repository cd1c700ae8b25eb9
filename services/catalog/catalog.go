package catalog

import (
	"context"
	"errors"
	"fmt"

	"ghtour/apperrors"
	"ghtour/config"
	"ghtour/database/store"
	"ghtour/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func (c *DefaultDestinationCatalog) ListSites(ctx context.Context) ([]*models.Site, error) {
	entities, err := c.fetch(ctx, config.SitesCollection)
	if err != nil {
		return nil, err
	}

	sites := make([]*models.Site, 0, len(entities))
	for _, e := range entities {
		switch v := e.(type) {
		case *models.Site:
			sites = append(sites, v)
		case *models.Attraction:
			return nil, fmt.Errorf("attraction %s read from %s", v.ID, config.SitesCollection)
		}
	}
	return sites, nil
}

func (c *DefaultDestinationCatalog) ListAttractions(ctx context.Context) ([]*models.Attraction, error) {
	entities, err := c.fetch(ctx, config.AttractionsCollection)
	if err != nil {
		return nil, err
	}

	attractions := make([]*models.Attraction, 0, len(entities))
	for _, e := range entities {
		switch v := e.(type) {
		case *models.Attraction:
			attractions = append(attractions, v)
		case *models.Site:
			return nil, fmt.Errorf("site %s read from %s", v.ID, config.AttractionsCollection)
		}
	}
	return attractions, nil
}

func (c *DefaultDestinationCatalog) ListDestinations(ctx context.Context) (*models.Destinations, error) {
	var (
		sites       []*models.Site
		attractions []*models.Attraction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sites, err = c.ListSites(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		attractions, err = c.ListAttractions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.Destinations{Sites: sites, Attractions: attractions}, nil
}

func (c *DefaultDestinationCatalog) GetDestination(ctx context.Context, kind models.EntityKind, id string) (models.CatalogEntity, error) {
	collection := CollectionFor(kind)
	doc, err := c.Store.Get(ctx, collection, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound(string(kind), id)
		}
		c.Logger.Error("Failed to fetch destination", zap.String("collection", collection), zap.String("id", id), zap.Error(err))
		return nil, apperrors.RemoteUnavailable("get "+collection, err)
	}
	return c.normalize(doc, collection)
}

func (c *DefaultDestinationCatalog) WithGuides(ctx context.Context, destination models.CatalogEntity) (*models.DestinationGuides, error) {
	if destination == nil {
		return nil, errors.New("destination is required")
	}

	// No destination-to-guide assignment exists in the data, so every guide is offered.
	guides, err := c.Guides.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &models.DestinationGuides{Destination: destination, Guides: guides}, nil
}

func (c *DefaultDestinationCatalog) fetch(ctx context.Context, collection string) ([]models.CatalogEntity, error) {
	docs, err := c.Store.Query(ctx, collection, nil)
	if err != nil {
		c.Logger.Error("Failed to list catalog", zap.String("collection", collection), zap.Error(err))
		return nil, apperrors.RemoteUnavailable("query "+collection, err)
	}

	entities := make([]models.CatalogEntity, 0, len(docs))
	for _, doc := range docs {
		e, err := c.normalize(doc, collection)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (c *DefaultDestinationCatalog) normalize(doc store.Document, collection string) (models.CatalogEntity, error) {
	e, err := Normalize(doc, collection)
	if err != nil {
		c.Logger.Warn("Malformed catalog record", zap.String("collection", collection), zap.String("id", doc.ID), zap.Error(err))
		return nil, err
	}
	return e, nil
}
