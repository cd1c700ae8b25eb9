package catalog

import (
	"context"
	"errors"
	"testing"

	"ghtour/apperrors"
	"ghtour/config"
	"ghtour/database/store"
	"ghtour/models"
)

// ────────────────────────────────────────────────
// Test doubles
// ────────────────────────────────────────────────

type mockGuideDirectory struct {
	listAllFunc func(ctx context.Context) ([]models.Guide, error)
}

func (m *mockGuideDirectory) ListAll(ctx context.Context) ([]models.Guide, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return []models.Guide{}, nil
}

func (m *mockGuideDirectory) GetByID(ctx context.Context, id string) (*models.Guide, error) {
	return nil, apperrors.NotFound("guide", id)
}

// collectionFailingStore fails queries against one collection only.
type collectionFailingStore struct {
	*store.MemoryStore
	failing string
	err     error
}

func (s *collectionFailingStore) Query(ctx context.Context, collection string, filter *store.Filter) ([]store.Document, error) {
	if collection == s.failing {
		return nil, s.err
	}
	return s.MemoryStore.Query(ctx, collection, filter)
}

func seededStore() *store.MemoryStore {
	mem := store.NewMemoryStore()
	mem.Seed(config.SitesCollection, "s1", map[string]any{
		"site_name":         "Cape Coast Castle",
		"url_image":         "https://example.com/castle.jpg",
		"additional_photos": []any{"https://example.com/1.jpg"},
	})
	mem.Seed(config.SitesCollection, "s2", map[string]any{"site_name": "Elmina Castle"})
	mem.Seed(config.AttractionsCollection, "a1", map[string]any{
		"name":               "Kakum Canopy Walk",
		"additional_details": map[string]any{"height": "40m"},
	})
	return mem
}

// ────────────────────────────────────────────────
// Tests
// ────────────────────────────────────────────────

func TestListSitesAndAttractions(t *testing.T) {
	c := NewDestinationCatalog(seededStore(), &mockGuideDirectory{}, nil)
	ctx := context.Background()

	sites, err := c.ListSites(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sites) != 2 {
		t.Fatalf("expected 2 sites, got %d", len(sites))
	}
	if len(sites[0].Photos()) != 2 {
		t.Errorf("expected primary + 1 additional photo, got %v", sites[0].Photos())
	}

	attractions, err := c.ListAttractions(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(attractions) != 1 || attractions[0].AdditionalDetails["height"] != "40m" {
		t.Errorf("unexpected attractions %+v", attractions)
	}
}

func TestListSites_EachCallRereads(t *testing.T) {
	mem := seededStore()
	c := NewDestinationCatalog(mem, &mockGuideDirectory{}, nil)
	ctx := context.Background()

	first, _ := c.ListSites(ctx)
	mem.Seed(config.SitesCollection, "s3", map[string]any{"site_name": "Larabanga Mosque"})
	second, _ := c.ListSites(ctx)

	if len(second) != len(first)+1 {
		t.Errorf("expected a fresh read to see the new site: %d then %d", len(first), len(second))
	}
}

func TestListSites_MalformedRecordSurfaces(t *testing.T) {
	mem := seededStore()
	mem.Seed(config.SitesCollection, "broken", map[string]any{"about": "no name"})
	c := NewDestinationCatalog(mem, &mockGuideDirectory{}, nil)

	_, err := c.ListSites(context.Background())
	if !apperrors.IsMalformedRecord(err) {
		t.Fatalf("expected MalformedRecord, got %v", err)
	}
}

func TestListDestinations_AllOrNothing(t *testing.T) {
	cause := errors.New("unavailable")
	s := &collectionFailingStore{MemoryStore: seededStore(), failing: config.AttractionsCollection, err: cause}
	c := NewDestinationCatalog(s, &mockGuideDirectory{}, nil)

	result, err := c.ListDestinations(context.Background())
	if !apperrors.IsRemoteUnavailable(err) {
		t.Fatalf("expected RemoteUnavailable, got %v", err)
	}
	if result != nil {
		t.Errorf("expected no partial result, got %+v", result)
	}
}

func TestListDestinations(t *testing.T) {
	c := NewDestinationCatalog(seededStore(), &mockGuideDirectory{}, nil)

	result, err := c.ListDestinations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Sites) != 2 || len(result.Attractions) != 1 {
		t.Errorf("unexpected result: %d sites, %d attractions", len(result.Sites), len(result.Attractions))
	}
}

func TestGetDestination(t *testing.T) {
	c := NewDestinationCatalog(seededStore(), &mockGuideDirectory{}, nil)
	ctx := context.Background()

	entity, err := c.GetDestination(ctx, models.KindAttraction, "a1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := entity.(*models.Attraction); !ok {
		t.Errorf("expected attraction, got %T", entity)
	}

	if _, err := c.GetDestination(ctx, models.KindSite, "a1"); !apperrors.IsNotFound(err) {
		t.Errorf("expected NotFound looking up an attraction id as a site, got %v", err)
	}
}

func TestWithGuides(t *testing.T) {
	guides := []models.Guide{{ID: "g1", Name: "Ama"}, {ID: "g2", Name: "Kofi"}}
	dir := &mockGuideDirectory{
		listAllFunc: func(ctx context.Context) ([]models.Guide, error) {
			return guides, nil
		},
	}
	c := NewDestinationCatalog(seededStore(), dir, nil)
	ctx := context.Background()

	site, _ := c.GetDestination(ctx, models.KindSite, "s1")
	attraction, _ := c.GetDestination(ctx, models.KindAttraction, "a1")

	for _, dest := range []models.CatalogEntity{site, attraction} {
		joined, err := c.WithGuides(ctx, dest)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if joined.Destination.EntityID() != dest.EntityID() {
			t.Errorf("destination changed in join")
		}
		if len(joined.Guides) != len(guides) {
			t.Errorf("expected the full guide list for %s, got %d", dest.EntityID(), len(joined.Guides))
		}
	}
}

func TestWithGuides_PropagatesDirectoryFailure(t *testing.T) {
	dir := &mockGuideDirectory{
		listAllFunc: func(ctx context.Context) ([]models.Guide, error) {
			return nil, apperrors.RemoteUnavailable("query tour_guides", errors.New("boom"))
		},
	}
	c := NewDestinationCatalog(seededStore(), dir, nil)
	site, _ := c.GetDestination(context.Background(), models.KindSite, "s1")

	if _, err := c.WithGuides(context.Background(), site); !apperrors.IsRemoteUnavailable(err) {
		t.Errorf("expected RemoteUnavailable, got %v", err)
	}
	if _, err := c.WithGuides(context.Background(), nil); err == nil {
		t.Error("expected error for nil destination")
	}
}
