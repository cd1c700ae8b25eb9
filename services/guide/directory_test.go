package guide

import (
	"context"
	"errors"
	"testing"

	"ghtour/apperrors"
	"ghtour/database/store"
)

const guides = "tour_guides"

// failingStore answers every call with err.
type failingStore struct {
	store.DocumentStore
	err error
}

func (f *failingStore) Query(ctx context.Context, collection string, filter *store.Filter) ([]store.Document, error) {
	return nil, f.err
}

func (f *failingStore) Get(ctx context.Context, collection, id string) (store.Document, error) {
	return store.Document{}, f.err
}

func seededDirectory() *DefaultGuideDirectory {
	mem := store.NewMemoryStore()
	mem.Seed(guides, "g1", map[string]any{
		"name":        "Ama",
		"photo":       "https://example.com/ama.jpg",
		"rating":      4.9,
		"languages":   []any{"English", "Twi"},
		"specialties": []any{"Castles"},
	})
	mem.Seed(guides, "g2", map[string]any{
		"name":            "Kofi",
		"profile_picture": "https://example.com/kofi.jpg",
	})
	return NewGuideDirectory(mem, guides, nil)
}

func TestListAll(t *testing.T) {
	dir := seededDirectory()

	list, err := dir.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 guides, got %d", len(list))
	}
	if list[0].LanguagesLabel() != "English, Twi" {
		t.Errorf("unexpected languages label %q", list[0].LanguagesLabel())
	}
	if list[1].PhotoURL != "https://example.com/kofi.jpg" {
		t.Errorf("expected profile_picture fallback, got %q", list[1].PhotoURL)
	}
	if list[1].DisplayRating() != 4.5 {
		t.Errorf("expected default rating 4.5, got %v", list[1].DisplayRating())
	}
	if list[1].LanguagesLabel() != "English" {
		t.Errorf("expected default language, got %q", list[1].LanguagesLabel())
	}
}

func TestGetByID(t *testing.T) {
	dir := seededDirectory()

	g, err := dir.GetByID(context.Background(), "g1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Name != "Ama" || g.DisplayRating() != 4.9 {
		t.Errorf("unexpected guide %+v", g)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	dir := seededDirectory()

	for _, id := range []string{"nonexistent", ""} {
		_, err := dir.GetByID(context.Background(), id)
		if !apperrors.IsNotFound(err) {
			t.Errorf("id %q: expected NotFound, got %v", id, err)
		}
	}
}

func TestRemoteUnavailable(t *testing.T) {
	cause := errors.New("deadline exceeded")
	dir := NewGuideDirectory(&failingStore{err: cause}, guides, nil)

	if _, err := dir.ListAll(context.Background()); !apperrors.IsRemoteUnavailable(err) || !errors.Is(err, cause) {
		t.Errorf("expected RemoteUnavailable wrapping cause, got %v", err)
	}
	if _, err := dir.GetByID(context.Background(), "g1"); !apperrors.IsRemoteUnavailable(err) {
		t.Errorf("expected RemoteUnavailable, got %v", err)
	}
}
