package catalog

import (
	"errors"
	"testing"

	"ghtour/apperrors"
	"ghtour/config"
	"ghtour/database/store"
	"ghtour/models"
)

func TestNormalize_Site(t *testing.T) {
	tests := []struct {
		name           string
		fields         map[string]any
		expectedPhotos int
	}{
		{
			name: "full record",
			fields: map[string]any{
				"site_name":         "Cape Coast Castle",
				"url_image":         "https://example.com/castle.jpg",
				"about":             "A UNESCO world heritage site",
				"descriptions":      "Built in the 17th century",
				"additional_photos": []any{"https://example.com/1.jpg", "https://example.com/2.jpg"},
			},
			expectedPhotos: 2,
		},
		{
			name:           "missing photos defaults to empty",
			fields:         map[string]any{"site_name": "Elmina Castle"},
			expectedPhotos: 0,
		},
		{
			name:           "null photos defaults to empty",
			fields:         map[string]any{"site_name": "Elmina Castle", "additional_photos": nil},
			expectedPhotos: 0,
		},
		{
			name: "attraction-only fields are ignored",
			fields: map[string]any{
				"site_name":          "Kakum",
				"name":               "should not leak",
				"additional_details": map[string]any{"canopy": "yes"},
			},
			expectedPhotos: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entity, err := Normalize(store.Document{ID: "s1", Fields: tt.fields}, config.SitesCollection)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			site, ok := entity.(*models.Site)
			if !ok {
				t.Fatalf("expected *models.Site, got %T", entity)
			}
			if site.EntityKind() != models.KindSite || site.Kind != models.KindSite {
				t.Errorf("expected kind site, got %s", site.Kind)
			}
			if site.AdditionalPhotoURLs == nil {
				t.Fatal("additional photos must never be nil")
			}
			if len(site.AdditionalPhotoURLs) != tt.expectedPhotos {
				t.Errorf("expected %d photos, got %d", tt.expectedPhotos, len(site.AdditionalPhotoURLs))
			}
			if site.ID != "s1" {
				t.Errorf("expected id s1, got %s", site.ID)
			}
		})
	}
}

func TestNormalize_Attraction(t *testing.T) {
	entity, err := Normalize(store.Document{ID: "a1", Fields: map[string]any{
		"name":         "Aburi Botanical Gardens",
		"image":        "https://example.com/aburi.jpg",
		"descriptions": "Gardens in the hills",
		"site_name":    "should not leak",
	}}, config.AttractionsCollection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	attraction, ok := entity.(*models.Attraction)
	if !ok {
		t.Fatalf("expected *models.Attraction, got %T", entity)
	}
	if attraction.Kind != models.KindAttraction {
		t.Errorf("expected kind attraction, got %s", attraction.Kind)
	}
	if attraction.AdditionalDetails == nil || len(attraction.AdditionalDetails) != 0 {
		t.Errorf("expected empty non-nil details, got %#v", attraction.AdditionalDetails)
	}
	if attraction.Name() != "Aburi Botanical Gardens" {
		t.Errorf("unexpected name %q", attraction.Name())
	}
}

func TestNormalize_VariantComesFromCollection(t *testing.T) {
	fields := map[string]any{"site_name": "Both", "name": "Both"}

	site, err := Normalize(store.Document{ID: "x", Fields: fields}, config.SitesCollection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	attraction, err := Normalize(store.Document{ID: "x", Fields: fields}, config.AttractionsCollection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if site.EntityKind() != models.KindSite || attraction.EntityKind() != models.KindAttraction {
		t.Errorf("variants did not follow the source collection: %s, %s", site.EntityKind(), attraction.EntityKind())
	}
}

func TestNormalize_MalformedRecord(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		field      string
	}{
		{"site without site_name", config.SitesCollection, "site_name"},
		{"attraction without name", config.AttractionsCollection, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(store.Document{ID: "bad", Fields: map[string]any{"descriptions": "x"}}, tt.collection)
			var malformed *apperrors.MalformedRecordError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedRecordError, got %v", err)
			}
			if malformed.Field != tt.field || malformed.ID != "bad" {
				t.Errorf("unexpected error details: %+v", malformed)
			}
		})
	}
}

func TestNormalize_UnknownCollection(t *testing.T) {
	if _, err := Normalize(store.Document{ID: "b1"}, config.BookingsCollection); err == nil {
		t.Error("expected an error for a non-catalog collection")
	}
}
