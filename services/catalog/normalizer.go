package catalog

import (
	"fmt"

	"ghtour/apperrors"
	"ghtour/config"
	"ghtour/database/store"
	"ghtour/models"
)

// Source field names, exactly as the mobile client writes them.
const (
	fieldSiteName         = "site_name"
	fieldSiteImage        = "url_image"
	fieldAbout            = "about"
	fieldDescriptions     = "descriptions"
	fieldAdditionalPhotos = "additional_photos"
	fieldLocation         = "location"
	fieldOpeningHours     = "opening_hours"
	fieldEntranceFee      = "entrance_fee"

	fieldAttractionName    = "name"
	fieldAttractionImage   = "image"
	fieldAdditionalDetails = "additional_details"
)

// variants maps a source collection to the variant its records become.
var variants = map[string]models.EntityKind{
	config.SitesCollection:       models.KindSite,
	config.AttractionsCollection: models.KindAttraction,
}

// CollectionFor returns the collection that holds entities of kind.
func CollectionFor(kind models.EntityKind) string {
	if kind == models.KindAttraction {
		return config.AttractionsCollection
	}
	return config.SitesCollection
}

// Normalize converts a raw record into a CatalogEntity. The variant comes from the
// collection the record was read from, never from the record itself. Missing optional
// fields take their defaults; a missing display name is a MalformedRecord.
func Normalize(doc store.Document, collection string) (models.CatalogEntity, error) {
	kind, ok := variants[collection]
	if !ok {
		return nil, fmt.Errorf("collection %q holds no catalog entities", collection)
	}

	switch kind {
	case models.KindSite:
		return normalizeSite(doc, collection)
	case models.KindAttraction:
		return normalizeAttraction(doc, collection)
	default:
		return nil, fmt.Errorf("unhandled entity kind %q", kind)
	}
}

func normalizeSite(doc store.Document, collection string) (*models.Site, error) {
	name, ok := doc.String(fieldSiteName)
	if !ok {
		return nil, apperrors.MalformedRecord(collection, doc.ID, fieldSiteName)
	}
	about, _ := doc.String(fieldAbout)
	description, _ := doc.String(fieldDescriptions)
	image, _ := doc.String(fieldSiteImage)
	location, _ := doc.String(fieldLocation)
	hours, _ := doc.String(fieldOpeningHours)
	fee, _ := doc.String(fieldEntranceFee)

	return &models.Site{
		ID:                  doc.ID,
		Kind:                models.KindSite,
		DisplayName:         name,
		PrimaryImageURL:     image,
		About:               about,
		Description:         description,
		AdditionalPhotoURLs: doc.Strings(fieldAdditionalPhotos),
		Location:            location,
		OpeningHours:        hours,
		EntranceFee:         fee,
	}, nil
}

func normalizeAttraction(doc store.Document, collection string) (*models.Attraction, error) {
	name, ok := doc.String(fieldAttractionName)
	if !ok {
		return nil, apperrors.MalformedRecord(collection, doc.ID, fieldAttractionName)
	}
	image, _ := doc.String(fieldAttractionImage)
	description, _ := doc.String(fieldDescriptions)

	return &models.Attraction{
		ID:                doc.ID,
		Kind:              models.KindAttraction,
		DisplayName:       name,
		PrimaryImageURL:   image,
		Description:       description,
		AdditionalDetails: doc.StringMap(fieldAdditionalDetails),
	}, nil
}
