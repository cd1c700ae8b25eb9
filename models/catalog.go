package models

// EntityKind tags the variant of a catalog entity.
type EntityKind string

const (
	KindSite       EntityKind = "site"
	KindAttraction EntityKind = "attraction"
)

// ParseEntityKind accepts the kind names used in URLs.
func ParseEntityKind(s string) (EntityKind, bool) {
	switch s {
	case "site", "sites":
		return KindSite, true
	case "attraction", "attractions":
		return KindAttraction, true
	default:
		return "", false
	}
}

// CatalogEntity is a displayable place: either a *Site or an *Attraction.
// The set of implementations is closed; consumers switch on the concrete type.
type CatalogEntity interface {
	EntityID() string
	EntityKind() EntityKind
	Name() string
	Image() string
	catalogEntity()
}

// Site is a destination record from the Sites collection.
type Site struct {
	ID                  string     `json:"id"`
	Kind                EntityKind `json:"type"`
	DisplayName         string     `json:"site_name"`
	PrimaryImageURL     string     `json:"url_image"`
	About               string     `json:"about"`
	Description         string     `json:"descriptions,omitempty"`
	AdditionalPhotoURLs []string   `json:"additional_photos"`

	Location     string `json:"location,omitempty"`
	OpeningHours string `json:"opening_hours,omitempty"`
	EntranceFee  string `json:"entrance_fee,omitempty"`
}

func (s *Site) EntityID() string       { return s.ID }
func (s *Site) EntityKind() EntityKind { return KindSite }
func (s *Site) Name() string           { return s.DisplayName }
func (s *Site) Image() string          { return s.PrimaryImageURL }
func (*Site) catalogEntity()           {}

// Photos lists the primary image followed by the additional photos.
func (s *Site) Photos() []string {
	photos := make([]string, 0, len(s.AdditionalPhotoURLs)+1)
	if s.PrimaryImageURL != "" {
		photos = append(photos, s.PrimaryImageURL)
	}
	return append(photos, s.AdditionalPhotoURLs...)
}

// Attraction is a record from the attractions collection.
type Attraction struct {
	ID                string            `json:"id"`
	Kind              EntityKind        `json:"type"`
	DisplayName       string            `json:"name"`
	PrimaryImageURL   string            `json:"image"`
	Description       string            `json:"descriptions,omitempty"`
	AdditionalDetails map[string]string `json:"additional_details"`
}

func (a *Attraction) EntityID() string       { return a.ID }
func (a *Attraction) EntityKind() EntityKind { return KindAttraction }
func (a *Attraction) Name() string           { return a.DisplayName }
func (a *Attraction) Image() string          { return a.PrimaryImageURL }
func (*Attraction) catalogEntity()           {}

// DestinationGuides joins one destination with the guides offered for it.
type DestinationGuides struct {
	Destination CatalogEntity `json:"destination"`
	Guides      []Guide       `json:"guides"`
}

// Destinations is the combined home listing.
type Destinations struct {
	Sites       []*Site       `json:"sites"`
	Attractions []*Attraction `json:"attractions"`
}
