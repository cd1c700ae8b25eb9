package config

// Store backends accepted by STORE_BACKEND.
const (
	StoreFirestore = "firestore"
	StoreMongo     = "mongo"
	StoreMemory    = "memory"
)

// Collection names as they exist in the ghtour Firebase project.
const (
	SitesCollection       = "Sites"
	AttractionsCollection = "attractions"
	GuidesCollection      = "tour_guides"
	BookingsCollection    = "bookings"
	UsersCollection       = "users"
)

// ServiceAccount holds essential fields from your JSON key
type ServiceAccount struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	ProjectID   string `json:"project_id"`
}

// GuidesCollectionName returns the configured guide collection.
func GuidesCollectionName() string {
	if AppConfig.GuidesCollection != "" {
		return AppConfig.GuidesCollection
	}
	return GuidesCollection
}
