// File: ghtour/handlers/bundle.go
package handlers

import (
	"time"

	"ghtour/database/store"
	"ghtour/services/identity"

	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups all endpoint handlers and what the route middleware needs.
type HandlerBundle struct {
	Identity identity.IdentityProvider

	Auth     *AuthHandler
	Users    *UserHandler
	Catalog  *CatalogHandler
	Guides   *GuideHandler
	Bookings *BookingHandler
	Health   *HealthHandler
}

// HealthHandler reports dependency reachability. A monitor snapshot younger
// than MaxAge is served as is; otherwise every dependency is pinged again.
type HealthHandler struct {
	Redis  []*redis.Client
	Store  store.Pinger
	MaxAge time.Duration
}
