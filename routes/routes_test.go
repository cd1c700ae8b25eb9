package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ghtour/apperrors"
	"ghtour/config"
	"ghtour/database/store"
	"ghtour/handlers"
	"ghtour/models"
	"ghtour/services/booking"
	"ghtour/services/catalog"
	"ghtour/services/guide"
	"ghtour/services/user"

	"github.com/gin-gonic/gin"
)

// tokenIdentity maps bearer tokens straight to user ids.
type tokenIdentity struct{}

func (tokenIdentity) CurrentPrincipal(ctx context.Context, idToken string) (*models.Principal, error) {
	switch idToken {
	case "token-u1":
		return &models.Principal{ID: "u1"}, nil
	case "token-u2":
		return &models.Principal{ID: "u2"}, nil
	}
	return nil, apperrors.ErrUnauthenticated
}

func (tokenIdentity) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	return nil, &apperrors.AuthError{Reason: "invalid email or password"}
}

func (tokenIdentity) SignOut(ctx context.Context, principal *models.Principal, idToken string) error {
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := store.NewMemoryStore()
	mem.Seed(config.SitesCollection, "s1", map[string]any{"site_name": "Cape Coast Castle"})
	mem.Seed(config.AttractionsCollection, "a1", map[string]any{"name": "Kakum Canopy Walk"})
	mem.Seed(config.GuidesCollection, "g1", map[string]any{"name": "Ama"})
	mem.Seed(config.GuidesCollection, "g2", map[string]any{"name": "Kofi", "rating": 4.8})

	guides := guide.NewGuideDirectory(mem, config.GuidesCollection, nil)
	bookings := booking.NewBookingService(mem, nil, nil, nil)
	bookings.Location = time.UTC
	bookings.Now = func() time.Time { return time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC) }

	hb := &handlers.HandlerBundle{
		Identity: tokenIdentity{},
		Auth:     &handlers.AuthHandler{Identity: tokenIdentity{}, Users: user.NewUserService(nil, mem, nil)},
		Users:    &handlers.UserHandler{Users: user.NewUserService(nil, mem, nil)},
		Catalog:  &handlers.CatalogHandler{Catalog: catalog.NewDestinationCatalog(mem, guides, nil)},
		Guides:   &handlers.GuideHandler{Guides: guides},
		Bookings: &handlers.BookingHandler{Bookings: bookings},
		Health:   &handlers.HealthHandler{Store: mem},
	}

	r := gin.New()
	RegisterRoutes(r, hb)
	return r, mem
}

func do(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bookingBody() map[string]any {
	return map[string]any{
		"guide":        map[string]any{"id": "g1", "name": "Ama"},
		"fromGuides":   true,
		"date":         "2025-06-01",
		"time":         "10:00",
		"guests":       "2",
		"contactName":  "Akosua Mensah",
		"contactEmail": "akosua@example.com",
	}
}

func TestBookingLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/bookings", "token-u1", bookingBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = do(r, http.MethodGet, "/api/bookings", "token-u1", nil)
	var listed struct {
		Bookings []models.Booking `json:"bookings"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &listed)
	if len(listed.Bookings) != 1 || listed.Bookings[0].ID != created.ID || listed.Bookings[0].Destination != "Custom Tour" {
		t.Fatalf("unexpected list %+v", listed.Bookings)
	}

	// Another user cannot cancel it.
	if w := do(r, http.MethodDelete, "/api/bookings/"+created.ID, "token-u2", nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	w = do(r, http.MethodGet, "/api/bookings", "token-u1", nil)
	_ = json.Unmarshal(w.Body.Bytes(), &listed)
	if len(listed.Bookings) != 1 {
		t.Fatal("booking deleted by a user who does not own it")
	}

	if w := do(r, http.MethodDelete, "/api/bookings/"+created.ID, "token-u1", nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	w = do(r, http.MethodGet, "/api/bookings", "token-u1", nil)
	_ = json.Unmarshal(w.Body.Bytes(), &listed)
	if len(listed.Bookings) != 0 {
		t.Errorf("expected empty list after cancel, got %+v", listed.Bookings)
	}
}

func TestCreateBooking_ValidationError(t *testing.T) {
	r, mem := newTestRouter(t)

	body := bookingBody()
	body["contactEmail"] = ""
	w := do(r, http.MethodPost, "/api/bookings", "token-u1", body)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}

	var resp struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != apperrors.CodeValidation {
		t.Errorf("expected code %s, got %s", apperrors.CodeValidation, resp.Code)
	}
	if _, ok := resp.Fields["contactEmail"]; !ok {
		t.Errorf("expected contactEmail in fields, got %+v", resp.Fields)
	}
	if mem.Count(config.BookingsCollection) != 0 {
		t.Error("expected no booking stored")
	}
}

func TestBookings_RequireSignIn(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, token := range []string{"", "bogus"} {
		if w := do(r, http.MethodGet, "/api/bookings", token, nil); w.Code != http.StatusUnauthorized {
			t.Errorf("token %q: expected 401, got %d", token, w.Code)
		}
	}
}

func TestDestinationWithGuides(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/destinations/site/s1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Type   string             `json:"type"`
		Guides []models.GuideCard `json:"guides"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Type != "site" || len(resp.Guides) != 2 {
		t.Errorf("unexpected response %+v", resp)
	}
	if resp.Guides[0].DisplayPhoto != models.GuidePhotoPlaceholder {
		t.Errorf("expected placeholder photo, got %q", resp.Guides[0].DisplayPhoto)
	}

	if w := do(r, http.MethodGet, "/api/destinations/attraction/missing", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/destinations/volcanoes/s1", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown kind, got %d", w.Code)
	}
}

func TestGuidesAndLogin(t *testing.T) {
	r, _ := newTestRouter(t)

	if w := do(r, http.MethodGet, "/api/guides/nonexistent", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/guides", "", nil); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "a@example.com", "password": "x"}); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Errorf("expected 200 from /health, got %d", w.Code)
	}
}

func TestMe_ReturnsPrincipalAndProfile(t *testing.T) {
	r, mem := newTestRouter(t)
	mem.Seed(config.UsersCollection, "u1", map[string]any{"firstname": "Akosua", "lastname": "Mensah", "email": "akosua@example.com"})

	w := do(r, http.MethodGet, "/api/users/me", "token-u1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Principal models.Principal   `json:"principal"`
		Profile   models.UserProfile `json:"profile"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Principal.ID != "u1" || resp.Profile.ID != "u1" || resp.Profile.FirstName != "Akosua" {
		t.Errorf("unexpected response %+v", resp)
	}

	if w := do(r, http.MethodGet, "/api/users/me", "token-u2", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for a user without a profile, got %d", w.Code)
	}
}
