package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"ghtour/apperrors"
	"ghtour/database/store"
	"ghtour/models"

	"firebase.google.com/go/v4/auth"
)

type mockAccounts struct {
	createFunc func(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	calls      int
}

func (m *mockAccounts) CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error) {
	m.calls++
	return m.createFunc(ctx, user)
}

func createdAs(uid string) func(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error) {
	return func(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error) {
		return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: uid}}, nil
	}
}

func validRegistration() models.UserRegistration {
	return models.UserRegistration{
		FirstName:       "Akosua",
		LastName:        "Mensah",
		Email:           "akosua@example.com",
		Phone:           "+233201234567",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func newTestService(accounts AccountCreator, s store.DocumentStore) *DefaultUserService {
	svc := NewUserService(accounts, s, nil)
	svc.Now = func() time.Time { return time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	svc := newTestService(&mockAccounts{createFunc: createdAs("u1")}, mem)

	profile, err := svc.Register(ctx, validRegistration())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.ID != "u1" || profile.IsTourGuide {
		t.Errorf("unexpected profile %+v", profile)
	}

	doc, err := mem.Get(ctx, "users", "u1")
	if err != nil {
		t.Fatalf("expected stored profile: %v", err)
	}
	if _, ok := doc.Fields["password"]; ok {
		t.Error("password must not be stored")
	}
	if doc.Fields["firstname"] != "Akosua" || doc.Fields["is_tourguide"] != false {
		t.Errorf("unexpected stored fields %+v", doc.Fields)
	}

	got, err := svc.GetProfile(ctx, &models.Principal{ID: "u1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "akosua@example.com" || !got.CreatedAt.Equal(profile.CreatedAt) {
		t.Errorf("unexpected profile read back %+v", got)
	}
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(r *models.UserRegistration)
		expectedField string
	}{
		{"missing first name", func(r *models.UserRegistration) { r.FirstName = " " }, "firstname"},
		{"bad email", func(r *models.UserRegistration) { r.Email = "akosua" }, "email"},
		{"short password", func(r *models.UserRegistration) { r.Password, r.ConfirmPassword = "abc", "abc" }, "password"},
		{"mismatched confirmation", func(r *models.UserRegistration) { r.ConfirmPassword = "other12" }, "confirmPassword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := &mockAccounts{createFunc: createdAs("u1")}
			svc := newTestService(accounts, store.NewMemoryStore())
			reg := validRegistration()
			tt.mutate(&reg)

			_, err := svc.Register(context.Background(), reg)
			var verr *apperrors.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !verr.Has(tt.expectedField) {
				t.Errorf("expected %s named, got %v", tt.expectedField, verr.FieldNames())
			}
			if accounts.calls != 0 {
				t.Error("expected no account to be created")
			}
		})
	}
}

func TestRegister_AccountFailure(t *testing.T) {
	mem := store.NewMemoryStore()
	svc := newTestService(&mockAccounts{createFunc: func(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error) {
		return nil, errors.New("quota exceeded")
	}}, mem)

	if _, err := svc.Register(context.Background(), validRegistration()); !apperrors.IsRemoteUnavailable(err) {
		t.Errorf("expected RemoteUnavailable, got %v", err)
	}
	if mem.Count("users") != 0 {
		t.Error("expected no profile to be stored")
	}
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&mockAccounts{}, store.NewMemoryStore())

	if _, err := svc.GetProfile(ctx, nil); !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.GetProfile(ctx, &models.Principal{ID: "ghost"}); !apperrors.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}
