package services

import (
	"errors"
	"testing"
	"time"

	"StorefrontAPI/external/backend"
	"StorefrontAPI/external/backend/backendtest"
	"StorefrontAPI/internal/model"
)

func newBackend(t *testing.T) (*backendtest.Server, *backend.Client) {
	t.Helper()
	srv := backendtest.NewServer(t)
	return srv, backend.NewClient(srv.URL(), 2*time.Second)
}

func aliceSession() *model.Session {
	return &model.Session{
		ID:           "sid-alice",
		Token:        "tok-alice",
		Role:         model.RoleUser,
		FullName:     "Alice",
		MobileNumber: "9876543210",
		Email:        "alice@example.com",
	}
}

func adminSession() *model.Session {
	return &model.Session{ID: "sid-admin", Token: "tok-admin", Role: model.RoleAdmin}
}

func seedProducts(srv *backendtest.Server, products ...model.Product) {
	for _, p := range products {
		srv.Products[p.ID] = p
	}
}

// wantMessage fails unless err is a Failure showing msg.
func wantMessage(t *testing.T, err error, msg string) {
	t.Helper()
	var f *Failure
	if !errors.As(err, &f) {
		t.Fatalf("expected a Failure %q, got %v", msg, err)
	}
	if f.Message != msg {
		t.Fatalf("expected message %q, got %q", msg, f.Message)
	}
}
