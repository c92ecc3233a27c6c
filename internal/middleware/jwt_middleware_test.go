package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/state"

	"github.com/labstack/echo/v4"
)

type fakeLoader struct {
	sessions map[string]*model.Session
	calls    int
}

func (f *fakeLoader) Restore(_ context.Context, id string) (*model.Session, error) {
	f.calls++
	return f.sessions[id], nil
}

func TestSessionTokensRoundTrip(t *testing.T) {
	tokens := NewSessionTokens("secret", time.Hour)
	value, err := tokens.Generate("sid-1", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	sid, err := tokens.Parse(value)
	if err != nil || sid != "sid-1" {
		t.Fatalf("got %q %v", sid, err)
	}

	other := NewSessionTokens("another", time.Hour)
	if _, err := other.Parse(value); err == nil {
		t.Fatal("a cookie signed with another secret must be rejected")
	}

	expired, _ := tokens.Generate("sid-2", time.Now().Add(-2*time.Hour))
	if _, err := tokens.Parse(expired); err == nil {
		t.Fatal("an expired cookie must be rejected")
	}
}

func TestSessionMiddleware(t *testing.T) {
	e := echo.New()
	tokens := NewSessionTokens("secret", time.Hour)
	registry := state.NewRegistry()
	loader := &fakeLoader{sessions: map[string]*model.Session{
		"known": {ID: "known", Token: "tok", Role: model.RoleAdmin},
	}}

	var seen *model.Session
	var shop *state.Shopping
	h := SessionMiddleware(tokens, loader, registry)(func(c echo.Context) error {
		seen = GetSession(c)
		shop = GetShopping(c)
		return c.NoContent(http.StatusOK)
	})

	t.Run("missing cookie issues a new session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		if err := h(c); err != nil {
			t.Fatal(err)
		}
		cookies := rec.Result().Cookies()
		if len(cookies) != 1 || cookies[0].Name != SessionCookieName || !cookies[0].HttpOnly {
			t.Fatalf("expected one session cookie, got %+v", cookies)
		}
		sid, err := tokens.Parse(cookies[0].Value)
		if err != nil || sid != seen.ID {
			t.Fatalf("cookie sid %q does not match session %q (%v)", sid, seen.ID, err)
		}
		if seen.IsAuthenticated() {
			t.Fatal("new session must be anonymous")
		}
		if shop == nil {
			t.Fatal("shopping state missing")
		}
	})

	t.Run("valid cookie restores the stored session", func(t *testing.T) {
		value, _ := tokens.Generate("known", time.Now())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: value})
		rec := httptest.NewRecorder()
		if err := h(e.NewContext(req, rec)); err != nil {
			t.Fatal(err)
		}
		if len(rec.Result().Cookies()) != 0 {
			t.Fatal("a valid cookie must not be reissued")
		}
		if !seen.IsAdmin() {
			t.Fatalf("expected restored admin session, got %+v", seen)
		}
		if shop != registry.Get("known") {
			t.Fatal("shopping state must be keyed by session id")
		}
	})

	t.Run("tampered cookie starts over", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})
		rec := httptest.NewRecorder()
		if err := h(e.NewContext(req, rec)); err != nil {
			t.Fatal(err)
		}
		if seen.ID == "known" || len(rec.Result().Cookies()) != 1 {
			t.Fatal("expected a fresh session")
		}
	})
}

func TestCookielessRequestsKeepNoShoppingState(t *testing.T) {
	e := echo.New()
	registry := state.NewRegistry()
	h := SessionMiddleware(NewSessionTokens("secret", time.Hour), &fakeLoader{}, registry)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 100; i++ {
		rec := httptest.NewRecorder()
		if err := h(e.NewContext(httptest.NewRequest(http.MethodGet, "/healthz", nil), rec)); err != nil {
			t.Fatal(err)
		}
	}
	if registry.Len() != 0 {
		t.Fatalf("expected no shopping state, got %d", registry.Len())
	}

	var first, second *state.Shopping
	lazy := SessionMiddleware(NewSessionTokens("secret", time.Hour), &fakeLoader{}, registry)(func(c echo.Context) error {
		first = GetShopping(c)
		second = GetShopping(c)
		return c.NoContent(http.StatusOK)
	})
	if err := lazy(e.NewContext(httptest.NewRequest(http.MethodGet, "/cart", nil), httptest.NewRecorder())); err != nil {
		t.Fatal(err)
	}
	if first == nil || first != second || registry.Len() != 1 {
		t.Fatalf("expected one state created on first use, got %d", registry.Len())
	}
}
