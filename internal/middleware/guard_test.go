package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/state"

	"github.com/labstack/echo/v4"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		authed   bool
		role     string
		redirect string
		status   int
	}{
		{"home is public", "/", false, "", "", 0},
		{"listing is public", "/products", false, "", "", 0},
		{"detail is public", "/products/12", false, "", "", 0},
		{"notification is public", "/payments/notification", false, "", "", 0},
		{"stripe webhook is public", "/payments/stripe/webhook", false, "", "", 0},
		{"cart needs login", "/cart", false, "", LoginPath, http.StatusUnauthorized},
		{"payment needs login", "/payment", false, "", LoginPath, http.StatusUnauthorized},
		{"admin needs login first", "/admin/products", false, "", LoginPath, http.StatusUnauthorized},
		{"user on cart", "/cart", true, model.RoleUser, "", 0},
		{"user on admin", "/admin/products", true, model.RoleUser, HomePath, http.StatusForbidden},
		{"user on admin root", "/admin", true, model.RoleUser, HomePath, http.StatusForbidden},
		{"admin on products", "/admin/products", true, model.RoleAdmin, "", 0},
		{"admin on product id", "/admin/products/7", true, model.RoleAdmin, "", 0},
		{"admin on export", "/admin/products/export", true, model.RoleAdmin, "", 0},
		{"admin on unknown", "/admin/users", true, model.RoleAdmin, AdminHomePath, http.StatusNotFound},
		{"admin on root", "/admin", true, model.RoleAdmin, AdminHomePath, http.StatusNotFound},
		{"admin on nested unknown", "/admin/products/7/images", true, model.RoleAdmin, AdminHomePath, http.StatusNotFound},
		{"admin prefix lookalike", "/administrator", true, model.RoleUser, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.path, tt.authed, tt.role)
			if d.Redirect != tt.redirect || d.Status != tt.status {
				t.Fatalf("Decide(%q, %v, %q) = %+v, want redirect=%q status=%d",
					tt.path, tt.authed, tt.role, d, tt.redirect, tt.status)
			}
		})
	}
}

func guarded(sess *model.Session, shop *state.Shopping) echo.HandlerFunc {
	h := Guard()(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return func(c echo.Context) error {
		c.Set(sessionKey, sess)
		c.Set(shoppingKey, shop)
		return h(c)
	}
}

func TestGuardRendersRedirect(t *testing.T) {
	e := echo.New()

	t.Run("json client gets redirect body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := guarded(&model.Session{ID: "s"}, state.NewShopping())(c); err != nil {
			t.Fatal(err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if body := rec.Body.String(); body != "{\"redirect\":\"/login\"}\n" {
			t.Fatalf("unexpected body %q", body)
		}
	})

	t.Run("browser gets see other", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		sess := &model.Session{ID: "s", Token: "tok", Role: model.RoleUser}
		if err := guarded(sess, state.NewShopping())(c); err != nil {
			t.Fatal(err)
		}
		if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != HomePath {
			t.Fatalf("expected 303 to /, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
		}
	})

	t.Run("allowed passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		sess := &model.Session{ID: "s", Token: "tok", Role: model.RoleUser}
		if err := guarded(sess, state.NewShopping())(c); err != nil {
			t.Fatal(err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestRequireSelectedAddress(t *testing.T) {
	e := echo.New()
	shop := state.NewShopping()
	h := RequireSelectedAddress(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/payment", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(shoppingKey, shop)
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected redirect to address, got %d", rec.Code)
	}

	shop.SetAddresses([]model.Address{{ID: 4, AddressType: model.AddressHome}})
	if _, err := shop.SelectAddress(4); err != nil {
		t.Fatal(err)
	}
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set(shoppingKey, shop)
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected pass-through, got %d", rec.Code)
	}
}
