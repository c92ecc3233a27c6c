package middleware

import (
	"net/http"
	"strings"

	"StorefrontAPI/internal/model"

	"github.com/labstack/echo/v4"
)

const (
	LoginPath         = "/login"
	HomePath          = "/"
	AdminHomePath     = "/admin/products"
	AddressPath       = "/address"
	ConfirmationPath  = "/confirmation"
	adminPrefix       = "/admin"
	adminProductsPath = "/admin/products/"
)

// Decision is the outcome of a guard check. A zero Redirect means allow.
type Decision struct {
	Redirect string
	Status   int
}

func (d Decision) Allowed() bool {
	return d.Redirect == ""
}

var publicPaths = map[string]bool{
	"/":                        true,
	"/login":                   true,
	"/register":                true,
	"/logout":                  true,
	"/session":                 true,
	"/products":                true,
	"/payments/notification":   true,
	"/payments/stripe/webhook": true,
	"/healthz":                 true,
}

func isPublic(path string) bool {
	if publicPaths[path] {
		return true
	}
	// product detail and filter routes; add-to-cart checks the session itself
	return strings.HasPrefix(path, "/products/")
}

func isAdmin(path string) bool {
	return path == adminPrefix || strings.HasPrefix(path, adminPrefix+"/")
}

// knownAdmin lists the admin screens; anything else under /admin is unknown.
func knownAdmin(path string) bool {
	if path == AdminHomePath || path == AdminHomePath+"/" {
		return true
	}
	rest, ok := strings.CutPrefix(path, adminProductsPath)
	return ok && rest != "" && !strings.Contains(rest, "/")
}

// Decide answers whether a navigation to path is allowed for the caller.
func Decide(path string, authenticated bool, role string) Decision {
	if path == "" {
		path = HomePath
	}
	if isPublic(path) {
		return Decision{}
	}
	if !authenticated {
		return Decision{Redirect: LoginPath, Status: http.StatusUnauthorized}
	}
	if isAdmin(path) {
		if role != model.RoleAdmin {
			return Decision{Redirect: HomePath, Status: http.StatusForbidden}
		}
		if !knownAdmin(path) {
			return Decision{Redirect: AdminHomePath, Status: http.StatusNotFound}
		}
	}
	return Decision{}
}

// Guard applies Decide to every request using the session attached by
// SessionMiddleware.
func Guard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := GetSession(c)
			role := ""
			if sess != nil {
				role = sess.Role
			}
			d := Decide(c.Request().URL.Path, sess.IsAuthenticated(), role)
			if !d.Allowed() {
				return Redirect(c, d.Status, d.Redirect)
			}
			return next(c)
		}
	}
}

// RequireSelectedAddress sends the caller back to the address screen when no
// delivery address is selected.
func RequireSelectedAddress(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		shop := GetShopping(c)
		if shop == nil {
			return Redirect(c, http.StatusBadRequest, AddressPath)
		}
		if _, ok := shop.SelectedAddress(); !ok {
			return Redirect(c, http.StatusBadRequest, AddressPath)
		}
		return next(c)
	}
}

// Redirect answers JSON clients with {"redirect": path} and status, and
// everything else with 303 See Other.
func Redirect(c echo.Context, status int, path string) error {
	if wantsJSON(c.Request()) {
		return c.JSON(status, map[string]string{"redirect": path})
	}
	return c.Redirect(http.StatusSeeOther, path)
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get(echo.HeaderAccept)
	if strings.Contains(accept, echo.MIMEApplicationJSON) {
		return true
	}
	return strings.HasPrefix(r.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}
