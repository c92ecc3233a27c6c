package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/state"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "sf_session"

	sessionKey  = "session"
	shoppingKey = "shopping"
	registryKey = "shopping_registry"
	issuer      = "storefront"
)

// Claims defines the session cookie payload
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionLoader restores the auth session stored under a session id.
// A nil session with a nil error means nothing is stored.
type SessionLoader interface {
	Restore(ctx context.Context, sessionID string) (*model.Session, error)
}

type SessionTokens struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionTokens(secret string, ttl time.Duration) *SessionTokens {
	if secret == "" {
		secret = "dev-secret-please-change"
	}
	return &SessionTokens{secret: []byte(secret), ttl: ttl}
}

// Generate creates a signed cookie value for the session id
func (t *SessionTokens) Generate(sessionID string, now time.Time) (string, error) {
	claims := &Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(t.secret)
}

func (t *SessionTokens) Parse(value string) (string, error) {
	token, err := jwt.ParseWithClaims(value, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired session cookie")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.SessionID == "" {
		return "", errors.New("invalid session claims")
	}
	return claims.SessionID, nil
}

// SessionMiddleware resolves the session cookie, issuing a new session id
// when it is missing or invalid, and attaches the auth session to the context.
// Shopping state is only created when a handler asks for it.
func SessionMiddleware(tokens *SessionTokens, loader SessionLoader, registry *state.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sid string
			if ck, err := c.Cookie(SessionCookieName); err == nil {
				sid, _ = tokens.Parse(ck.Value)
			}

			if sid == "" {
				sid = uuid.NewString()
				value, err := tokens.Generate(sid, time.Now())
				if err != nil {
					return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to start session"})
				}
				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    value,
					Path:     "/",
					MaxAge:   int(tokens.ttl.Seconds()),
					HttpOnly: true,
					Secure:   c.Scheme() == "https",
					SameSite: http.SameSiteLaxMode,
				})
			}

			sess, err := loader.Restore(c.Request().Context(), sid)
			if err != nil {
				// a broken store degrades to anonymous
				slog.Error("restore session", slog.String("session_id", sid), slog.Any("err", err))
				sess = nil
			}
			if sess == nil {
				sess = &model.Session{ID: sid}
			}

			c.Set(sessionKey, sess)
			c.Set(registryKey, registry)
			return next(c)
		}
	}
}

// GetSession returns the session attached by SessionMiddleware, or nil.
func GetSession(c echo.Context) *model.Session {
	if s, ok := c.Get(sessionKey).(*model.Session); ok {
		return s
	}
	return nil
}

// SetSession replaces the session for the rest of the request, e.g. after login.
func SetSession(c echo.Context, s *model.Session) {
	c.Set(sessionKey, s)
}

// GetShopping returns the shopping state of the request's session, creating
// it on first use.
func GetShopping(c echo.Context) *state.Shopping {
	if s, ok := c.Get(shoppingKey).(*state.Shopping); ok {
		return s
	}
	registry, ok := c.Get(registryKey).(*state.Registry)
	sess := GetSession(c)
	if !ok || sess == nil {
		return nil
	}
	s := registry.Get(sess.ID)
	c.Set(shoppingKey, s)
	return s
}
