package services

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"StorefrontAPI/external/backend"
	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/state"

	"github.com/golang-jwt/jwt/v5"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// SessionStore persists auth sessions by session id. Get returns nil, nil for
// an unknown id.
type SessionStore interface {
	Save(ctx context.Context, s *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}

type AuthService struct {
	Backend  *backend.Client
	Sessions SessionStore
	Shopping *state.Registry

	// Emails, when set, is consulted after the format check at registration.
	Emails EmailValidator

	now func() time.Time
}

func NewAuthService(b *backend.Client, sessions SessionStore, shopping *state.Registry) *AuthService {
	return &AuthService{Backend: b, Sessions: sessions, Shopping: shopping, now: time.Now}
}

type RegisterInput struct {
	model.RegisterUserData
	ConfirmPassword string `json:"confirm_password"`
}

// Restore loads the stored session. A session whose bearer token has expired
// is logged out and reported as absent.
func (s *AuthService) Restore(ctx context.Context, sessionID string) (*model.Session, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil || sess == nil {
		return sess, err
	}
	if sess.Token != "" && tokenExpired(sess.Token, s.now()) {
		slog.Info("stored token expired", slog.String("session_id", sessionID))
		if err := s.Logout(ctx, sessionID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return sess, nil
}

// tokenExpired reads the exp claim without verifying the signature; the
// backend owns the key. Tokens that are not JWTs, or carry no exp, never
// expire here.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}

// Login exchanges credentials for a bearer token, loads the profile and
// stores the session under sessionID. Shopping state left by an earlier
// login on the same session is dropped.
func (s *AuthService) Login(ctx context.Context, sessionID, identifier, password string) (*model.Session, error) {
	resp, err := s.Backend.Login(ctx, identifier, password)
	if err != nil {
		return nil, remote(err, "Failed to login")
	}

	profile, err := s.Backend.GetProfile(ctx, resp.AccessToken)
	if err != nil {
		slog.Error("fetch profile after login", slog.Any("err", err))
		if lerr := s.Logout(ctx, sessionID); lerr != nil {
			slog.Error("logout", slog.Any("err", lerr))
		}
		return nil, remote(err, "Failed to login")
	}

	sess := &model.Session{
		ID:    sessionID,
		Token: resp.AccessToken,
		Role:  resp.Role,
	}
	applyProfile(sess, profile)
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.Shopping.Drop(sessionID)
	return sess, nil
}

func applyProfile(sess *model.Session, p *model.UserProfile) {
	sess.FullName = p.FirstName
	sess.MobileNumber = p.PhoneNumber
	sess.Email = p.Email
}

// Logout forgets the token and the session's shopping state.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	s.Shopping.Drop(sessionID)
	return s.Sessions.Delete(ctx, sessionID)
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return "", invalid("Username, Email, and Password are required")
	}
	if in.Password != in.ConfirmPassword {
		return "", invalid("Password and Confirm Password do not match")
	}
	if !emailRegex.MatchString(in.Email) {
		return "", invalid("invalid email format")
	}
	if s.Emails != nil {
		if err := s.Emails.Validate(ctx, in.Email); err != nil {
			slog.Info("email rejected at registration", slog.Any("reason", err))
			return "", invalid("This email address cannot be used. Please try another one.")
		}
	}

	if _, err := s.Backend.Register(ctx, in.RegisterUserData); err != nil {
		return "", remote(err, "Registration failed. Please try again.")
	}
	return "Registration successful! Redirecting to login...", nil
}

// Profile fetches the profile and refreshes the contact fields kept on the
// session.
func (s *AuthService) Profile(ctx context.Context, sess *model.Session) (*model.UserProfile, error) {
	if !sess.IsAuthenticated() {
		return nil, fail("User not authenticated.", ErrNotAuthenticated)
	}
	p, err := s.Backend.GetProfile(ctx, sess.Token)
	if err != nil {
		return nil, remote(err, "Failed to fetch profile.")
	}
	applyProfile(sess, p)
	if err := s.Sessions.Save(ctx, sess); err != nil {
		slog.Error("save session", slog.Any("err", err))
	}
	return p, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, sess *model.Session, p model.UserProfile) error {
	if !sess.IsAuthenticated() {
		return fail("User not authenticated.", ErrNotAuthenticated)
	}
	if err := s.Backend.UpdateProfile(ctx, sess.Token, p); err != nil {
		return fail("Failed to update profile.", err)
	}
	applyProfile(sess, &p)
	if err := s.Sessions.Save(ctx, sess); err != nil {
		slog.Error("save session", slog.Any("err", err))
	}
	return nil
}
