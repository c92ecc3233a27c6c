package abstractapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

var (
	ErrDisposable    = errors.New("disposable email is not allowed")
	ErrRoleEmail     = errors.New("role-based email is not allowed")
	ErrLowReputation = errors.New("email reputation is too low")
)

const defaultBaseURL = "https://emailreputation.abstractapi.com/v1/"

// ReputationValidator rejects disposable, role-based and low-reputation
// addresses at registration. A lookup that fails for any other reason lets
// the address through.
type ReputationValidator struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

func NewReputationValidator(apiKey string) *ReputationValidator {
	return &ReputationValidator{
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: defaultBaseURL,
	}
}

type reputationResponse struct {
	EmailReputation string `json:"email_reputation"` // LOW, MEDIUM, HIGH
	IsDisposable    bool   `json:"is_disposable_email"`
	IsRoleEmail     bool   `json:"is_role_email"`
}

func (v *ReputationValidator) Validate(ctx context.Context, email string) error {
	out, err := v.lookup(ctx, email)
	if err != nil {
		slog.Warn("email reputation lookup failed", slog.Any("err", err))
		return nil
	}

	// ---- Rules ----
	switch {
	case out.IsDisposable:
		return ErrDisposable
	case out.IsRoleEmail:
		return ErrRoleEmail
	case out.EmailReputation == "LOW":
		return ErrLowReputation
	}
	return nil
}

func (v *ReputationValidator) lookup(ctx context.Context, email string) (*reputationResponse, error) {
	u, err := url.Parse(v.baseURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("api_key", v.apiKey)
	q.Set("email", email)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("email reputation service error: %s", resp.Status)
	}

	var out reputationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
