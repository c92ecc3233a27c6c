package services

import (
	"errors"
	"net/http"

	"StorefrontAPI/external/backend"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrNoAddressSelected = errors.New("no address selected")
	ErrSubmitInProgress  = errors.New("order submission already in progress")
	ErrNotFound          = errors.New("not found")
)

// Failure is an error with a message that can be shown to the user as is.
// The underlying cause stays reachable through errors.Is / errors.As.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func fail(message string, err error) error {
	return &Failure{Message: message, Err: err}
}

func invalid(message string) error {
	return &Failure{Message: message, Err: ErrInvalidInput}
}

// remote turns a backend error into a Failure carrying the server message,
// or fallback when the server sent none.
func remote(err error, fallback string) error {
	return &Failure{Message: backend.MessageOr(err, fallback), Err: err}
}

// StatusOf maps a service error to an HTTP status.
func StatusOf(err error) int {
	var apiErr *backend.APIError
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNoAddressSelected):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrSubmitInProgress):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidSignature):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &apiErr):
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
