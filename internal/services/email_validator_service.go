package services

import "context"

// EmailValidator vets an address at registration. A non-nil error rejects it.
type EmailValidator interface {
	Validate(ctx context.Context, email string) error
}
