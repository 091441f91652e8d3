package relay

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/firesafetykz/portal/internal/domain"
)

// Authenticator decides whether a socket may receive userID's notifications
type Authenticator interface {
	Authenticate(ctx context.Context, userID string) error
}

// AuthenticatorFunc adapts a function to Authenticator
type AuthenticatorFunc func(ctx context.Context, userID string) error

func (f AuthenticatorFunc) Authenticate(ctx context.Context, userID string) error {
	return f(ctx, userID)
}

// AllowAll accepts every well-formed user id
var AllowAll = AuthenticatorFunc(func(context.Context, string) error { return nil })

func validateUserID(userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidUserID, userID)
	}
	return nil
}
