package ports

import (
	"context"

	"github.com/spar-shoe/storefront-api/internal/core/domain"
)

// SessionResult is what a successful login hands back to the client.
type SessionResult struct {
	Token string
	Role  string
	Name  string
}

// AccountService drives the account lifecycle: registration, email
// verification, login, and password recovery.
type AccountService interface {
	// Register creates an unverified account and queues a verification
	// email. Duplicate emails fail with domain.ErrEmailTaken.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)

	// VerifyEmail consumes a single-use verification token.
	VerifyEmail(ctx context.Context, token string) error

	// Login authenticates credentials into a signed session token.
	Login(ctx context.Context, email, password string) (*SessionResult, error)

	// RequestPasswordReset mints and mails a reset token. It succeeds
	// whether or not the email exists, so callers cannot probe for
	// registered addresses.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword consumes a reset token and installs the new password.
	ResetPassword(ctx context.Context, token, newPassword string) error
}
