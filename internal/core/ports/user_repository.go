package ports

import (
	"context"
	"time"

	"github.com/spar-shoe/storefront-api/internal/core/domain"
)

// UserRepository defines the persistence contract for storefront accounts.
//
// The two Consume operations are the concurrency-sensitive part of the
// contract: each must check the presented token and clear it as one atomic
// conditional update, so that two concurrent consumers of the same
// single-use token cannot both succeed. The loser sees the already-cleared
// state and gets domain.ErrInvalidToken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// SetResetToken attaches a fresh reset token to the account,
	// overwriting any pending one.
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error

	// ConsumeVerificationToken flips the matching account to verified and
	// clears the token pair. Tokens expiring at or before now are rejected.
	ConsumeVerificationToken(ctx context.Context, token string, now time.Time) (*domain.User, error)

	// ConsumeResetToken stores the new password hash and clears the reset
	// token pair in the same conditional update.
	ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*domain.User, error)
}
