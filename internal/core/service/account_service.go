package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/spar-shoe/storefront-api/internal/core/domain"
	"github.com/spar-shoe/storefront-api/internal/core/ports"
	"github.com/spar-shoe/storefront-api/internal/core/session"
	"github.com/spar-shoe/storefront-api/internal/core/token"
)

// AccountService implements registration, email verification, login, and
// password recovery on top of the user repository. The user record is always
// persisted before any email is queued, so a delivery failure never unwinds
// a completed mutation.
type AccountService struct {
	users    ports.UserRepository
	tokens   *token.Issuer
	sessions *session.Signer
	notifier ports.AccountNotifier
	log      zerolog.Logger
	now      func() time.Time
}

func NewAccountService(
	users ports.UserRepository,
	tokens *token.Issuer,
	sessions *session.Signer,
	notifier ports.AccountNotifier,
	log zerolog.Logger,
) *AccountService {
	return &AccountService{
		users:    users,
		tokens:   tokens,
		sessions: sessions,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Register creates an unverified customer account and queues the
// verification email. The email's case policy is fixed here, before any
// store call.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	verificationToken, expires, err := s.tokens.Verification(now)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:                     name,
		Email:                    email,
		PasswordHash:             string(hash),
		Role:                     domain.RoleCustomer,
		IsVerified:               false,
		VerificationToken:        verificationToken,
		VerificationTokenExpires: expires,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("account registered")
	s.notifier.SendVerification(created.Email, verificationToken, expires)

	return created, nil
}

// VerifyEmail consumes a single-use verification token. The check and the
// clear happen in one conditional update inside the repository, so a replay
// or a concurrent second consume fails with ErrInvalidToken.
func (s *AccountService) VerifyEmail(ctx context.Context, tok string) error {
	if tok == "" {
		return domain.ErrInvalidToken
	}

	user, err := s.users.ConsumeVerificationToken(ctx, tok, s.now().UTC())
	if err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("email verified")
	return nil
}

// Login authenticates credentials into a signed session token. An unknown
// email and a wrong password both yield ErrInvalidCredentials; only the
// not-verified gate is allowed to be more specific, since it fires after the
// account's existence was already implied by a prior registration.
func (s *AccountService) Login(ctx context.Context, email, password string) (*ports.SessionResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// Admins bypass the verification gate, nothing else.
	if !user.IsVerified && user.Role != domain.RoleAdmin {
		return nil, domain.ErrNotVerified
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.sessions.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login succeeded")
	return &ports.SessionResult{Token: signed, Role: user.Role, Name: user.Name}, nil
}

// RequestPasswordReset mints a fresh reset token for the account, replacing
// any pending one, and queues the reset email. Unknown emails return nil
// with no mutation so the endpoint gives no enumeration signal.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return nil
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Msg("password reset requested for unknown email")
			return nil
		}
		return err
	}

	now := s.now().UTC()
	resetToken, expires, err := s.tokens.Reset(now)
	if err != nil {
		return err
	}

	if err := s.users.SetResetToken(ctx, user.ID, resetToken, expires); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset requested")
	s.notifier.SendPasswordReset(user.Email, resetToken, expires)

	return nil
}

// ResetPassword consumes a reset token and installs the new password. The
// hash is computed first so the repository can set it and clear the token
// pair in a single conditional update.
func (s *AccountService) ResetPassword(ctx context.Context, tok, newPassword string) error {
	if tok == "" {
		return domain.ErrInvalidToken
	}
	if newPassword == "" {
		return domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user, err := s.users.ConsumeResetToken(ctx, tok, string(hash), s.now().UTC())
	if err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset completed")
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
