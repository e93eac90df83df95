package domain

import "errors"

var (
	// ErrValidation covers missing or malformed client input.
	ErrValidation = errors.New("invalid input")

	// ErrEmailTaken is returned when a registration collides with an
	// existing account; the existing account is never overwritten.
	ErrEmailTaken = errors.New("email already registered")

	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidToken covers unknown, already-consumed, and expired
	// verification or reset tokens. The three cases are deliberately
	// indistinguishable to the caller.
	ErrInvalidToken = errors.New("token is invalid or has expired")

	// ErrInvalidCredentials is returned both for an unknown email and for
	// a wrong password, so the two cannot be told apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotVerified blocks login on accounts that never confirmed their
	// email address. Admin accounts bypass this gate.
	ErrNotVerified = errors.New("account not verified")

	// ErrUnauthorized means the request carried no usable session token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the session is valid but the role is insufficient.
	ErrForbidden = errors.New("access forbidden")

	// ErrDelivery means a notification could not be handed to the mail
	// transport after all retries.
	ErrDelivery = errors.New("notification delivery failed")
)
