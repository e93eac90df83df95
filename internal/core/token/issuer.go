// Package token mints the opaque single-use secrets used by the email
// verification and password reset flows. Tokens are 20 bytes from the
// system CSPRNG, hex-encoded to a fixed 40-character string, and carry an
// expiry computed from the issue time. Issuance persists nothing; callers
// attach the token and expiry to the user record.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	tokenBytes = 20

	DefaultVerificationTTL = 30 * time.Minute
	DefaultResetTTL        = time.Hour
)

// Issuer mints verification and reset tokens with their configured TTLs.
type Issuer struct {
	verificationTTL time.Duration
	resetTTL        time.Duration
}

// NewIssuer returns an Issuer. Non-positive TTLs fall back to the defaults.
func NewIssuer(verificationTTL, resetTTL time.Duration) *Issuer {
	if verificationTTL <= 0 {
		verificationTTL = DefaultVerificationTTL
	}
	if resetTTL <= 0 {
		resetTTL = DefaultResetTTL
	}
	return &Issuer{verificationTTL: verificationTTL, resetTTL: resetTTL}
}

// Verification mints an email-verification token expiring at now + TTL.
func (i *Issuer) Verification(now time.Time) (string, time.Time, error) {
	tok, err := generate()
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, now.Add(i.verificationTTL), nil
}

// Reset mints a password-reset token expiring at now + TTL.
func (i *Issuer) Reset(now time.Time) (string, time.Time, error) {
	tok, err := generate()
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, now.Add(i.resetTTL), nil
}

func generate() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("token: read entropy: %w", err)
	}
	return hex.EncodeToString(b), nil
}
