// Package session issues and validates the stateless bearer tokens that
// carry identity and role between requests. Tokens are HS256 JWTs signed
// with a process-wide secret loaded once at startup. Verification checks
// signature and expiry only; there is no server-side session registry, so a
// token cannot be revoked before its natural expiry.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spar-shoe/storefront-api/internal/core/domain"
)

const DefaultTTL = time.Hour

// Claims is the identity a verified token asserts.
type Claims struct {
	UserID string
	Role   string
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Signer issues and verifies session tokens with a single immutable secret.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner returns a Signer. A non-positive ttl falls back to DefaultTTL.
func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token asserting userID and role, valid for the configured TTL.
func (s *Signer) Issue(userID, role string) (string, error) {
	now := s.now()
	claims := sessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the asserted identity.
// Any failure collapses to domain.ErrUnauthorized; the caller learns nothing
// about why the token was rejected.
func (s *Signer) Verify(tokenString string) (*Claims, error) {
	var claims sessionClaims
	tkn, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthorized
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, domain.ErrUnauthorized
	}
	return &Claims{UserID: claims.Subject, Role: claims.Role}, nil
}
