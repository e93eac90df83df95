package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spar-shoe/storefront-api/internal/core/domain"
)

func TestSigner_IssueAndVerify(t *testing.T) {
	s := NewSigner("secret", time.Hour)

	tok, err := s.Issue("user_1", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := s.Verify(tok)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.UserID != "user_1" {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
	if claims.Role != domain.RoleCustomer {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestSigner_WrongSecret(t *testing.T) {
	tok, err := NewSigner("secret-a", time.Hour).Issue("user_1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := NewSigner("secret-b", time.Hour).Verify(tok); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSigner_ExpiredToken(t *testing.T) {
	s := NewSigner("secret", time.Hour)

	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }
	tok, err := s.Issue("user_1", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Just before expiry the signature-valid token is accepted.
	s.now = func() time.Time { return issued.Add(time.Hour - time.Second) }
	if _, err := s.Verify(tok); err != nil {
		t.Fatalf("token rejected before expiry: %v", err)
	}

	// After the TTL the same token is rejected even though the signature
	// is still structurally valid.
	s.now = func() time.Time { return issued.Add(time.Hour + time.Second) }
	if _, err := s.Verify(tok); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized after expiry, got %v", err)
	}
}

func TestSigner_Garbage(t *testing.T) {
	s := NewSigner("secret", time.Hour)
	if _, err := s.Verify("not-a-token"); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSigner_RejectsUnsignedAlg(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  "user_1",
		"role": domain.RoleAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	s := NewSigner("secret", time.Hour)
	if _, err := s.Verify(tok); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for alg=none, got %v", err)
	}
}

func TestSigner_MissingRoleClaim(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "user_1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	s := NewSigner("secret", time.Hour)
	if _, err := s.Verify(tok); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for missing role, got %v", err)
	}
}
