package token

import (
	"encoding/hex"
	"testing"
	"time"
)

func TestIssuer_Verification(t *testing.T) {
	issuer := NewIssuer(30*time.Minute, time.Hour)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tok, expires, err := issuer.Verification(now)
	if err != nil {
		t.Fatalf("Verification returned error: %v", err)
	}
	if len(tok) != 40 {
		t.Fatalf("expected 40-char token, got %d chars", len(tok))
	}
	if _, err := hex.DecodeString(tok); err != nil {
		t.Fatalf("token is not hex: %v", err)
	}
	if !expires.Equal(now.Add(30 * time.Minute)) {
		t.Fatalf("unexpected expiry: %v", expires)
	}
}

func TestIssuer_Reset(t *testing.T) {
	issuer := NewIssuer(30*time.Minute, time.Hour)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tok, expires, err := issuer.Reset(now)
	if err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	if len(tok) != 40 {
		t.Fatalf("expected 40-char token, got %d chars", len(tok))
	}
	if !expires.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry: %v", expires)
	}
}

func TestIssuer_TokensAreUnique(t *testing.T) {
	issuer := NewIssuer(0, 0)
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		tok, _, err := issuer.Verification(time.Now())
		if err != nil {
			t.Fatalf("mint %d failed: %v", i, err)
		}
		if _, dup := seen[tok]; dup {
			t.Fatalf("duplicate token minted: %s", tok)
		}
		seen[tok] = struct{}{}
	}
}

func TestIssuer_DefaultTTLs(t *testing.T) {
	issuer := NewIssuer(0, 0)
	now := time.Now()

	_, ve, err := issuer.Verification(now)
	if err != nil {
		t.Fatalf("Verification failed: %v", err)
	}
	if !ve.Equal(now.Add(DefaultVerificationTTL)) {
		t.Fatalf("expected default verification TTL, got expiry %v", ve)
	}

	_, re, err := issuer.Reset(now)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if !re.Equal(now.Add(DefaultResetTTL)) {
		t.Fatalf("expected default reset TTL, got expiry %v", re)
	}
}
