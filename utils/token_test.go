package utils

import (
	"errors"
	"testing"
	"time"

	"canteen/pkg/apperr"
)

func TestTokenRoundtrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	tok, err := tm.Generate(42, "customer")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	uid, role, err := tm.Authorize("Bearer " + tok)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if uid != 42 || role != "customer" {
		t.Fatalf("got uid=%d role=%q, want 42/customer", uid, role)
	}
}

func TestAuthorizeMissingCredential(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	for _, raw := range []string{"", "Token abc", "bearer lowercase"} {
		if _, _, err := tm.Authorize(raw); !errors.Is(err, apperr.ErrMissingToken) {
			t.Fatalf("Authorize(%q) = %v, want ErrMissingToken", raw, err)
		}
	}
}

func TestAuthorizeRejectsForeignSignature(t *testing.T) {
	issuer := NewTokenManager("issuer-secret", time.Hour)
	verifier := NewTokenManager("other-secret", time.Hour)

	tok, err := issuer.Generate(7, "customer")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, _, err := verifier.Authorize("Bearer " + tok); !errors.Is(err, apperr.ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestAuthorizeRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	tok, err := tm.Generate(7, "customer")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, _, err := tm.Authorize("Bearer " + tok); !errors.Is(err, apperr.ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestAuthorizeRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	if _, _, err := tm.Authorize("Bearer not.a.jwt"); !errors.Is(err, apperr.ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}
