package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	if _, err := NewTokenService("", time.Hour); !errors.Is(err, ErrMisconfigured) {
		t.Fatalf("expected ErrMisconfigured, got %v", err)
	}
}

func TestTokenRoundtrip(t *testing.T) {
	svc, err := NewTokenService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	subject := uuid.New()
	token, err := svc.Issue(subject, "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	got, claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if got != subject {
		t.Fatalf("subject mismatch: got %s, want %s", got, subject)
	}
	if claims.Email != "user@example.com" {
		t.Fatalf("email claim mismatch: got %q", claims.Email)
	}
}

func TestTokenVerifyNearExpiry(t *testing.T) {
	// A short lifetime that has not elapsed yet must still verify.
	svc, _ := NewTokenService("test-secret", 2*time.Second)

	token, err := svc.Issue(uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, _, err := svc.Verify(token); err != nil {
		t.Fatalf("token before expiry must verify, got %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	svc, _ := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue(uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, _, err := svc.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenInvalidSignature(t *testing.T) {
	issuer, _ := NewTokenService("one-secret", time.Hour)
	verifier, _ := NewTokenService("another-secret", time.Hour)

	token, err := issuer.Issue(uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, _, err := verifier.Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	svc, _ := NewTokenService("test-secret", time.Hour)
	if _, _, err := svc.Verify("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenMissingSubject(t *testing.T) {
	svc, _ := NewTokenService("test-secret", time.Hour)

	// Structurally valid token without a subject claim.
	now := time.Now()
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	signed, err := raw.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, _, err := svc.Verify(signed); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}
