package service

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"valid", "SecurePass123!", true},
		{"too short", "Ab1!", false},
		{"too long", "Aa1!" + strings.Repeat("x", 100), false},
		{"missing uppercase", "securepass123!", false},
		{"missing lowercase", "SECUREPASS123!", false},
		{"missing digit", "SecurePass!", false},
		{"missing symbol", "SecurePass123", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if tc.wantOK {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("expected ErrWeakPassword, got %v", err)
			}
		})
	}
}

func TestHasherRoundtrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("SecurePass123!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "SecurePass123!" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !h.Verify("SecurePass123!", hash) {
		t.Fatal("correct password did not verify")
	}
	if h.Verify("WrongPass123!", hash) {
		t.Fatal("wrong password verified")
	}
}

func TestHasherSalted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("SecurePass123!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := h.Hash("SecurePass123!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Fatal("same plaintext must produce different hashes across calls")
	}
}

func TestHasherMalformedStoredHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	if h.Verify("SecurePass123!", "not-a-bcrypt-hash") {
		t.Fatal("malformed stored hash must verify false, not error")
	}
	if h.Verify("SecurePass123!", "") {
		t.Fatal("empty stored hash must verify false")
	}
}
