package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/backend/internal/testutil"
)

func newAccountService(t *testing.T) (*AccountService, *TokenService, *testutil.FakeUserStore) {
	t.Helper()
	tokens, err := NewTokenService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	store := testutil.NewFakeUserStore()
	return NewAccountService(store, NewHasher(bcrypt.MinCost), tokens), tokens, store
}

func TestRegisterThenLogin(t *testing.T) {
	svc, tokens, _ := newAccountService(t)
	ctx := context.Background()

	name := "Jordan"
	user, token, err := svc.Register(ctx, "jordan@example.com", "SecurePass123!", &name)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	subject, _, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token did not verify: %v", err)
	}
	if subject != user.ID {
		t.Fatalf("token subject %s does not match account %s", subject, user.ID)
	}

	loggedIn, loginToken, err := svc.Login(ctx, "jordan@example.com", "SecurePass123!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("login returned a different account")
	}

	subject, _, err = tokens.Verify(loginToken)
	if err != nil {
		t.Fatalf("login token did not verify: %v", err)
	}
	if subject != user.ID {
		t.Fatalf("login token subject mismatch")
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _, _ := newAccountService(t)

	for _, password := range []string{
		"securepass123!", // no uppercase
		"SECUREPASS123!", // no lowercase
		"SecurePass!",    // no digit
		"SecurePass123",  // no symbol
		"Sp1!",           // too short
	} {
		if _, _, err := svc.Register(context.Background(), "weak@example.com", password, nil); !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("password %q: expected ErrWeakPassword, got %v", password, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAccountService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "dup@example.com", "SecurePass123!", nil); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// Same email, different password: still a conflict.
	if _, _, err := svc.Register(ctx, "dup@example.com", "OtherPass456?", nil); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	svc, _, _ := newAccountService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "real@example.com", "SecurePass123!", nil); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, wrongPassword := svc.Login(ctx, "real@example.com", "WrongPass123!")
	_, _, unknownEmail := svc.Login(ctx, "ghost@example.com", "SecurePass123!")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("failure messages differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestWhoAmIStaleToken(t *testing.T) {
	svc, _, store := newAccountService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "gone@example.com", "SecurePass123!", nil)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.WhoAmI(ctx, user.ID); err != nil {
		t.Fatalf("whoami failed: %v", err)
	}

	// Account deleted after token issuance: token stays structurally valid,
	// lookup resolves to not found.
	store.DeleteUser(user.ID)
	if _, err := svc.WhoAmI(ctx, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
