package service

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 100

	// Symbols accepted by the password policy.
	passwordSymbols = `!@#$%^&*(),.?":{}|<>`

	// bcrypt only considers the first 72 bytes of input.
	bcryptInputLimit = 72
)

// Hasher wraps bcrypt password hashing with a fixed cost.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncateForBcrypt(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plain matches the stored hash. A malformed stored
// hash yields false rather than an error, so storage-format problems are not
// observable as a distinct failure.
func (h *Hasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncateForBcrypt(plain)) == nil
}

func truncateForBcrypt(plain string) []byte {
	b := []byte(plain)
	if len(b) > bcryptInputLimit {
		b = b[:bcryptInputLimit]
	}
	return b
}

// ValidatePassword enforces the acceptance policy: 8-100 characters with at
// least one uppercase letter, one lowercase letter, one digit, and one symbol.
// The returned error names the first unmet rule and wraps ErrWeakPassword.
func ValidatePassword(plain string) error {
	length := utf8.RuneCountInString(plain)
	if length < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, minPasswordLength)
	}
	if length > maxPasswordLength {
		return fmt.Errorf("%w: must be at most %d characters", ErrWeakPassword, maxPasswordLength)
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range plain {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return fmt.Errorf("%w: must contain at least one uppercase letter", ErrWeakPassword)
	case !hasLower:
		return fmt.Errorf("%w: must contain at least one lowercase letter", ErrWeakPassword)
	case !hasDigit:
		return fmt.Errorf("%w: must contain at least one digit", ErrWeakPassword)
	case !hasSymbol:
		return fmt.Errorf("%w: must contain at least one special character", ErrWeakPassword)
	}
	return nil
}
