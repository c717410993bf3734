package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and verifies stateless HS256 session tokens. The
// signing key and lifetime are fixed at construction; there is no revocation,
// expiry is the only termination mechanism.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
}

type TokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func NewTokenService(secret string, lifetime time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}
	return &TokenService{
		secret:   []byte(secret),
		lifetime: lifetime,
	}, nil
}

// Issue signs a token for the given subject. The email claim is carried for
// display only; verification trusts the subject alone.
func (s *TokenService) Issue(subject uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and extracts the subject identity.
// It fails with ErrTokenExpired past the expiry, ErrTokenInvalid on a bad
// signature or structure, and ErrTokenMalformed when the subject claim is
// absent or not an identity. Callers surface all three as one
// unauthenticated outcome; the distinction is for logging.
func (s *TokenService) Verify(tokenStr string) (uuid.UUID, *TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, nil, ErrTokenExpired
		}
		return uuid.Nil, nil, ErrTokenInvalid
	}
	if !token.Valid {
		return uuid.Nil, nil, ErrTokenInvalid
	}

	if claims.Subject == "" {
		return uuid.Nil, nil, ErrTokenMalformed
	}
	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, nil, ErrTokenMalformed
	}
	return subject, claims, nil
}
