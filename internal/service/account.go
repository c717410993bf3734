package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taskhive/backend/internal/db"
	"github.com/taskhive/backend/internal/model"
)

// UserStore is the persistence surface the account service needs. Absent
// records are signalled with pgx.ErrNoRows (see db.IsNoRows).
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash string, name *string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// AccountService orchestrates registration and login on top of the
// credential hasher and the token service.
type AccountService struct {
	store  UserStore
	hasher *Hasher
	tokens *TokenService
}

func NewAccountService(store UserStore, hasher *Hasher, tokens *TokenService) *AccountService {
	return &AccountService{store: store, hasher: hasher, tokens: tokens}
}

// Register creates an account and issues its first token. The email
// uniqueness check runs before the password is hashed so a duplicate signup
// does not pay the hashing cost.
func (s *AccountService) Register(ctx context.Context, email, password string, name *string) (*model.User, string, error) {
	if err := ValidatePassword(password); err != nil {
		return nil, "", err
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !db.IsNoRows(err) {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.store.CreateUser(ctx, email, hash, name)
	if err != nil {
		// Concurrent signup can still hit the unique constraint.
		if isUniqueViolation(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a token. A missing account and a
// wrong password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// WhoAmI resolves a verified subject to its account. A token can outlive its
// account since there is no revocation; that case surfaces as ErrNotFound.
func (s *AccountService) WhoAmI(ctx context.Context, subject uuid.UUID) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, subject)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
