// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, bearer-token checks, the
// ownership rule, and CRUD over user records.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/userservice/internal/common"
	"github.com/dmitrijs2005/userservice/internal/server/auth"
	"github.com/dmitrijs2005/userservice/internal/server/config"
	"github.com/dmitrijs2005/userservice/internal/server/models"
	"github.com/dmitrijs2005/userservice/internal/server/repositories/repomanager"
)

// DefaultListLimit caps a listing request that does not specify its own limit.
const DefaultListLimit = 100

// UserService provides account operations:
//   - Register / Login: create accounts and mint access tokens
//   - Authenticate / AuthorizeOwner: gate protected endpoints
//   - Get / List / Update / Delete: record access
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenService

	// dummyHash is burned on login attempts for unknown emails so that the
	// timing profile does not reveal whether an account exists.
	dummyHash string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	dummyHash, _ := hasher.Hash(uuid.NewString())

	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      auth.NewTokenService(cfg.SecretKey, cfg.AccessTokenValidityDuration),
		dummyHash:   dummyHash,
	}
}

// Register hashes the password and creates the account. The plaintext is not
// retained past this call. A duplicate email yields common.ErrEmailTaken,
// detected atomically by the store's uniqueness constraint rather than by a
// prior read.
func (s *UserService) Register(ctx context.Context, email, password, firstName, lastName, phone string) (*models.User, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		IsActive:     true,
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return u, nil
}

// Login verifies the credentials and returns a signed access token. An
// unknown email and a wrong password both produce common.ErrInvalidCredentials;
// the unknown-email path still performs a bcrypt comparison so the two are
// indistinguishable by timing as well.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return "", common.ErrInvalidCredentials
		}
		return "", common.ErrInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, 0)
	if err != nil {
		return "", common.ErrInternal
	}

	return token, nil
}

// Authenticate validates a raw bearer token and returns the caller's user id.
// Every validation failure (signature, expiry, malformed claims) collapses
// into common.ErrUnauthorized so the externally observable outcome does not
// leak which check failed.
func (s *UserService) Authenticate(tokenString string) (int64, error) {
	userID, err := s.tokens.Validate(tokenString)
	if err != nil {
		return 0, common.ErrUnauthorized
	}
	return userID, nil
}

// AuthorizeOwner reports whether the caller owns the target resource. This is
// the sole authorization rule in the system; there are no roles or scopes.
func (s *UserService) AuthorizeOwner(callerID, ownerID int64) bool {
	return callerID == ownerID
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}
	return user, nil
}

// List returns users ordered by id, with offset/limit pagination.
func (s *UserService) List(ctx context.Context, offset, limit int) ([]*models.User, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	repo := s.repomanager.Users(s.db)
	result, err := repo.List(ctx, offset, limit)
	if err != nil {
		return nil, common.ErrInternal
	}
	return result, nil
}

// Update applies a typed partial update to the user record.
func (s *UserService) Update(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}
	return user, nil
}

// Delete removes the user record.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	repo := s.repomanager.Users(s.db)
	if err := repo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return common.ErrInternal
	}
	return nil
}
