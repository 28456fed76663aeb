// Package services contains server-side business logic. UserService manages
// login accounts: creation, password changes, activation and the first-run
// administrator.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/goldmanager/internal/common"
	"github.com/dmitrijs2005/goldmanager/internal/logging"
	"github.com/dmitrijs2005/goldmanager/internal/server/auth"
	"github.com/dmitrijs2005/goldmanager/internal/server/models"
	"github.com/dmitrijs2005/goldmanager/internal/server/repositories/repomanager"
)

type UserService struct {
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	keys        *auth.KeyRegistry
	logger      logging.Logger
}

func NewUserService(m repomanager.RepositoryManager, hasher auth.PasswordHasher, keys *auth.KeyRegistry, l logging.Logger) *UserService {
	return &UserService{
		repomanager: m,
		hasher:      hasher,
		keys:        keys,
		logger:      l.With("module", "users"),
	}
}

// Create stores a new active user. Blank input yields ErrorValidation, a taken
// username ErrorAlreadyExists.
func (s *UserService) Create(ctx context.Context, userName, password string) (*models.User, error) {
	if common.IsBlank(userName) {
		return nil, fmt.Errorf("%w: username is mandatory", common.ErrorValidation)
	}
	if common.IsBlank(password) {
		return nil, fmt.Errorf("%w: password is mandatory", common.ErrorValidation)
	}

	repo := s.repomanager.Users()

	exists, err := repo.Exists(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("error checking user: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("username '%s' %w", userName, common.ErrorAlreadyExists)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := repo.Create(ctx, &models.User{UserName: userName, PasswordDigest: digest, Active: true})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("username '%s' %w", userName, common.ErrorAlreadyExists)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user created", "user", userName)
	return user, nil
}

// UpdatePassword replaces the stored digest. The user's current session is
// dropped so the old password cannot keep a token alive. Unknown users yield
// ErrorNotFound.
func (s *UserService) UpdatePassword(ctx context.Context, userName, newPassword string) error {
	if common.IsBlank(userName) || common.IsBlank(newPassword) {
		return fmt.Errorf("%w: username and new password are mandatory", common.ErrorValidation)
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	ok, err := s.repomanager.Users().UpdatePassword(ctx, userName, digest)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if !ok {
		return common.ErrorNotFound
	}

	s.keys.Remove(userName)
	s.logger.Info(ctx, "password updated", "user", userName)
	return nil
}

// UpdateActivation flips the active flag. Deactivating also revokes the
// session key, although the validator's live check would reject the token on
// its own.
func (s *UserService) UpdateActivation(ctx context.Context, userName string, active bool) error {
	if common.IsBlank(userName) {
		return fmt.Errorf("%w: username is mandatory", common.ErrorValidation)
	}

	ok, err := s.repomanager.Users().UpdateActive(ctx, userName, active)
	if err != nil {
		return fmt.Errorf("error updating user status: %w", err)
	}
	if !ok {
		return common.ErrorNotFound
	}

	if !active {
		s.keys.Remove(userName)
	}
	s.logger.Info(ctx, "user status updated", "user", userName, "active", active)
	return nil
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	n, err := s.repomanager.Users().Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return n, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	list, err := s.repomanager.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return list, nil
}

// Bootstrap creates the administrator account when the store is empty. It
// reports whether an account was created. Blank credentials skip it.
func (s *UserService) Bootstrap(ctx context.Context, userName, password string) (bool, error) {
	if common.IsBlank(userName) || common.IsBlank(password) {
		return false, nil
	}

	n, err := s.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	if _, err := s.Create(ctx, userName, password); err != nil {
		return false, err
	}
	s.logger.Warn(ctx, "bootstrap administrator created, change its password", "user", userName)
	return true, nil
}
