// Package services implements the authentication core: credential storage,
// failed-login lockout, session issuance and the login flow that ties them
// together.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/cryptox"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/models"
	"github.com/dmitrijs2005/authkeeper/internal/repositories/users"
)

// CredentialStore maps usernames to password hashes and roles.
// Every call reads through to the repository.
type CredentialStore struct {
	users  users.Repository
	hasher cryptox.PasswordHasher
	log    logging.Logger
}

func NewCredentialStore(repo users.Repository, hasher cryptox.PasswordHasher, log logging.Logger) *CredentialStore {
	return &CredentialStore{users: repo, hasher: hasher, log: log}
}

// Register hashes password and persists a new user. It fails with
// common.ErrDuplicateUser if userName is taken; the existing record is left
// untouched. An empty role means models.RoleUser. Names rejected by
// models.ValidateUserName fail with common.ErrValidation before any hashing.
func (s *CredentialStore) Register(ctx context.Context, userName, password string, role models.Role) (*models.User, error) {
	if err := models.ValidateUserName(userName); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	role, err := models.ParseRole(string(role))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	_, err = s.users.GetByUserName(ctx, userName)
	if err == nil {
		return nil, common.ErrDuplicateUser
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{UserName: userName, PasswordHash: hash, Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrDuplicateUser
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user registered", "username", userName, "role", string(role))
	return user, nil
}

// Authenticate reports whether password matches the stored hash.
// An absent user fails with common.ErrUnknownUser.
func (s *CredentialStore) Authenticate(ctx context.Context, userName, password string) (bool, error) {
	user, err := s.lookup(ctx, userName)
	if err != nil {
		return false, err
	}
	return s.hasher.Verify(password, user.PasswordHash)
}

// GetRole fails with common.ErrUnknownUser if userName is absent.
func (s *CredentialStore) GetRole(ctx context.Context, userName string) (models.Role, error) {
	user, err := s.lookup(ctx, userName)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func (s *CredentialStore) lookup(ctx context.Context, userName string) (*models.User, error) {
	user, err := s.users.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnknownUser
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}
