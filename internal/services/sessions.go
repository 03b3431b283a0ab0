package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/models"
	"github.com/dmitrijs2005/authkeeper/internal/repositories/sessions"
	"github.com/dmitrijs2005/authkeeper/internal/timex"
)

const maxIssueAttempts = 5

// SessionRegistry issues and resolves opaque session tokens. Tokens carry
// common.SessionTokenBytes of randomness. Lookup does not enforce any expiry.
type SessionRegistry struct {
	repo     sessions.Repository
	clock    timex.Clock
	log      logging.Logger
	newToken func() (string, error)
}

func NewSessionRegistry(repo sessions.Repository, clock timex.Clock, log logging.Logger) *SessionRegistry {
	return &SessionRegistry{
		repo:  repo,
		clock: clock,
		log:   log,
		newToken: func() (string, error) {
			return common.MakeRandHexString(common.SessionTokenBytes)
		},
	}
}

// Issue creates and persists a new session for userName.
func (r *SessionRegistry) Issue(ctx context.Context, userName string) (string, error) {
	for i := 0; i < maxIssueAttempts; i++ {
		token, err := r.newToken()
		if err != nil {
			return "", fmt.Errorf("error generating session token: %w", err)
		}

		err = r.repo.Create(ctx, &models.Session{Token: token, UserName: userName, IssuedAt: r.clock.Now()})
		if errors.Is(err, common.ErrorAlreadyExists) {
			r.log.Warn(ctx, "session token collision", "username", userName)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("error creating session: %w", err)
		}
		return token, nil
	}
	return "", fmt.Errorf("error creating session: %d token collisions", maxIssueAttempts)
}

// Lookup returns the username owning token or common.ErrInvalidSession.
func (r *SessionRegistry) Lookup(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", common.ErrInvalidSession
	}

	s, err := r.repo.Get(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidSession
		}
		return "", fmt.Errorf("error loading session: %w", err)
	}
	return s.UserName, nil
}

// Revoke removes token. Revoking an unknown token is not an error.
func (r *SessionRegistry) Revoke(ctx context.Context, token string) error {
	return r.repo.Delete(ctx, token)
}

// PurgeIssuedBefore deletes sessions issued before cutoff. It is a cleanup
// policy for callers; nothing in this package calls it.
func (r *SessionRegistry) PurgeIssuedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	n, err := r.repo.DeleteIssuedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		r.log.Info(ctx, "old sessions purged", "count", n)
	}
	return n, nil
}
