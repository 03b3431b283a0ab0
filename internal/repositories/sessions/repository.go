// Package sessions stores issued session tokens.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/models"
)

type Repository interface {
	// Create returns common.ErrorAlreadyExists if the token is taken.
	Create(ctx context.Context, s *models.Session) error
	// Get returns common.ErrorNotFound for an unknown token.
	Get(ctx context.Context, token string) (*models.Session, error)
	// Delete removes the token. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
	// DeleteIssuedBefore removes every session issued strictly before cutoff
	// and returns how many were removed.
	DeleteIssuedBefore(ctx context.Context, cutoff time.Time) (int, error)
}
