// Package users declares the repository contract for registered accounts
// and its two implementations: the comma-delimited users.txt file and SQLite.
package users

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/models"
)

// Repository stores users keyed by their case-sensitive username.
type Repository interface {
	// Create persists user. It returns common.ErrorAlreadyExists when the
	// username is taken; the existing record is left untouched.
	Create(ctx context.Context, user *models.User) error

	// GetByUserName returns common.ErrorNotFound when no user matches.
	GetByUserName(ctx context.Context, userName string) (*models.User, error)

	// List returns all users in insertion order.
	List(ctx context.Context) ([]*models.User, error)
}
