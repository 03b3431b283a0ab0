package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/repositories/users"
)

// MigrateUsers copies every user from src into dst, keeping hashes and roles
// as they are. Usernames already present in dst are skipped. It returns the
// number of users copied.
func MigrateUsers(ctx context.Context, src, dst users.Repository) (int, error) {
	all, err := src.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("error reading source users: %w", err)
	}

	n := 0
	for _, u := range all {
		if err := dst.Create(ctx, u); err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				continue
			}
			return n, fmt.Errorf("error migrating user %s: %w", u.UserName, err)
		}
		n++
	}
	return n, nil
}
