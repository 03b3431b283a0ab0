package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/config"
	"github.com/dmitrijs2005/authkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/authkeeper/internal/services"
	"github.com/dmitrijs2005/authkeeper/internal/strength"
)

// Register prompts for a username, password and role and creates the user.
func (a *App) Register(ctx context.Context) error {
	userName, err := GetSimpleText(a.in, "Enter a username", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.in, "Enter a password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	role, err := GetSimpleText(a.in, "Enter user role (user/admin/analyst)", a.out)
	if err != nil {
		return err
	}

	res, err := a.auth.Register(ctx, services.RegisterRequest{
		UserName: userName,
		Password: string(password),
		Role:     role,
	})
	switch {
	case errors.Is(err, common.ErrDuplicateUser):
		a.printf("Username '%s' already exists.\n", userName)
		return nil
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrWeakPassword):
		a.printf("Registration failed: %v\n", err)
		return nil
	case err != nil:
		return err
	}

	a.printf("User '%s' registered successfully with role '%s'.\n", res.User.UserName, res.User.Role)
	a.printf("Password Strength: %s\n", res.Strength)
	return nil
}

// Login prompts for credentials. On success the new session replaces any
// previous one, which is revoked.
func (a *App) Login(ctx context.Context) error {
	userName, err := GetSimpleText(a.in, "Enter your username", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.in, "Enter your password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.auth.Login(ctx, userName, string(password))

	var (
		locked *services.LockedError
		failed *services.FailedAttemptError
	)
	switch {
	case errors.As(err, &locked):
		a.printf("Account is locked. Try again in %d seconds.\n", locked.RemainingSeconds())
		return nil
	case errors.As(err, &failed):
		if failed.Locked {
			a.println("Incorrect username or password. Account locked for 5 minutes.")
		} else {
			a.printf("Incorrect username or password. Attempt %d/%d.\n", failed.Attempt, failed.MaxAttempts)
		}
		return nil
	case err != nil:
		return err
	}

	if a.token != "" {
		if err := a.auth.Logout(ctx, a.token); err != nil {
			a.log.Warn(ctx, "failed to revoke previous session", "error", err)
		}
	}
	a.token, a.userName, a.role = res.Token, res.UserName, res.Role

	a.printf("Login successful. Welcome, %s (%s).\n", res.UserName, res.Role)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if a.token == "" {
		a.println("Not logged in.")
		return nil
	}
	if err := a.auth.Logout(ctx, a.token); err != nil {
		return err
	}
	a.token, a.userName, a.role = "", "", ""
	a.println("Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if a.token == "" {
		a.println("Not logged in.")
		return nil
	}

	user, err := a.auth.WhoAmI(ctx, a.token)
	if errors.Is(err, common.ErrInvalidSession) || errors.Is(err, common.ErrUnknownUser) {
		a.token, a.userName, a.role = "", "", ""
		a.println("Session is no longer valid. Please log in again.")
		return nil
	}
	if err != nil {
		return err
	}

	a.printf("Logged in as %s (%s).\n", user.UserName, user.Role)
	return nil
}

// Strength classifies a password without storing anything.
func (a *App) Strength(ctx context.Context) error {
	password, err := GetPassword(a.in, "Enter a password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	a.printf("Password Strength: %s\n", strength.Classify(string(password)))
	return nil
}

// Migrate copies users.txt from the data directory into the SQLite database.
// Users already in the database are left alone.
func (a *App) Migrate(ctx context.Context) error {
	src, err := repomanager.NewFileRepositoryManager(a.config.DataDir)
	if err != nil {
		return err
	}
	defer src.Close()

	dst := a.repos
	if a.config.Backend != config.BackendSQLite {
		db, err := repomanager.NewSQLiteRepositoryManager(ctx, repomanager.DatabasePath(a.config))
		if err != nil {
			return err
		}
		defer db.Close()
		dst = db
	}

	n, err := services.MigrateUsers(ctx, src.Users(), dst.Users())
	if err != nil {
		return err
	}

	a.printf("Migrated %d user(s) to %s.\n", n, repomanager.DatabasePath(a.config))
	return nil
}
