package services

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// LockedError rejects a login for a locked account. It matches
// common.ErrLocked with errors.Is.
type LockedError struct {
	UserName  string
	Remaining time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("account is locked, try again in %d seconds", e.RemainingSeconds())
}

func (e *LockedError) Unwrap() error { return common.ErrLocked }

// RemainingSeconds returns the lock time left, rounded up.
func (e *LockedError) RemainingSeconds() int { return ceilSeconds(e.Remaining) }

// FailedAttemptError is returned for a wrong password and for an unknown
// username alike. It matches common.ErrInvalidCredentials with errors.Is.
type FailedAttemptError struct {
	Attempt     int
	MaxAttempts int
	// Locked is set when this attempt locked the account.
	Locked bool
}

func (e *FailedAttemptError) Error() string {
	return fmt.Sprintf("%v (attempt %d/%d)", common.ErrInvalidCredentials, e.Attempt, e.MaxAttempts)
}

func (e *FailedAttemptError) Unwrap() error { return common.ErrInvalidCredentials }
