package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/models"
	"github.com/dmitrijs2005/authkeeper/internal/repositories/lockouts"
	"github.com/dmitrijs2005/authkeeper/internal/timex"
)

// LockStatus is the result of LockoutTracker.Check.
type LockStatus struct {
	Locked    bool
	Remaining time.Duration
}

// RemainingSeconds returns Remaining rounded up to whole seconds.
func (s LockStatus) RemainingSeconds() int {
	return ceilSeconds(s.Remaining)
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// LockoutTracker counts consecutive failed logins per username.
//
// A username with no record is Clear. Failures move it to Accruing and the
// common.MaxFailedAttempts-th failure locks it for common.LockoutWindow.
// While locked, failures are not counted. An Accruing record whose first
// failure is at least one window old starts over at 1.
type LockoutTracker struct {
	repo  lockouts.Repository
	clock timex.Clock
	log   logging.Logger
}

func NewLockoutTracker(repo lockouts.Repository, clock timex.Clock, log logging.Logger) *LockoutTracker {
	return &LockoutTracker{repo: repo, clock: clock, log: log}
}

// Check reports whether userName is locked. An expired lock is deleted and
// reported as not locked.
func (t *LockoutTracker) Check(ctx context.Context, userName string) (LockStatus, error) {
	rec, err := t.repo.Get(ctx, userName)
	if errors.Is(err, common.ErrorNotFound) {
		return LockStatus{}, nil
	}
	if err != nil {
		return LockStatus{}, err
	}

	now := t.clock.Now()
	if rec.IsLocked(now) {
		return LockStatus{Locked: true, Remaining: rec.LockedUntil.Sub(now)}, nil
	}

	if rec.LockExpired(now) {
		if err := t.repo.Delete(ctx, userName); err != nil {
			return LockStatus{}, err
		}
		t.log.Info(ctx, "lock expired", "username", userName)
	}
	return LockStatus{}, nil
}

// RecordFailure counts one failed attempt and returns the updated record.
// The count restarts at 1 once more than LockoutWindow has passed since the
// previous failure.
func (t *LockoutTracker) RecordFailure(ctx context.Context, userName string) (*models.FailureRecord, error) {
	now := t.clock.Now()

	rec, err := t.repo.Update(ctx, userName, func(cur *models.FailureRecord) (*models.FailureRecord, error) {
		if cur != nil && cur.IsLocked(now) {
			return cur, nil
		}

		if cur == nil || cur.LockExpired(now) || now.Sub(cur.LastFailure()) > common.LockoutWindow {
			cur = &models.FailureRecord{UserName: userName, FirstFailureTime: now}
		}

		next := *cur
		next.FailedCount++
		next.LastFailureTime = now
		if next.FailedCount >= common.MaxFailedAttempts {
			until := now.Add(common.LockoutWindow)
			next.LockedUntil = &until
		}
		return &next, nil
	})
	if err != nil {
		return nil, err
	}

	if rec.LockedUntil != nil {
		t.log.Warn(ctx, "account locked", "username", userName, "locked_until", rec.LockedUntil.Format(time.RFC3339))
	}
	return rec, nil
}

// RecordSuccess clears any failures and lock for userName.
func (t *LockoutTracker) RecordSuccess(ctx context.Context, userName string) error {
	return t.repo.Delete(ctx, userName)
}
