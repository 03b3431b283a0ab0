package models

import "time"

// FailureRecord tracks consecutive failed logins for one username.
// LockedUntil is set only once FailedCount reaches the lockout threshold.
type FailureRecord struct {
	UserName         string
	FailedCount      int
	FirstFailureTime time.Time
	LastFailureTime  time.Time
	LockedUntil      *time.Time
}

// LastFailure is the time of the most recent failure. Records written
// before LastFailureTime was tracked fall back to FirstFailureTime.
func (r *FailureRecord) LastFailure() time.Time {
	if r.LastFailureTime.IsZero() {
		return r.FirstFailureTime
	}
	return r.LastFailureTime
}

// IsLocked reports whether the lock is still in force at now.
func (r *FailureRecord) IsLocked(now time.Time) bool {
	return r.LockedUntil != nil && now.Before(*r.LockedUntil)
}

// LockExpired reports whether the record was locked and the lock has run out.
func (r *FailureRecord) LockExpired(now time.Time) bool {
	return r.LockedUntil != nil && !now.Before(*r.LockedUntil)
}
