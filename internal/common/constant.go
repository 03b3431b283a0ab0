package common

import "time"

// Lockout policy. These are fixed and not configurable.
const (
	MaxFailedAttempts = 3
	LockoutWindow     = 5 * time.Minute
)

// SessionTokenBytes is the number of random bytes in a session token.
// Tokens are hex encoded, so the string is twice as long.
const SessionTokenBytes = 32
