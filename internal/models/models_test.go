package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "", want: RoleUser},
		{in: "user", want: RoleUser},
		{in: "Admin", want: RoleAdmin},
		{in: " analyst ", want: RoleAnalyst},
		{in: "root", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestValidateUserName(t *testing.T) {
	valid := []string{"alice", "Bob", "mary jane", "ünïcode"}
	for _, name := range valid {
		assert.NoError(t, ValidateUserName(name), name)
	}

	invalid := []string{"", "   ", "\t", " bob", "bob ", "a,b", `bo"b`, "a\nb", "a\rb"}
	for _, name := range invalid {
		assert.Error(t, ValidateUserName(name), "%q", name)
	}
}

func TestFailureRecord_LockState(t *testing.T) {
	now := time.Date(2024, 11, 21, 10, 0, 0, 0, time.UTC)
	until := now.Add(5 * time.Minute)

	accruing := &FailureRecord{UserName: "alice", FailedCount: 2, FirstFailureTime: now}
	assert.False(t, accruing.IsLocked(now))
	assert.False(t, accruing.LockExpired(now))

	locked := &FailureRecord{UserName: "alice", FailedCount: 3, FirstFailureTime: now, LockedUntil: &until}
	assert.True(t, locked.IsLocked(now))
	assert.True(t, locked.IsLocked(until.Add(-time.Nanosecond)))
	assert.False(t, locked.LockExpired(now))

	assert.False(t, locked.IsLocked(until))
	assert.True(t, locked.LockExpired(until))
}

func TestFailureRecord_LastFailure(t *testing.T) {
	first := time.Date(2024, 11, 21, 10, 0, 0, 0, time.UTC)

	legacy := &FailureRecord{FailedCount: 2, FirstFailureTime: first}
	assert.True(t, first.Equal(legacy.LastFailure()))

	rec := &FailureRecord{FailedCount: 2, FirstFailureTime: first, LastFailureTime: first.Add(4 * time.Minute)}
	assert.True(t, first.Add(4*time.Minute).Equal(rec.LastFailure()))
}
