package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockoutTracker_LocksOnThirdFailure(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()

		for i := 1; i <= 2; i++ {
			rec, err := f.tracker.RecordFailure(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, i, rec.FailedCount)
			assert.Nil(t, rec.LockedUntil)

			st, err := f.tracker.Check(ctx, "alice")
			require.NoError(t, err)
			assert.False(t, st.Locked)
			f.clock.Advance(10 * time.Second)
		}

		rec, err := f.tracker.RecordFailure(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 3, rec.FailedCount)
		require.NotNil(t, rec.LockedUntil)
		assert.True(t, f.clock.Now().Add(common.LockoutWindow).Equal(*rec.LockedUntil))

		st, err := f.tracker.Check(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, st.Locked)
		assert.Equal(t, common.LockoutWindow, st.Remaining)
		assert.Equal(t, 300, st.RemainingSeconds())

		other, err := f.tracker.Check(ctx, "bob")
		require.NoError(t, err)
		assert.False(t, other.Locked)
	})
}

func TestLockoutTracker_NoIncrementWhileLocked(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		for i := 0; i < 3; i++ {
			_, err := f.tracker.RecordFailure(ctx, "alice")
			require.NoError(t, err)
		}
		locked, err := f.repos.Lockouts().Get(ctx, "alice")
		require.NoError(t, err)

		f.clock.Advance(time.Minute)
		rec, err := f.tracker.RecordFailure(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 3, rec.FailedCount)
		assert.True(t, locked.LockedUntil.Equal(*rec.LockedUntil), "lock must not be extended")
	})
}

func TestLockoutTracker_LockExpiresAndIsCleared(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		for i := 0; i < 3; i++ {
			_, err := f.tracker.RecordFailure(ctx, "alice")
			require.NoError(t, err)
		}

		f.clock.Advance(common.LockoutWindow - 1500*time.Millisecond)
		st, err := f.tracker.Check(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, st.Locked)
		assert.Equal(t, 2, st.RemainingSeconds())

		f.clock.Advance(1500 * time.Millisecond)
		st, err = f.tracker.Check(ctx, "alice")
		require.NoError(t, err)
		assert.False(t, st.Locked)

		_, err = f.repos.Lockouts().Get(ctx, "alice")
		require.ErrorIs(t, err, common.ErrorNotFound)

		rec, err := f.tracker.RecordFailure(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 1, rec.FailedCount)
	})
}

func TestLockoutTracker_ExpiredLockRestartsCountWithoutCheck(t *testing.T) {
	f := newFixture(t, backends["file"](t))
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.tracker.RecordFailure(ctx, "alice")
		require.NoError(t, err)
	}

	f.clock.Advance(common.LockoutWindow)
	rec, err := f.tracker.RecordFailure(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.FailedCount)
	assert.Nil(t, rec.LockedUntil)
}

func TestLockoutTracker_StaleFailuresStartOver(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		_, err := f.tracker.RecordFailure(ctx, "alice")
		require.NoError(t, err)
		_, err = f.tracker.RecordFailure(ctx, "alice")
		require.NoError(t, err)

		f.clock.Advance(common.LockoutWindow + time.Second)
		rec, err := f.tracker.RecordFailure(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 1, rec.FailedCount)
		assert.True(t, f.clock.Now().Equal(rec.FirstFailureTime))
		assert.True(t, f.clock.Now().Equal(rec.LastFailureTime))
		assert.Nil(t, rec.LockedUntil)
	})
}

func TestLockoutTracker_WindowSlidesFromLastFailure(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		first := f.clock.Now()

		rec, err := f.tracker.RecordFailure(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, 1, rec.FailedCount)

		f.clock.Advance(4 * time.Minute)
		rec, err = f.tracker.RecordFailure(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, 2, rec.FailedCount)

		// eight minutes after the first failure, four after the last
		f.clock.Advance(4 * time.Minute)
		rec, err = f.tracker.RecordFailure(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 3, rec.FailedCount)
		assert.True(t, first.Equal(rec.FirstFailureTime))
		require.NotNil(t, rec.LockedUntil)

		status, err := f.tracker.Check(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, status.Locked)
	})
}

func TestLockoutTracker_WindowBoundaryKeepsCount(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		_, err := f.tracker.RecordFailure(ctx, "alice")
		require.NoError(t, err)

		f.clock.Advance(common.LockoutWindow)
		rec, err := f.tracker.RecordFailure(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 2, rec.FailedCount)
	})
}

func TestLockoutTracker_RecordSuccessClears(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		_, err := f.tracker.RecordFailure(ctx, "alice")
		require.NoError(t, err)
		_, err = f.tracker.RecordFailure(ctx, "alice")
		require.NoError(t, err)

		require.NoError(t, f.tracker.RecordSuccess(ctx, "alice"))
		require.NoError(t, f.tracker.RecordSuccess(ctx, "alice"))

		rec, err := f.tracker.RecordFailure(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 1, rec.FailedCount)
	})
}

func TestLockoutTracker_SurvivesRestart(t *testing.T) {
	repos := backends["file"](t)
	f := newFixture(t, repos)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.tracker.RecordFailure(ctx, "alice")
		require.NoError(t, err)
	}

	restarted := NewLockoutTracker(repos.Lockouts(), f.clock, logging.Nop())
	st, err := restarted.Check(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, st.Locked)
}

func TestLockStatus_RemainingSeconds(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want int
	}{
		{0, 0},
		{-time.Second, 0},
		{time.Nanosecond, 1},
		{time.Second, 1},
		{time.Second + time.Millisecond, 2},
		{5 * time.Minute, 300},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LockStatus{Locked: true, Remaining: tt.d}.RemainingSeconds(), tt.d.String())
	}
}
