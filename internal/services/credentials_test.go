package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStore_Register(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()

		u, err := f.creds.Register(ctx, "alice", "Str0ng!Pw", models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, "alice", u.UserName)
		assert.Equal(t, models.RoleAdmin, u.Role)
		assert.NotEqual(t, "Str0ng!Pw", u.PasswordHash)

		stored, err := f.repos.Users().GetByUserName(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, u, stored)

		_, err = f.creds.Register(ctx, "alice", "other", models.RoleUser)
		require.ErrorIs(t, err, common.ErrDuplicateUser)

		again, err := f.repos.Users().GetByUserName(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, stored, again, "duplicate registration must not touch the record")
	})
}

func TestCredentialStore_RegisterDefaultsAndErrors(t *testing.T) {
	f := newFixture(t, backends["file"](t))
	ctx := context.Background()

	u, err := f.creds.Register(ctx, "bob", "pw", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)

	_, err = f.creds.Register(ctx, "carol", "pw", "root")
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = f.creds.Register(ctx, "dave", "", models.RoleUser)
	require.ErrorIs(t, err, common.ErrHashing)

	_, err = f.repos.Users().GetByUserName(ctx, "dave")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCredentialStore_RejectedNamesLeaveStoreReadable(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		_, err := f.creds.Register(ctx, "alice", "Str0ng!Pw", models.RoleUser)
		require.NoError(t, err)

		for _, name := range []string{"", "   ", " bob", "bob ", `bo"b`, "a,b"} {
			_, err := f.creds.Register(ctx, name, "Str0ng!Pw", models.RoleUser)
			require.ErrorIs(t, err, common.ErrValidation, "%q", name)
		}

		ok, err := f.creds.Authenticate(ctx, "alice", "Str0ng!Pw")
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = f.creds.Authenticate(ctx, "bob", "Str0ng!Pw")
		require.ErrorIs(t, err, common.ErrUnknownUser)

		all, err := f.repos.Users().List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestCredentialStore_Authenticate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *fixture) {
		ctx := context.Background()
		_, err := f.creds.Register(ctx, "alice", "Str0ng!Pw", models.RoleAnalyst)
		require.NoError(t, err)

		ok, err := f.creds.Authenticate(ctx, "alice", "Str0ng!Pw")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = f.creds.Authenticate(ctx, "alice", "wrong")
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = f.creds.Authenticate(ctx, "Alice", "Str0ng!Pw")
		require.ErrorIs(t, err, common.ErrUnknownUser)

		role, err := f.creds.GetRole(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAnalyst, role)

		_, err = f.creds.GetRole(ctx, "nobody")
		require.ErrorIs(t, err, common.ErrUnknownUser)
	})
}

func TestCredentialStore_MalformedStoredHash(t *testing.T) {
	f := newFixture(t, backends["file"](t))
	ctx := context.Background()
	require.NoError(t, f.repos.Users().Create(ctx, &models.User{UserName: "eve", PasswordHash: "plaintext", Role: models.RoleUser}))

	_, err := f.creds.Authenticate(ctx, "eve", "plaintext")
	require.ErrorIs(t, err, common.ErrHashing)
}
