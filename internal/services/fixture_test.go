package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/cryptox"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/authkeeper/internal/timex"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 11, 21, 10, 0, 0, 0, time.UTC)

type fixture struct {
	clock    *timex.ManualClock
	repos    repomanager.RepositoryManager
	creds    *CredentialStore
	tracker  *LockoutTracker
	registry *SessionRegistry
	auth     *AuthService
}

var backends = map[string]func(t *testing.T) repomanager.RepositoryManager{
	"file": func(t *testing.T) repomanager.RepositoryManager {
		m, err := repomanager.NewFileRepositoryManager(t.TempDir())
		require.NoError(t, err)
		return m
	},
	"sqlite": func(t *testing.T) repomanager.RepositoryManager {
		m, err := repomanager.NewSQLiteRepositoryManager(context.Background(), filepath.Join(t.TempDir(), "auth.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = m.Close() })
		return m
	},
}

func newFixture(t *testing.T, repos repomanager.RepositoryManager) *fixture {
	t.Helper()

	hasher, err := cryptox.NewHasher(cryptox.AlgorithmBcrypt, 4)
	require.NoError(t, err)

	log := logging.Nop()
	clock := timex.NewManualClock(start)

	f := &fixture{
		clock: clock,
		repos: repos,
		creds: NewCredentialStore(repos.Users(), hasher, log),
	}
	f.tracker = NewLockoutTracker(repos.Lockouts(), clock, log)
	f.registry = NewSessionRegistry(repos.Sessions(), clock, log)
	f.auth, err = NewAuthService(f.creds, f.tracker, f.registry, log, "")
	require.NoError(t, err)
	return f
}

// forEachBackend runs fn against a fresh fixture per storage backend.
func forEachBackend(t *testing.T, fn func(t *testing.T, f *fixture)) {
	for name, newRepos := range backends {
		t.Run(name, func(t *testing.T) {
			fn(t, newFixture(t, newRepos(t)))
		})
	}
}
