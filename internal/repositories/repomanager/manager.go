// Package repomanager wires the users, lockouts and sessions repositories for
// one storage backend: plain files in a data directory or a SQLite database.
package repomanager

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/authkeeper/internal/config"
	"github.com/dmitrijs2005/authkeeper/internal/repositories/lockouts"
	"github.com/dmitrijs2005/authkeeper/internal/repositories/sessions"
	"github.com/dmitrijs2005/authkeeper/internal/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Lockouts() lockouts.Repository
	Sessions() sessions.Repository
	Close() error
}

// New opens the backend selected in cfg. A relative DatabaseFile is resolved
// against DataDir.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return NewFileRepositoryManager(cfg.DataDir)
	case config.BackendSQLite:
		return NewSQLiteRepositoryManager(ctx, DatabasePath(cfg))
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// DatabasePath returns the SQLite file path for cfg.
func DatabasePath(cfg *config.Config) string {
	if filepath.IsAbs(cfg.DatabaseFile) {
		return cfg.DatabaseFile
	}
	return filepath.Join(cfg.DataDir, cfg.DatabaseFile)
}
