package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/authkeeper/internal/filex"
	"github.com/dmitrijs2005/authkeeper/internal/migrations"
	"github.com/dmitrijs2005/authkeeper/internal/repositories/lockouts"
	"github.com/dmitrijs2005/authkeeper/internal/repositories/sessions"
	"github.com/dmitrijs2005/authkeeper/internal/repositories/users"

	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories sharing one
// connection.
type SQLiteRepositoryManager struct {
	db       *sql.DB
	users    *users.SQLiteRepository
	lockouts *lockouts.SQLiteRepository
	sessions *sessions.SQLiteRepository
}

// migrate is a seam for tests.
var migrate = migrations.Up

// NewSQLiteRepositoryManager opens (creating if needed) the database at path
// and brings its schema up to date.
func NewSQLiteRepositoryManager(ctx context.Context, path string) (*SQLiteRepositoryManager, error) {
	if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// single writer
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}

	return &SQLiteRepositoryManager{
		db:       db,
		users:    users.NewSQLiteRepository(db),
		lockouts: lockouts.NewSQLiteRepository(db),
		sessions: sessions.NewSQLiteRepository(db),
	}, nil
}

func (m *SQLiteRepositoryManager) Users() users.Repository       { return m.users }
func (m *SQLiteRepositoryManager) Lockouts() lockouts.Repository { return m.lockouts }
func (m *SQLiteRepositoryManager) Sessions() sessions.Repository { return m.sessions }

func (m *SQLiteRepositoryManager) Close() error {
	return m.db.Close()
}
