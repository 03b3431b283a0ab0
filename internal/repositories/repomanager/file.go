package repomanager

import (
	"path/filepath"

	"github.com/dmitrijs2005/authkeeper/internal/filex"
	"github.com/dmitrijs2005/authkeeper/internal/repositories/lockouts"
	"github.com/dmitrijs2005/authkeeper/internal/repositories/sessions"
	"github.com/dmitrijs2005/authkeeper/internal/repositories/users"
)

const (
	UsersFile    = "users.txt"
	LockoutsFile = "failed_attempts.json"
	SessionsFile = "sessions.json"
)

// FileRepositoryManager keeps all state as files in one directory.
type FileRepositoryManager struct {
	users    *users.FileRepository
	lockouts *lockouts.JSONRepository
	sessions *sessions.JSONRepository
}

// NewFileRepositoryManager creates dir if needed. Files themselves are
// created lazily on first write.
func NewFileRepositoryManager(dir string) (*FileRepositoryManager, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}

	return &FileRepositoryManager{
		users:    users.NewFileRepository(filepath.Join(abs, UsersFile)),
		lockouts: lockouts.NewJSONRepository(filepath.Join(abs, LockoutsFile)),
		sessions: sessions.NewJSONRepository(filepath.Join(abs, SessionsFile)),
	}, nil
}

func (m *FileRepositoryManager) Users() users.Repository       { return m.users }
func (m *FileRepositoryManager) Lockouts() lockouts.Repository { return m.lockouts }
func (m *FileRepositoryManager) Sessions() sessions.Repository { return m.sessions }
func (m *FileRepositoryManager) Close() error                  { return nil }
