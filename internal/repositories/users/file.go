package users

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/models"
)

var fileHeader = []string{"username", "password_hash", "role"}

// FileRepository keeps users in a text file with one "username,password_hash,role"
// line per user, preceded by a header line. The header is optional on read,
// and lines with only two fields get the default role.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Create appends the user and fsyncs the file before returning. Names that
// would not read back verbatim are refused with common.ErrValidation.
func (r *FileRepository) Create(ctx context.Context, user *models.User) error {
	if err := models.ValidateUserName(user.UserName); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.readAll()
	if err != nil {
		return err
	}
	for _, u := range existing {
		if u.UserName == user.UserName {
			return common.ErrorAlreadyExists
		}
	}

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open users file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat users file: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(fileHeader); err != nil {
			return fmt.Errorf("failed to write users header: %w", err)
		}
	}
	if err := w.Write([]string{user.UserName, user.PasswordHash, string(user.Role)}); err != nil {
		return fmt.Errorf("failed to write user %s: %w", user.UserName, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write user %s: %w", user.UserName, err)
	}

	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync users file: %w", err)
	}
	return nil
}

func (r *FileRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.readAll()
	if err != nil {
		return nil, err
	}
	for _, u := range all {
		if u.UserName == userName {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *FileRepository) List(ctx context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.readAll()
}

func (r *FileRepository) readAll() ([]*models.User, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open users file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var result []*models.User
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read users file: %w", err)
		}

		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), fileHeader[0]) {
			continue
		}

		u, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("users file line %d: %w", line, err)
		}
		result = append(result, u)
	}
	return result, nil
}

func parseRecord(record []string) (*models.User, error) {
	if len(record) < 2 || len(record) > 3 {
		return nil, fmt.Errorf("expected 3 fields, got %d", len(record))
	}

	u := &models.User{
		UserName:     record[0],
		PasswordHash: strings.TrimSpace(record[1]),
		Role:         models.RoleUser,
	}
	if len(record) == 3 {
		role, err := models.ParseRole(record[2])
		if err != nil {
			return nil, err
		}
		u.Role = role
	}
	if u.UserName == "" || u.PasswordHash == "" {
		return nil, errors.New("empty username or password hash")
	}
	return u, nil
}
