package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/filex"
	"github.com/dmitrijs2005/authkeeper/internal/models"
)

type entry struct {
	UserName string    `json:"username"`
	IssuedAt time.Time `json:"issued_at"`
}

// JSONRepository keeps sessions in sessions.json keyed by token.
type JSONRepository struct {
	path string
	mu   sync.Mutex
}

func NewJSONRepository(path string) *JSONRepository {
	return &JSONRepository{path: path}
}

func (r *JSONRepository) Create(ctx context.Context, s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return err
	}
	if _, ok := all[s.Token]; ok {
		return common.ErrorAlreadyExists
	}

	all[s.Token] = entry{UserName: s.UserName, IssuedAt: s.IssuedAt}
	return filex.WriteJSON(r.path, all)
}

func (r *JSONRepository) Get(ctx context.Context, token string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return nil, err
	}
	e, ok := all[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.Session{Token: token, UserName: e.UserName, IssuedAt: e.IssuedAt}, nil
}

func (r *JSONRepository) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return err
	}
	if _, ok := all[token]; !ok {
		return nil
	}

	delete(all, token)
	return filex.WriteJSON(r.path, all)
}

func (r *JSONRepository) DeleteIssuedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return 0, err
	}

	n := 0
	for token, e := range all {
		if e.IssuedAt.Before(cutoff) {
			delete(all, token)
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}

	if err := filex.WriteJSON(r.path, all); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *JSONRepository) load() (map[string]entry, error) {
	all := make(map[string]entry)
	if err := filex.ReadJSON(r.path, &all); err != nil {
		return nil, err
	}
	return all, nil
}
