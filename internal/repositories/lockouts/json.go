package lockouts

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/filex"
	"github.com/dmitrijs2005/authkeeper/internal/models"
)

// entry is the on-disk shape of one record in failed_attempts.json.
type entry struct {
	FailedCount      int        `json:"failed_count"`
	FirstFailureTime time.Time  `json:"first_failure_time"`
	LastFailureTime  time.Time  `json:"last_failure_time,omitzero"`
	LockedUntil      *time.Time `json:"locked_until"`
}

// JSONRepository keeps all records in a single JSON object keyed by username.
// Every operation reads the file; writes replace it atomically.
type JSONRepository struct {
	path string
	mu   sync.Mutex
}

func NewJSONRepository(path string) *JSONRepository {
	return &JSONRepository{path: path}
}

func (r *JSONRepository) Get(ctx context.Context, userName string) (*models.FailureRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return nil, err
	}
	e, ok := all[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return toModel(userName, e), nil
}

func (r *JSONRepository) Update(ctx context.Context, userName string, fn UpdateFunc) (*models.FailureRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return nil, err
	}

	var current *models.FailureRecord
	if e, ok := all[userName]; ok {
		current = toModel(userName, e)
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}

	if next == nil {
		if current == nil {
			return nil, nil
		}
		delete(all, userName)
	} else {
		all[userName] = entry{
			FailedCount:      next.FailedCount,
			FirstFailureTime: next.FirstFailureTime,
			LastFailureTime:  next.LastFailureTime,
			LockedUntil:      next.LockedUntil,
		}
	}

	if err := filex.WriteJSON(r.path, all); err != nil {
		return nil, err
	}
	return next, nil
}

func (r *JSONRepository) Delete(ctx context.Context, userName string) error {
	_, err := r.Update(ctx, userName, func(*models.FailureRecord) (*models.FailureRecord, error) {
		return nil, nil
	})
	return err
}

func (r *JSONRepository) load() (map[string]entry, error) {
	all := make(map[string]entry)
	if err := filex.ReadJSON(r.path, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func toModel(userName string, e entry) *models.FailureRecord {
	return &models.FailureRecord{
		UserName:         userName,
		FailedCount:      e.FailedCount,
		FirstFailureTime: e.FirstFailureTime,
		LastFailureTime:  e.LastFailureTime,
		LockedUntil:      e.LockedUntil,
	}
}
