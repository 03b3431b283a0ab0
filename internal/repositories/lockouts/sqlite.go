package lockouts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/models"
)

// SQLiteRepository stores records in the failed_attempts table.
// Timestamps are unix nanoseconds; a last_failure_time of 0 means unset.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, userName string) (*models.FailureRecord, error) {
	rec, err := get(ctx, r.db, userName)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, common.ErrorNotFound
	}
	return rec, nil
}

// Update runs the read-modify-write inside one transaction.
func (r *SQLiteRepository) Update(ctx context.Context, userName string, fn UpdateFunc) (*models.FailureRecord, error) {
	var stored *models.FailureRecord

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := get(ctx, tx, userName)
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		if next == nil {
			stored = nil
			return remove(ctx, tx, userName)
		}

		stored = next
		return upsert(ctx, tx, userName, next)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, userName string) error {
	return remove(ctx, r.db, userName)
}

func get(ctx context.Context, db dbx.DBTX, userName string) (*models.FailureRecord, error) {
	var (
		count       int
		firstNanos  int64
		lastNanos   int64
		lockedNanos sql.NullInt64
	)

	err := db.QueryRowContext(ctx, `
		SELECT failed_count, first_failure_time, last_failure_time, locked_until
		FROM failed_attempts WHERE username = ?
	`, userName).Scan(&count, &firstNanos, &lastNanos, &lockedNanos)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get failed attempts[%s]: %w", userName, err)
	}

	rec := &models.FailureRecord{
		UserName:         userName,
		FailedCount:      count,
		FirstFailureTime: time.Unix(0, firstNanos).UTC(),
	}
	if lastNanos != 0 {
		rec.LastFailureTime = time.Unix(0, lastNanos).UTC()
	}
	if lockedNanos.Valid {
		until := time.Unix(0, lockedNanos.Int64).UTC()
		rec.LockedUntil = &until
	}
	return rec, nil
}

func upsert(ctx context.Context, db dbx.DBTX, userName string, rec *models.FailureRecord) error {
	var locked sql.NullInt64
	if rec.LockedUntil != nil {
		locked = sql.NullInt64{Int64: rec.LockedUntil.UnixNano(), Valid: true}
	}
	var lastNanos int64
	if !rec.LastFailureTime.IsZero() {
		lastNanos = rec.LastFailureTime.UnixNano()
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO failed_attempts (username, failed_count, first_failure_time, last_failure_time, locked_until)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET
			failed_count = excluded.failed_count,
			first_failure_time = excluded.first_failure_time,
			last_failure_time = excluded.last_failure_time,
			locked_until = excluded.locked_until
	`, userName, rec.FailedCount, rec.FirstFailureTime.UnixNano(), lastNanos, locked)
	if err != nil {
		return fmt.Errorf("failed to save failed attempts[%s]: %w", userName, err)
	}
	return nil
}

func remove(ctx context.Context, db dbx.DBTX, userName string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM failed_attempts WHERE username = ?`, userName)
	if err != nil {
		return fmt.Errorf("failed to delete failed attempts[%s]: %w", userName, err)
	}
	return nil
}
