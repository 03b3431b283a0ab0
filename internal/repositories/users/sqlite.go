package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)
		ON CONFLICT(username) DO NOTHING
	`, user.UserName, user.PasswordHash, string(user.Role))
	if err != nil {
		return fmt.Errorf("failed to insert user[%s]: %w", user.UserName, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to insert user[%s]: %w", user.UserName, err)
	}
	if n == 0 {
		return common.ErrorAlreadyExists
	}
	return nil
}

func (r *SQLiteRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	u := &models.User{}
	var role string

	err := r.db.QueryRowContext(ctx,
		`SELECT username, password_hash, role FROM users WHERE username = ?`, userName).
		Scan(&u.UserName, &u.PasswordHash, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user[%s]: %w", userName, err)
	}

	u.Role = models.Role(role)
	return u, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT username, password_hash, role FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		u := &models.User{}
		var role string
		if err := rows.Scan(&u.UserName, &u.PasswordHash, &role); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		u.Role = models.Role(role)
		result = append(result, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}
	return result, nil
}
