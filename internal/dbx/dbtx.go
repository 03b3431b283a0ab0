// Package dbx holds the pieces shared by the SQLite repositories: DBTX,
// satisfied by both *sql.DB and *sql.Tx, and WithTx for read-modify-write
// sequences such as the failed_attempts counter.
package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is what the repositories need from database/sql, so query helpers
// run unchanged on the pool or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn in a transaction. It commits when fn returns nil and rolls
// back when fn fails or panics; a panic is re-raised after the rollback.
// The lockout counter is bumped like this:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    var n int
//	    err := tx.QueryRowContext(ctx, `SELECT failed_count FROM failed_attempts WHERE username = ?`, name).Scan(&n)
//	    if err != nil && !errors.Is(err, sql.ErrNoRows) {
//	        return err
//	    }
//	    _, err = tx.ExecContext(ctx, `INSERT INTO failed_attempts ... ON CONFLICT(username) DO UPDATE ...`, name, n+1)
//	    return err
//	})
//
// fn must only use tx. The pool holds one connection, so a query on db
// inside fn waits on the transaction forever.
//
// A failed rollback is joined to fn's error.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("failed to roll back: %w", rbErr))
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	return fn(ctx, tx)
}
