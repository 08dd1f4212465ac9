// Package dbx holds the small database plumbing the repositories share:
// the DBTX handle they run their queries through, a transaction wrapper,
// and Postgres error classification.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the query surface repositories are written against. *sql.DB and
// *sql.Tx both satisfy it, which is what lets the repository manager vend
// the same repository inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction: commit when fn returns nil, rollback
// when it returns an error or panics (the panic is rethrown). The services
// use it for multi-row steps that must land atomically, like the item
// cascade delete and the document row update during a replace:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    return repomanager.Documents(tx).Update(ctx, doc)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
