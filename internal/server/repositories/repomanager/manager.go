package repomanager

import (
	"context"
	"database/sql"

	"github.com/recordkeeper/recordkeeper/internal/dbx"
	"github.com/recordkeeper/recordkeeper/internal/server/repositories/accounts"
	"github.com/recordkeeper/recordkeeper/internal/server/repositories/documents"
	"github.com/recordkeeper/recordkeeper/internal/server/repositories/headers"
	"github.com/recordkeeper/recordkeeper/internal/server/repositories/items"
	"github.com/recordkeeper/recordkeeper/internal/server/repositories/reminders"
)

// RepositoryManager vends repository implementations bound to a DBTX,
// which lets services run the same repositories against *sql.DB or an
// open *sql.Tx.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Headers(db dbx.DBTX) headers.Repository
	Items(db dbx.DBTX) items.Repository
	Reminders(db dbx.DBTX) reminders.Repository
	Documents(db dbx.DBTX) documents.Repository
}
