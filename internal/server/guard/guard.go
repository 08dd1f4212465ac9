// Package guard implements the ownership check applied before any
// single-resource read or mutation: a resource may only be touched by the
// account that owns it, and a foreign resource must look exactly like a
// missing one.
package guard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/recordkeeper/recordkeeper/internal/common"
	"github.com/recordkeeper/recordkeeper/internal/dbx"
)

// Table names the guard accepts. The allow-list exists because table names
// cannot be bound as SQL parameters.
const (
	TableHeaders   = "headers"
	TableItems     = "items"
	TableReminders = "reminders"
	TableDocuments = "documents"
)

var allowedTables = map[string]struct{}{
	TableHeaders:   {},
	TableItems:     {},
	TableReminders: {},
	TableDocuments: {},
}

// Guard verifies resource ownership against the database.
type Guard struct {
	db dbx.DBTX
}

func New(db dbx.DBTX) *Guard {
	return &Guard{db: db}
}

// Verify returns nil when the resource exists and belongs to accountID.
// Both "does not exist" and "belongs to another account" return
// common.ErrNotFound; callers must not be able to tell them apart.
func (g *Guard) Verify(ctx context.Context, accountID int64, table string, resourceID int64) error {
	if _, ok := allowedTables[table]; !ok {
		return fmt.Errorf("guard: unknown table %q", table)
	}

	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE id = $1 AND account_id = $2`, table)

	var one int
	err := g.db.QueryRowContext(ctx, query, resourceID, accountID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
