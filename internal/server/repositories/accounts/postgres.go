package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/recordkeeper/recordkeeper/internal/common"
	"github.com/recordkeeper/recordkeeper/internal/dbx"
	"github.com/recordkeeper/recordkeeper/internal/server/models"
)

// PostgresRepository implements account storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new active account. A duplicate email yields
// common.ErrConflict.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query :=
		`INSERT INTO accounts (name, email, password_hash, mobile, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.Name, account.Email, account.PasswordHash, account.Mobile, models.AccountStatusActive).
		Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	account.Status = models.AccountStatusActive
	return account, nil
}

// GetActiveByEmail returns the active account with the given email.
// Disabled accounts are invisible here, matching the login contract.
func (r *PostgresRepository) GetActiveByEmail(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT id, name, email, password_hash, mobile, status, created_at FROM accounts
		 WHERE email = $1 AND status = $2
		 `

	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, email, models.AccountStatusActive).
		Scan(&account.ID, &account.Name, &account.Email, &account.PasswordHash,
			&account.Mobile, &account.Status, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

// Disable flips the account status to disabled. Rows are never deleted.
func (r *PostgresRepository) Disable(ctx context.Context, id int64) error {
	query :=
		`UPDATE accounts SET status = $1
		 WHERE id = $2 AND status = $3
		 `

	res, err := r.db.ExecContext(ctx, query, models.AccountStatusDisabled, id, models.AccountStatusActive)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
