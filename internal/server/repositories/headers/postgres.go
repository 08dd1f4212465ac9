package headers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/recordkeeper/recordkeeper/internal/common"
	"github.com/recordkeeper/recordkeeper/internal/dbx"
	"github.com/recordkeeper/recordkeeper/internal/server/models"
)

// PostgresRepository implements header storage over a dbx.DBTX
// (*sql.DB or *sql.Tx). Every query filters by account_id.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a header. A duplicate (account_id, name) pair yields
// common.ErrConflict.
func (r *PostgresRepository) Create(ctx context.Context, header *models.Header) (*models.Header, error) {
	query :=
		`INSERT INTO headers (account_id, name)
		 VALUES ($1, $2)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, header.AccountID, header.Name).
		Scan(&header.ID, &header.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return header, nil
}

// GetByID returns the header only when it belongs to accountID. Absent and
// foreign rows are both common.ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, accountID, id int64) (*models.Header, error) {
	query :=
		`SELECT id, account_id, name, created_at FROM headers
		 WHERE id = $1 AND account_id = $2
		 `

	header := &models.Header{}
	err := r.db.QueryRowContext(ctx, query, id, accountID).
		Scan(&header.ID, &header.AccountID, &header.Name, &header.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return header, nil
}

// SelectByAccount returns all headers for the account ordered by id.
func (r *PostgresRepository) SelectByAccount(ctx context.Context, accountID int64) ([]*models.Header, error) {
	query :=
		`SELECT id, account_id, name, created_at FROM headers
		 WHERE account_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Header
	for rows.Next() {
		var h models.Header
		if err := rows.Scan(&h.ID, &h.AccountID, &h.Name, &h.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
