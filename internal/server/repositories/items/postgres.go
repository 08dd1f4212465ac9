package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/recordkeeper/recordkeeper/internal/common"
	"github.com/recordkeeper/recordkeeper/internal/dbx"
	"github.com/recordkeeper/recordkeeper/internal/server/models"
)

// PostgresRepository implements item storage over a dbx.DBTX
// (*sql.DB or *sql.Tx). Every query filters by account_id.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an item. The caller is responsible for resolving
// header_name from a header the account owns.
func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	query :=
		`INSERT INTO items (account_id, header_id, header_name, title, short_desc, long_desc, highlights)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.AccountID, item.HeaderID, item.HeaderName, item.Title,
		item.ShortDesc, item.LongDesc, item.Highlights).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// GetByID returns the item only when it belongs to accountID.
func (r *PostgresRepository) GetByID(ctx context.Context, accountID, id int64) (*models.Item, error) {
	query :=
		`SELECT id, account_id, header_id, header_name, title, short_desc, long_desc, highlights, created_at
		 FROM items
		 WHERE id = $1 AND account_id = $2
		 `

	item := &models.Item{}
	err := r.db.QueryRowContext(ctx, query, id, accountID).
		Scan(&item.ID, &item.AccountID, &item.HeaderID, &item.HeaderName, &item.Title,
			&item.ShortDesc, &item.LongDesc, &item.Highlights, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// SelectByAccount returns all items for the account ordered by id.
func (r *PostgresRepository) SelectByAccount(ctx context.Context, accountID int64) ([]*models.Item, error) {
	query :=
		`SELECT id, account_id, header_id, header_name, title, short_desc, long_desc, highlights, created_at
		 FROM items
		 WHERE account_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.AccountID, &item.HeaderID, &item.HeaderName, &item.Title,
			&item.ShortDesc, &item.LongDesc, &item.Highlights, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the item row. Both a missing row and a row owned by a
// different account report common.ErrNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, accountID, id int64) error {
	query := `DELETE FROM items WHERE id = $1 AND account_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, accountID)
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
