package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/recordkeeper/recordkeeper/internal/common"
	"github.com/recordkeeper/recordkeeper/internal/dbx"
	"github.com/recordkeeper/recordkeeper/internal/server/models"
)

// PostgresRepository implements document metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx). The blob content itself lives in object storage;
// rows here only carry the storage key. Every query filters by account_id.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a document row referencing an already-uploaded blob.
func (r *PostgresRepository) Create(ctx context.Context, document *models.Document) (*models.Document, error) {
	query :=
		`INSERT INTO documents (account_id, item_id, name, renewal_required, storage_key)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		document.AccountID, document.ItemID, document.Name,
		document.RenewalRequired, document.StorageKey).
		Scan(&document.ID, &document.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return document, nil
}

// GetByID returns the document only when it belongs to accountID.
func (r *PostgresRepository) GetByID(ctx context.Context, accountID, id int64) (*models.Document, error) {
	query :=
		`SELECT id, account_id, item_id, name, renewal_required, storage_key, created_at
		 FROM documents
		 WHERE id = $1 AND account_id = $2
		 `

	document := &models.Document{}
	err := r.db.QueryRowContext(ctx, query, id, accountID).
		Scan(&document.ID, &document.AccountID, &document.ItemID, &document.Name,
			&document.RenewalRequired, &document.StorageKey, &document.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return document, nil
}

// Update rewrites name and storage key.
func (r *PostgresRepository) Update(ctx context.Context, document *models.Document) error {
	query :=
		`UPDATE documents SET name = $1, storage_key = $2
		 WHERE id = $3 AND account_id = $4
		 `

	res, err := r.db.ExecContext(ctx, query,
		document.Name, document.StorageKey, document.ID, document.AccountID)
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

// Delete removes the document row. The blob is the caller's concern.
func (r *PostgresRepository) Delete(ctx context.Context, accountID, id int64) error {
	query := `DELETE FROM documents WHERE id = $1 AND account_id = $2`

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

// DeleteByItem removes all document rows of an item. Zero rows affected is
// fine: an item may have no documents.
func (r *PostgresRepository) DeleteByItem(ctx context.Context, accountID, itemID int64) error {
	query := `DELETE FROM documents WHERE item_id = $1 AND account_id = $2`

	if _, err := r.db.ExecContext(ctx, query, itemID, accountID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// SelectKeysByItem returns the storage keys of an item's documents, used to
// report blobs left behind by a cascade delete.
func (r *PostgresRepository) SelectKeysByItem(ctx context.Context, accountID, itemID int64) ([]string, error) {
	query :=
		`SELECT storage_key FROM documents
		 WHERE item_id = $1 AND account_id = $2
		 `

	rows, err := r.db.QueryContext(ctx, query, itemID, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// SelectRecent returns the newest documents for the account, newest first,
// bounded by limit.
func (r *PostgresRepository) SelectRecent(ctx context.Context, accountID int64, limit int) ([]*models.Document, error) {
	query :=
		`SELECT id, account_id, item_id, name, renewal_required, storage_key, created_at
		 FROM documents
		 WHERE account_id = $1
		 ORDER BY id DESC
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.AccountID, &d.ItemID, &d.Name,
			&d.RenewalRequired, &d.StorageKey, &d.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
