package reminders

import (
	"context"
	"fmt"

	"github.com/recordkeeper/recordkeeper/internal/common"
	"github.com/recordkeeper/recordkeeper/internal/dbx"
	"github.com/recordkeeper/recordkeeper/internal/server/models"
)

// PostgresRepository implements reminder storage over a dbx.DBTX
// (*sql.DB or *sql.Tx). Every query filters by account_id.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a reminder.
func (r *PostgresRepository) Create(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	query :=
		`INSERT INTO reminders (account_id, item_id, name, target_date, before_lead)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		reminder.AccountID, reminder.ItemID, reminder.Name, reminder.TargetDate, reminder.Before).
		Scan(&reminder.ID, &reminder.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return reminder, nil
}

// Update rewrites name, target date, and lead. A missing or foreign row is
// common.ErrNotFound.
func (r *PostgresRepository) Update(ctx context.Context, reminder *models.Reminder) error {
	query :=
		`UPDATE reminders SET name = $1, target_date = $2, before_lead = $3
		 WHERE id = $4 AND account_id = $5
		 `

	res, err := r.db.ExecContext(ctx, query,
		reminder.Name, reminder.TargetDate, reminder.Before, reminder.ID, reminder.AccountID)
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

// Delete removes a single reminder.
func (r *PostgresRepository) Delete(ctx context.Context, accountID, id int64) error {
	query := `DELETE FROM reminders WHERE id = $1 AND account_id = $2`

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

// DeleteByItem removes all reminders of an item. Zero rows affected is
// fine: an item may have no reminders.
func (r *PostgresRepository) DeleteByItem(ctx context.Context, accountID, itemID int64) error {
	query := `DELETE FROM reminders WHERE item_id = $1 AND account_id = $2`

	if _, err := r.db.ExecContext(ctx, query, itemID, accountID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// SelectByAccount returns all reminders for the account ordered by
// ascending id, the order the alert evaluator reports them in.
func (r *PostgresRepository) SelectByAccount(ctx context.Context, accountID int64) ([]*models.Reminder, error) {
	query :=
		`SELECT id, account_id, item_id, name, target_date, before_lead, created_at
		 FROM reminders
		 WHERE account_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Reminder
	for rows.Next() {
		var rem models.Reminder
		if err := rows.Scan(&rem.ID, &rem.AccountID, &rem.ItemID, &rem.Name,
			&rem.TargetDate, &rem.Before, &rem.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &rem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
