package reminders

import (
	"context"

	"github.com/recordkeeper/recordkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error)
	Update(ctx context.Context, reminder *models.Reminder) error
	Delete(ctx context.Context, accountID, id int64) error
	DeleteByItem(ctx context.Context, accountID, itemID int64) error
	SelectByAccount(ctx context.Context, accountID int64) ([]*models.Reminder, error)
}
