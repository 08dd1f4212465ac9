package items

import (
	"context"

	"github.com/recordkeeper/recordkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	GetByID(ctx context.Context, accountID, id int64) (*models.Item, error)
	SelectByAccount(ctx context.Context, accountID int64) ([]*models.Item, error)
	Delete(ctx context.Context, accountID, id int64) error
}
