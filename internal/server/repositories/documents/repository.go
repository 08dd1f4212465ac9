package documents

import (
	"context"

	"github.com/recordkeeper/recordkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, document *models.Document) (*models.Document, error)
	GetByID(ctx context.Context, accountID, id int64) (*models.Document, error)
	Update(ctx context.Context, document *models.Document) error
	Delete(ctx context.Context, accountID, id int64) error
	DeleteByItem(ctx context.Context, accountID, itemID int64) error
	SelectKeysByItem(ctx context.Context, accountID, itemID int64) ([]string, error)
	SelectRecent(ctx context.Context, accountID int64, limit int) ([]*models.Document, error)
}
