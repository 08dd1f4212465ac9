package headers

import (
	"context"

	"github.com/recordkeeper/recordkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, header *models.Header) (*models.Header, error)
	GetByID(ctx context.Context, accountID, id int64) (*models.Header, error)
	SelectByAccount(ctx context.Context, accountID int64) ([]*models.Header, error)
}
