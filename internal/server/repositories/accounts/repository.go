package accounts

import (
	"context"

	"github.com/recordkeeper/recordkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetActiveByEmail(ctx context.Context, email string) (*models.Account, error)
	Disable(ctx context.Context, id int64) error
}
