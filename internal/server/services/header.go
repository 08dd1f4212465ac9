package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/recordkeeper/recordkeeper/internal/common"
	"github.com/recordkeeper/recordkeeper/internal/server/models"
	"github.com/recordkeeper/recordkeeper/internal/server/repositories/repomanager"
)

// HeaderService manages the category headers items are grouped under.
type HeaderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewHeaderService(db *sql.DB, m repomanager.RepositoryManager) *HeaderService {
	return &HeaderService{db: db, repomanager: m}
}

// Create adds a header for the account. Header names are unique per account
// (case-sensitive); a duplicate yields common.ErrConflict.
func (s *HeaderService) Create(ctx context.Context, accountID int64, name string) (*models.Header, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: header name is required", common.ErrValidation)
	}

	repo := s.repomanager.Headers(s.db)
	header, err := repo.Create(ctx, &models.Header{AccountID: accountID, Name: name})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, fmt.Errorf("%w: header %q already exists", common.ErrConflict, name)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return header, nil
}

// List returns all of the account's headers.
func (s *HeaderService) List(ctx context.Context, accountID int64) ([]*models.Header, error) {
	repo := s.repomanager.Headers(s.db)
	headers, err := repo.SelectByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return headers, nil
}
