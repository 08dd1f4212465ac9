package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/recordkeeper/recordkeeper/internal/common"
	"github.com/recordkeeper/recordkeeper/internal/dbx"
	"github.com/recordkeeper/recordkeeper/internal/logging"
	"github.com/recordkeeper/recordkeeper/internal/server/models"
	"github.com/recordkeeper/recordkeeper/internal/server/repositories/repomanager"
)

// recentDocumentsLimit caps the recent-documents strip on the overview.
const recentDocumentsLimit = 5

// HeaderNode is a header together with its items, as returned by Overview.
type HeaderNode struct {
	Header *models.Header
	Items  []*models.Item
}

// AccountOverview is the full grouped listing for one account.
type AccountOverview struct {
	Headers         []*HeaderNode
	RecentDocuments []*models.Document
}

// ItemService manages items and the cascade that removes one together with
// its dependents.
type ItemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewItemService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ItemService {
	return &ItemService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "item_service"),
	}
}

// Create adds an item under one of the account's headers. The parent header
// must belong to the account; its name is denormalized onto the item.
func (s *ItemService) Create(ctx context.Context, accountID, headerID int64,
	title, shortDesc, longDesc, highlights string) (*models.Item, error) {

	if title == "" {
		return nil, fmt.Errorf("%w: item title is required", common.ErrValidation)
	}

	header, err := s.repomanager.Headers(s.db).GetByID(ctx, accountID, headerID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}

	item, err := s.repomanager.Items(s.db).Create(ctx, &models.Item{
		AccountID:  accountID,
		HeaderID:   headerID,
		HeaderName: header.Name,
		Title:      title,
		ShortDesc:  shortDesc,
		LongDesc:   longDesc,
		Highlights: highlights,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return item, nil
}

// Get returns one of the account's items.
func (s *ItemService) Get(ctx context.Context, accountID, itemID int64) (*models.Item, error) {
	item, err := s.repomanager.Items(s.db).GetByID(ctx, accountID, itemID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return item, nil
}

// List returns all of the account's items across headers.
func (s *ItemService) List(ctx context.Context, accountID int64) ([]*models.Item, error) {
	items, err := s.repomanager.Items(s.db).SelectByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return items, nil
}

// Delete removes an item together with its reminders and document rows in a
// single transaction. Blobs referenced by the deleted document rows are NOT
// removed here: purging them would need per-blob compensations that cannot
// share the row transaction. Their keys are logged after commit so a sweep
// can reclaim them.
func (s *ItemService) Delete(ctx context.Context, accountID, itemID int64) error {
	var keys []string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		// Collected inside the transaction so the logged set matches
		// exactly the rows this delete removes.
		var err error
		keys, err = s.repomanager.Documents(tx).SelectKeysByItem(ctx, accountID, itemID)
		if err != nil {
			return err
		}
		if err := s.repomanager.Reminders(tx).DeleteByItem(ctx, accountID, itemID); err != nil {
			return err
		}
		if err := s.repomanager.Documents(tx).DeleteByItem(ctx, accountID, itemID); err != nil {
			return err
		}
		return s.repomanager.Items(tx).Delete(ctx, accountID, itemID)
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("%w: cascade delete: %v", common.ErrStore, err)
	}

	if len(keys) > 0 {
		s.logger.Warn(ctx, "orphaned blobs after item delete", "item_id", itemID, "storage_keys", keys)
	}
	return nil
}

// Overview returns every header with its items, plus the five most recently
// added documents. Headers without items appear with an empty item list.
func (s *ItemService) Overview(ctx context.Context, accountID int64) (*AccountOverview, error) {
	headers, err := s.repomanager.Headers(s.db).SelectByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	items, err := s.repomanager.Items(s.db).SelectByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	recent, err := s.repomanager.Documents(s.db).SelectRecent(ctx, accountID, recentDocumentsLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}

	byHeader := make(map[int64]*HeaderNode, len(headers))
	overview := &AccountOverview{
		Headers:         make([]*HeaderNode, 0, len(headers)),
		RecentDocuments: recent,
	}
	for _, h := range headers {
		node := &HeaderNode{Header: h, Items: []*models.Item{}}
		byHeader[h.ID] = node
		overview.Headers = append(overview.Headers, node)
	}
	for _, it := range items {
		if node, ok := byHeader[it.HeaderID]; ok {
			node.Items = append(node.Items, it)
		}
	}
	return overview, nil
}
