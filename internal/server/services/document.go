// Package services contains server-side business logic. This file implements
// DocumentService, which keeps document rows and their blobs consistent
// under create, replace, and delete.
//
// The consistency rule is asymmetric on purpose: a row must never reference
// a blob that was not uploaded, while a blob without a row is a tolerated,
// reclaimable leak. Uploads therefore always happen before row writes, and
// blob deletions always happen after the row state is durably committed.
// Every leaked key is logged so an external reconciliation sweep can remove
// it; the sweep itself is out of scope here.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/recordkeeper/recordkeeper/internal/common"
	"github.com/recordkeeper/recordkeeper/internal/dbx"
	"github.com/recordkeeper/recordkeeper/internal/logging"
	"github.com/recordkeeper/recordkeeper/internal/server/blob"
	"github.com/recordkeeper/recordkeeper/internal/server/config"
	"github.com/recordkeeper/recordkeeper/internal/server/guard"
	"github.com/recordkeeper/recordkeeper/internal/server/models"
	"github.com/recordkeeper/recordkeeper/internal/server/repositories/repomanager"
)

// DocumentService orchestrates the document lifecycle across the relational
// store and the blob store.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blob.Store
	guard       *guard.Guard
	logger      logging.Logger
	linkTTL     time.Duration
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(db *sql.DB, m repomanager.RepositoryManager, blobs blob.Store,
	g *guard.Guard, logger logging.Logger, cfg *config.Config) *DocumentService {
	return &DocumentService{
		db:          db,
		repomanager: m,
		blobs:       blobs,
		guard:       g,
		logger:      logger.With("module", "document_service"),
		linkTTL:     cfg.DownloadLinkTTL,
	}
}

// Create validates and uploads the content, then inserts the document row
// referencing the new blob. The upload happens first: if the row insert
// fails, the just-uploaded blob is deleted best-effort and the failure is
// surfaced. The reverse order would risk a row pointing at nothing, which
// is the one state this service must never produce.
func (s *DocumentService) Create(ctx context.Context, accountID, itemID int64,
	name string, content []byte, contentType string, renewalRequired bool) (*models.Document, error) {

	if name == "" {
		return nil, fmt.Errorf("%w: document name is required", common.ErrValidation)
	}
	ext, err := blob.ValidateUpload(name, contentType, len(content))
	if err != nil {
		return nil, err
	}

	if err := s.guard.Verify(ctx, accountID, guard.TableItems, itemID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}

	key := blob.NewStorageKey(ext)
	if err := s.blobs.Put(ctx, key, content, contentType); err != nil {
		return nil, fmt.Errorf("%w: blob upload: %v", common.ErrStore, err)
	}

	doc := &models.Document{
		AccountID:       accountID,
		ItemID:          itemID,
		Name:            name,
		RenewalRequired: renewalRequired,
		StorageKey:      key,
	}

	repo := s.repomanager.Documents(s.db)
	created, err := repo.Create(ctx, doc)
	if err != nil {
		// Compensating action: the row never existed, so the blob must go.
		// If this delete fails too, the blob is an observable leak.
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.logger.Warn(ctx, "orphaned blob after failed insert", "storage_key", key, "error", delErr)
		}
		return nil, fmt.Errorf("%w: document insert: %v", common.ErrStore, err)
	}

	return created, nil
}

// Replace updates a document's name and/or content. New content is uploaded
// under a fresh key before the row transaction; the old blob is deleted only
// after commit. A failed transaction abandons the new blob (logged leak) and
// leaves the old blob intact and referenced. A failed old-blob delete after
// commit is logged and the operation still succeeds.
func (s *DocumentService) Replace(ctx context.Context, accountID, documentID int64,
	newName string, newContent []byte, newContentType string) error {

	if newName == "" && newContent == nil {
		return fmt.Errorf("%w: nothing to replace", common.ErrValidation)
	}

	repo := s.repomanager.Documents(s.db)
	doc, err := repo.GetByID(ctx, accountID, documentID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("%w: %v", common.ErrStore, err)
	}

	name := doc.Name
	if newName != "" {
		name = newName
	}

	oldKey := doc.StorageKey
	key := oldKey
	if newContent != nil {
		ext, err := blob.ValidateUpload(name, newContentType, len(newContent))
		if err != nil {
			return err
		}
		key = blob.NewStorageKey(ext)
		if err := s.blobs.Put(ctx, key, newContent, newContentType); err != nil {
			return fmt.Errorf("%w: blob upload: %v", common.ErrStore, err)
		}
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		txRepo := s.repomanager.Documents(tx)
		return txRepo.Update(ctx, &models.Document{
			ID:         documentID,
			AccountID:  accountID,
			Name:       name,
			StorageKey: key,
		})
	})
	if err != nil {
		if key != oldKey {
			// The new blob is unreferenced; abandon it as an observable leak
			// rather than risk deleting anything the committed state needs.
			s.logger.Warn(ctx, "orphaned blob after failed replace", "storage_key", key, "error", err)
		}
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("%w: document update: %v", common.ErrStore, err)
	}

	if key != oldKey {
		if delErr := s.blobs.Delete(ctx, oldKey); delErr != nil {
			s.logger.Warn(ctx, "orphaned blob after replace", "storage_key", oldKey, "error", delErr)
		}
	}

	return nil
}

// Delete removes the document row inside a transaction, then deletes the
// blob. The row is the source of truth for existence: a failed blob delete
// after commit is logged as a leak and the operation still reports success.
func (s *DocumentService) Delete(ctx context.Context, accountID, documentID int64) error {
	repo := s.repomanager.Documents(s.db)
	doc, err := repo.GetByID(ctx, accountID, documentID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("%w: %v", common.ErrStore, err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Documents(tx).Delete(ctx, accountID, documentID)
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("%w: document delete: %v", common.ErrStore, err)
	}

	if delErr := s.blobs.Delete(ctx, doc.StorageKey); delErr != nil {
		s.logger.Warn(ctx, "orphaned blob after delete", "storage_key", doc.StorageKey, "error", delErr)
	}

	return nil
}

// GetDownloadLink returns a presigned retrieval URL for the document's blob,
// expiring after the configured TTL. Read-only; never mutates state.
func (s *DocumentService) GetDownloadLink(ctx context.Context, accountID, documentID int64) (string, error) {
	repo := s.repomanager.Documents(s.db)
	doc, err := repo.GetByID(ctx, accountID, documentID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", common.ErrStore, err)
	}

	url, err := s.blobs.SignedGetURL(ctx, doc.StorageKey, s.linkTTL)
	if err != nil {
		return "", fmt.Errorf("%w: signing url: %v", common.ErrStore, err)
	}
	return url, nil
}
