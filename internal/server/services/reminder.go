package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/recordkeeper/recordkeeper/internal/common"
	"github.com/recordkeeper/recordkeeper/internal/server/guard"
	"github.com/recordkeeper/recordkeeper/internal/server/models"
	"github.com/recordkeeper/recordkeeper/internal/server/repositories/repomanager"
)

// ReminderService manages reminders attached to items.
type ReminderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	guard       *guard.Guard
}

func NewReminderService(db *sql.DB, m repomanager.RepositoryManager, g *guard.Guard) *ReminderService {
	return &ReminderService{db: db, repomanager: m, guard: g}
}

// Create attaches a reminder to one of the account's items. A zero lead
// defaults to the one-day window; any other out-of-range value is rejected.
func (s *ReminderService) Create(ctx context.Context, accountID, itemID int64,
	name string, targetDate time.Time, before models.Lead) (*models.Reminder, error) {

	if name == "" {
		return nil, fmt.Errorf("%w: reminder name is required", common.ErrValidation)
	}
	if targetDate.IsZero() {
		return nil, fmt.Errorf("%w: target date is required", common.ErrValidation)
	}
	if before == 0 {
		before = models.LeadOneDay
	}
	if !before.Valid() {
		return nil, fmt.Errorf("%w: invalid alert lead %d", common.ErrValidation, before)
	}

	if err := s.guard.Verify(ctx, accountID, guard.TableItems, itemID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}

	reminder, err := s.repomanager.Reminders(s.db).Create(ctx, &models.Reminder{
		AccountID:  accountID,
		ItemID:     itemID,
		Name:       name,
		TargetDate: targetDate,
		Before:     before,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return reminder, nil
}

// Update rewrites a reminder's name, target date and lead. Name and date
// are required; a zero lead defaults to the one-day window.
func (s *ReminderService) Update(ctx context.Context, accountID, reminderID int64,
	name string, targetDate time.Time, before models.Lead) error {

	if name == "" {
		return fmt.Errorf("%w: reminder name is required", common.ErrValidation)
	}
	if targetDate.IsZero() {
		return fmt.Errorf("%w: target date is required", common.ErrValidation)
	}
	if before == 0 {
		before = models.LeadOneDay
	}
	if !before.Valid() {
		return fmt.Errorf("%w: invalid alert lead %d", common.ErrValidation, before)
	}

	err := s.repomanager.Reminders(s.db).Update(ctx, &models.Reminder{
		ID:         reminderID,
		AccountID:  accountID,
		Name:       name,
		TargetDate: targetDate,
		Before:     before,
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return nil
}

// Delete removes a reminder. There is no due/not-due precondition: a
// reminder can be deleted at any point of its lifecycle.
func (s *ReminderService) Delete(ctx context.Context, accountID, reminderID int64) error {
	if err := s.repomanager.Reminders(s.db).Delete(ctx, accountID, reminderID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("%w: %v", common.ErrStore, err)
	}
	return nil
}
