package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/recordkeeper/recordkeeper/internal/common"
	"github.com/recordkeeper/recordkeeper/internal/server/models"
	"github.com/recordkeeper/recordkeeper/internal/server/repositories/repomanager"
)

// AlertService evaluates which reminders are inside their alert window.
// Evaluation is stateless and idempotent: nothing is marked delivered, so
// asking twice with the same clock gives the same answer.
type AlertService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAlertService(db *sql.DB, m repomanager.RepositoryManager) *AlertService {
	return &AlertService{db: db, repomanager: m}
}

// EvaluateDue returns the account's reminders whose alert window contains
// now, preserving insertion (id) order. The window never closes: a reminder
// past its target date stays due until it is deleted.
func (s *AlertService) EvaluateDue(ctx context.Context, accountID int64, now time.Time) ([]*models.Reminder, error) {
	all, err := s.repomanager.Reminders(s.db).SelectByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStore, err)
	}

	due := make([]*models.Reminder, 0, len(all))
	for _, r := range all {
		if r.Due(now) {
			due = append(due, r)
		}
	}
	return due, nil
}
