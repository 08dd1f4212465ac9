package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/recordkeeper/recordkeeper/internal/common"
	"github.com/recordkeeper/recordkeeper/internal/server/models"
	"github.com/recordkeeper/recordkeeper/internal/server/services"
)

// ReminderHandler handles reminder CRUD and due evaluation.
type ReminderHandler struct {
	svc    *services.ReminderService
	alerts *services.AlertService
	now    func() time.Time
}

func NewReminderHandler(svc *services.ReminderService, alerts *services.AlertService) *ReminderHandler {
	return &ReminderHandler{svc: svc, alerts: alerts, now: time.Now}
}

func parseTargetDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: target_date is required", common.ErrValidation)
	}
	t, err := time.Parse(targetDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: target_date must be YYYY-MM-DD", common.ErrValidation)
	}
	return t, nil
}

// Create handles POST /api/v1/reminders.
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromContext(r.Context())
	if !ok {
		writeError(w, common.ErrUnauthorized)
		return
	}

	var req upsertReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}
	target, err := parseTargetDate(req.TargetDate)
	if err != nil {
		writeError(w, err)
		return
	}

	reminder, err := h.svc.Create(r.Context(), accountID, req.ItemID,
		req.Name, target, models.Lead(req.Before))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReminderResponse(reminder))
}

// Update handles PUT /api/v1/reminders/{id}.
func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromContext(r.Context())
	if !ok {
		writeError(w, common.ErrUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req upsertReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}
	target, err := parseTargetDate(req.TargetDate)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.Update(r.Context(), accountID, id, req.Name, target, models.Lead(req.Before)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/reminders/{id}.
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromContext(r.Context())
	if !ok {
		writeError(w, common.ErrUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), accountID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Due handles GET /api/v1/reminders/due.
func (h *ReminderHandler) Due(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromContext(r.Context())
	if !ok {
		writeError(w, common.ErrUnauthorized)
		return
	}

	due, err := h.alerts.EvaluateDue(r.Context(), accountID, h.now())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]reminderResponse, 0, len(due))
	for _, rem := range due {
		out = append(out, toReminderResponse(rem))
	}
	writeJSON(w, http.StatusOK, out)
}
