package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/recordkeeper/recordkeeper/internal/common"
	"github.com/recordkeeper/recordkeeper/internal/logging"
	"github.com/recordkeeper/recordkeeper/internal/server/services"
)

// AccountHandler handles registration, login, and account disablement.
type AccountHandler struct {
	svc    *services.AccountService
	logger logging.Logger
}

func NewAccountHandler(svc *services.AccountService, logger logging.Logger) *AccountHandler {
	return &AccountHandler{svc: svc, logger: logger}
}

// Register handles POST /api/v1/accounts.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	account, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password, req.Mobile)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info(r.Context(), "account registered", "account_id", account.ID)
	writeJSON(w, http.StatusCreated, toAccountResponse(account))
}

// Login handles POST /api/v1/sessions.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	token, account, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, Account: toAccountResponse(account)})
}

// Disable handles DELETE /api/v1/accounts/me.
func (h *AccountHandler) Disable(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromContext(r.Context())
	if !ok {
		writeError(w, common.ErrUnauthorized)
		return
	}

	if err := h.svc.Disable(r.Context(), accountID); err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info(r.Context(), "account disabled", "account_id", accountID)
	w.WriteHeader(http.StatusNoContent)
}
