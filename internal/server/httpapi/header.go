package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/recordkeeper/recordkeeper/internal/common"
	"github.com/recordkeeper/recordkeeper/internal/server/services"
)

// HeaderHandler handles header CRUD.
type HeaderHandler struct {
	svc *services.HeaderService
}

func NewHeaderHandler(svc *services.HeaderService) *HeaderHandler {
	return &HeaderHandler{svc: svc}
}

// Create handles POST /api/v1/headers.
func (h *HeaderHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromContext(r.Context())
	if !ok {
		writeError(w, common.ErrUnauthorized)
		return
	}

	var req createHeaderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	header, err := h.svc.Create(r.Context(), accountID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toHeaderResponse(header))
}

// List handles GET /api/v1/headers.
func (h *HeaderHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromContext(r.Context())
	if !ok {
		writeError(w, common.ErrUnauthorized)
		return
	}

	headers, err := h.svc.List(r.Context(), accountID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]headerResponse, 0, len(headers))
	for _, hd := range headers {
		out = append(out, toHeaderResponse(hd))
	}
	writeJSON(w, http.StatusOK, out)
}
