package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/recordkeeper/recordkeeper/internal/common"
	"github.com/recordkeeper/recordkeeper/internal/server/blob"
	"github.com/recordkeeper/recordkeeper/internal/server/services"
)

// multipartMemLimit is the in-memory buffer for multipart parsing; larger
// parts spill to disk.
const multipartMemLimit = 4 << 20

// DocumentHandler handles document upload, replace, delete, and download
// links. Uploads arrive as multipart forms with a "file" part.
type DocumentHandler struct {
	svc *services.DocumentService
}

func NewDocumentHandler(svc *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// readFilePart extracts the "file" part: its name, bytes and declared
// content type. The read is capped just past the size limit so an
// oversized upload is rejected by validation, not buffered whole.
func readFilePart(r *http.Request) (name string, content []byte, contentType string, err error) {
	if err := r.ParseMultipartForm(multipartMemLimit); err != nil {
		return "", nil, "", fmt.Errorf("%w: invalid multipart form", common.ErrValidation)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, "", fmt.Errorf("%w: file part is required", common.ErrValidation)
	}
	defer file.Close()

	content, err = io.ReadAll(io.LimitReader(file, blob.MaxContentSize+1))
	if err != nil {
		return "", nil, "", fmt.Errorf("%w: reading upload: %v", common.ErrInternal, err)
	}
	return header.Filename, content, header.Header.Get("Content-Type"), nil
}

// Create handles POST /api/v1/documents.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromContext(r.Context())
	if !ok {
		writeError(w, common.ErrUnauthorized)
		return
	}

	fileName, content, contentType, err := readFilePart(r)
	if err != nil {
		writeError(w, err)
		return
	}

	itemID, err := strconv.ParseInt(r.FormValue("item_id"), 10, 64)
	if err != nil || itemID <= 0 {
		writeError(w, fmt.Errorf("%w: item_id is required", common.ErrValidation))
		return
	}
	name := r.FormValue("name")
	if name == "" {
		name = fileName
	}
	renewalRequired, _ := strconv.ParseBool(r.FormValue("renewal_required"))

	doc, err := h.svc.Create(r.Context(), accountID, itemID, name, content, contentType, renewalRequired)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDocumentResponse(doc))
}

// Replace handles PUT /api/v1/documents/{id}. The form may carry a new
// "file" part, a new "name", or both.
func (h *DocumentHandler) Replace(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseMultipartForm(multipartMemLimit); err != nil {
		writeError(w, fmt.Errorf("%w: invalid multipart form", common.ErrValidation))
		return
	}

	var content []byte
	var contentType string
	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		content, err = io.ReadAll(io.LimitReader(file, blob.MaxContentSize+1))
		if err != nil {
			writeError(w, fmt.Errorf("%w: reading upload: %v", common.ErrInternal, err))
			return
		}
		contentType = header.Header.Get("Content-Type")
	}
	name := r.FormValue("name")

	if err := h.svc.Replace(r.Context(), accountID, id, name, content, contentType); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/documents/{id}.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// DownloadLink handles GET /api/v1/documents/{id}/download-link.
func (h *DocumentHandler) DownloadLink(w http.ResponseWriter, r *http.Request) {
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

	url, err := h.svc.GetDownloadLink(r.Context(), accountID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, downloadLinkResponse{URL: url})
}
