package blob

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/recordkeeper/recordkeeper/internal/common"
)

// MaxContentSize is the upload size cap: 10 MiB.
const MaxContentSize = 10 << 20

// allowedTypes maps accepted file extensions to the MIME types accepted
// for them. The extension check runs first: a spoofed Content-Type on a
// disallowed extension never passes.
var allowedTypes = map[string][]string{
	"pdf":  {"application/pdf"},
	"jpg":  {"image/jpeg"},
	"jpeg": {"image/jpeg"},
	"png":  {"image/png"},
	"xls":  {"application/vnd.ms-excel"},
	"xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
}

// ValidateUpload checks filename extension, declared content type, and size
// against the allow-lists, returning the normalized extension on success.
// All failures wrap common.ErrValidation.
func ValidateUpload(filename, contentType string, size int) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return "", fmt.Errorf("%w: file %q has no extension", common.ErrValidation, filename)
	}

	mimes, ok := allowedTypes[ext]
	if !ok {
		return "", fmt.Errorf("%w: extension %q is not allowed", common.ErrValidation, ext)
	}

	mimeOK := false
	base := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	for _, m := range mimes {
		if base == m {
			mimeOK = true
			break
		}
	}
	if !mimeOK {
		return "", fmt.Errorf("%w: content type %q does not match extension %q", common.ErrValidation, contentType, ext)
	}

	if size <= 0 {
		return "", fmt.Errorf("%w: empty content", common.ErrValidation)
	}
	if size > MaxContentSize {
		return "", fmt.Errorf("%w: content exceeds %d bytes", common.ErrValidation, MaxContentSize)
	}

	return ext, nil
}
