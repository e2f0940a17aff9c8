package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Uploader stores photo blobs and resolves them to publicly fetchable URLs.
type Uploader interface {
	// UploadRabbitPhoto stores the photo under a fresh random object name and
	// returns its public URL. The upload is a pass-through: no content-type
	// validation, no size limit.
	UploadRabbitPhoto(ctx context.Context, filename string, contentType string, data io.Reader) (string, error)
}

const photoPrefix = "rabbit-photos"

// objectName builds the blob path for an uploaded photo: a fresh UUID with
// the original file's extension, defaulting to jpg when absent.
func objectName(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("%s/%s.%s", photoPrefix, uuid.NewString(), ext)
}
