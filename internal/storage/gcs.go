package storage

import (
	"context"
	"fmt"
	"io"
	"log"

	gcs "cloud.google.com/go/storage"
)

// gcsUploader implements Uploader against a Cloud Storage bucket (the
// Firebase project's default bucket in production).
type gcsUploader struct {
	bucket *gcs.BucketHandle
}

// NewGCSUploader creates a new Uploader backed by the given bucket handle.
func NewGCSUploader(bucket *gcs.BucketHandle) Uploader {
	if bucket == nil {
		log.Fatal("Storage bucket is not initialized for GCSUploader.")
	}
	return &gcsUploader{bucket: bucket}
}

// UploadRabbitPhoto writes the blob, marks it public-read and returns the
// storage.googleapis.com URL. If a later listing creation fails, the uploaded
// blob is orphaned; nothing cleans it up.
func (u *gcsUploader) UploadRabbitPhoto(ctx context.Context, filename string, contentType string, data io.Reader) (string, error) {
	name := objectName(filename)
	obj := u.bucket.Object(name)

	w := obj.NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, data); err != nil {
		w.Close() // best effort; the write already failed
		return "", fmt.Errorf("failed to write photo '%s': %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize photo '%s': %w", name, err)
	}

	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return "", fmt.Errorf("failed to make photo '%s' public: %w", name, err)
	}

	attrs, err := obj.Attrs(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read attrs for photo '%s': %w", name, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", attrs.Bucket, name), nil
}
