package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// GCSUploader stores blobs in a Google Cloud Storage bucket and hands back
// their public URLs. The bucket is expected to allow public reads; photos
// and logos are public content anyway.
type GCSUploader struct {
	client *storage.Client
	bucket string
}

func NewGCSUploader(ctx context.Context, bucket string) (*GCSUploader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient -> %w", err)
	}

	return &GCSUploader{
		client: client,
		bucket: bucket,
	}, nil
}

func (u *GCSUploader) Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	w := u.client.Bucket(u.bucket).Object(path).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("io.Copy -> %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("w.Close -> %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%v/%v", u.bucket, path), nil
}

func (u *GCSUploader) Close() error {
	return u.client.Close()
}

// Disabled is the uploader used when no bucket is configured. Uploads fail
// with a clear error instead of a nil dereference.
type Disabled struct{}

func (Disabled) Upload(_ context.Context, _, _ string, _ io.Reader) (string, error) {
	return "", errors.New("object storage is not configured")
}
