package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStore uploads photos to a Google Cloud Storage bucket and returns the
// object's public URL.
type GCSStore struct {
	Client *storage.Client
	Bucket string
}

// NewGCSClient creates a GCS client. If credsPath is empty, Application
// Default Credentials are used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{Client: client, Bucket: bucket}
}

func (s *GCSStore) Save(ctx context.Context, kind string, ownerID int64, filename, contentType string, r io.Reader) (string, error) {
	objectPath := filepath.ToSlash(filepath.Join(kind, strconv.FormatInt(ownerID, 10), filepath.Base(filename)))
	wc := s.Client.Bucket(s.Bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.Bucket, objectPath), nil
}

var _ PhotoStore = (*GCSStore)(nil)
