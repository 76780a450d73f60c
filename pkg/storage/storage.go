// Package storage persists uploaded photos. The default backend writes to
// local disk under uploads/; a GCS backend is used when a bucket is
// configured.
package storage

import (
	"context"
	"io"
)

// PhotoStore saves an uploaded photo and returns a reference (a local path
// or a public URL) to record on the owning entity.
type PhotoStore interface {
	// Save writes r under <kind>/<ownerID>/<filename>. kind is "users" or
	// "cars".
	Save(ctx context.Context, kind string, ownerID int64, filename, contentType string, r io.Reader) (string, error)
}
