package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// DiskStore writes photos under a root directory on the local filesystem.
type DiskStore struct {
	Root string
}

func NewDiskStore(root string) *DiskStore {
	if root == "" {
		root = "uploads"
	}
	return &DiskStore{Root: root}
}

func (s *DiskStore) Save(_ context.Context, kind string, ownerID int64, filename, _ string, r io.Reader) (string, error) {
	// filepath.Base strips any path segments smuggled in the uploaded name.
	path := filepath.Join(s.Root, kind, strconv.FormatInt(ownerID, 10), filepath.Base(filename))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

var _ PhotoStore = (*DiskStore)(nil)
