package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreSave(t *testing.T) {
	root := t.TempDir()
	s := NewDiskStore(root)

	path, err := s.Save(context.Background(), "users", 7, "me.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "users", "7", "me.png"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))
}

func TestDiskStoreStripsPathSegments(t *testing.T) {
	root := t.TempDir()
	s := NewDiskStore(root)

	path, err := s.Save(context.Background(), "cars", 3, "../../evil.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "cars", "3", "evil.png"), path)
}

func TestDiskStoreDefaultRoot(t *testing.T) {
	s := NewDiskStore("")
	assert.Equal(t, "uploads", s.Root)
}
