package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/driftdb/preflight/checker"
	"github.com/driftdb/preflight/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileVerifier(root string) *Verifier {
	return NewVerifier(config.StorageConfig{Provider: "file", Root: root}, false)
}

func TestFileStorageHappyPath(t *testing.T) {
	root := t.TempDir()
	details := fileVerifier(root).Verify(context.Background())

	dir, ok := findDetail(details, "File Storage Directory")
	require.True(t, ok)
	assert.Equal(t, checker.StatusPass, dir.Status)
	assert.Contains(t, dir.Message, root)

	write, ok := findDetail(details, "File Storage Write Permission")
	require.True(t, ok)
	assert.Equal(t, checker.StatusPass, write.Status)

	_, ok = findDetail(details, "File Storage Cleanup")
	assert.False(t, ok, "cleanup detail only appears on failure")

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe file should be removed")
}

func TestFileStorageMissingDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does-not-exist")
	details := fileVerifier(root).Verify(context.Background())

	require.Len(t, details, 1)
	assert.Equal(t, checker.StatusFail, details[0].Status)
	assert.Contains(t, details[0].Message, root)
	assert.Contains(t, details[0].Message, "does not exist")
}

func TestFileStorageRootIsNotADirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "plainfile")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0644))

	details := fileVerifier(root).Verify(context.Background())

	require.Len(t, details, 1)
	assert.Equal(t, checker.StatusFail, details[0].Status)
	assert.Contains(t, details[0].Message, "not a directory")
}

func TestFileStorageWritePermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := t.TempDir()
	require.NoError(t, os.Chmod(root, 0555))
	t.Cleanup(func() { os.Chmod(root, 0755) })

	details := fileVerifier(root).Verify(context.Background())

	write, ok := findDetail(details, "File Storage Write Permission")
	require.True(t, ok)
	assert.Equal(t, checker.StatusFail, write.Status)
}
