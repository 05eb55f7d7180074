package fs_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	kilnfs "go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestFileSystem_ReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "VERSION")
	require.NoError(t, os.WriteFile(path, []byte("1.0.0\n"), 0o600))

	content, err := kilnfs.NewFileSystem().ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0\n", content)
}

func TestFileSystem_ReadFile_Missing(t *testing.T) {
	_, err := kilnfs.NewFileSystem().ReadFile(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestFileSystem_ReadFile_Binary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0x00, 0xfe}, 0o600))

	_, err := kilnfs.NewFileSystem().ReadFile(path)
	require.ErrorIs(t, err, domain.ErrFileNotText)
}

func TestFileSystem_Exists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "present")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	fsys := kilnfs.NewFileSystem()
	assert.True(t, fsys.Exists(file))
	assert.True(t, fsys.Exists(dir))
	assert.False(t, fsys.Exists(filepath.Join(dir, "absent")))
}
