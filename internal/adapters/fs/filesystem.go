// Package fs provides the file system adapter.
package fs

import (
	"os"
	"unicode/utf8"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileSystem = (*FileSystem)(nil)

// FileSystem implements ports.FileSystem on the local disk.
type FileSystem struct{}

// NewFileSystem creates a new FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// ReadFile reads the whole file at path as UTF-8 text.
func (f *FileSystem) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFileRead.Error()), "path", path)
	}
	if !utf8.Valid(data) {
		return "", zerr.With(zerr.Wrap(domain.ErrFileNotText, "invalid UTF-8"), "path", path)
	}
	return string(data), nil
}

// Exists reports whether path can be stat'ed.
func (f *FileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
