// Package fileutil wraps the whole-file read/write operations used by the
// pipeline, scaffold, and watcher. Writes create parent directories.
package fileutil

import (
	"os"
	"path/filepath"

	"github.com/stencilworks/stencil/internal/errors"
)

// ReadText reads a whole file as UTF-8 text.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeReadFailed, "reading file", err).WithPath(path)
	}
	return string(data), nil
}

// WriteText writes content to path, creating parent directories as needed.
// An existing file is overwritten.
func WriteText(path, content string) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.NewIOError(errors.ErrCodeWriteFailed, "writing file", err).WithPath(path)
	}
	return nil
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewIOError(errors.ErrCodeWriteFailed, "creating directory", err).WithPath(dir)
	}
	return nil
}

// Exists reports whether path exists on disk.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
