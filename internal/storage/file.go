package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"cvoptimizer/internal/errors"
)

// FileStore keeps each slot as a UTF-8 text file in one directory.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first save.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig, "storage data directory is empty", nil)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file backing kind.
func (s *FileStore) Path(kind Kind) string {
	return filepath.Join(s.dir, kind.FileName())
}

func (s *FileStore) Save(ctx context.Context, kind Kind, text string) (string, error) {
	if !kind.valid() {
		return "", invalidKind(kind)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return "", saveError(kind, fmt.Errorf("create %s: %w", s.dir, err))
	}

	path := s.Path(kind)
	if err := os.WriteFile(path, []byte(text), 0600); err != nil {
		return "", saveError(kind, err)
	}
	return path, nil
}

func (s *FileStore) Get(ctx context.Context, kind Kind) (string, error) {
	if !kind.valid() {
		return "", invalidKind(kind)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(s.Path(kind))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", readError(kind, err)
	}
	return string(data), nil
}

func (s *FileStore) Close() error { return nil }
