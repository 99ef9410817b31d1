package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps payloads as plain files under one root folder.
type LocalStorage struct {
	root string
}

// NewLocalStorage creates root if needed and returns a store rooted there.
func NewLocalStorage(root string) (*LocalStorage, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty root folder", ErrInvalidLocation)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root folder: %w", err)
	}

	if err = os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create root folder: %w", err)
	}

	return &LocalStorage{root: abs}, nil
}

// Location returns "<root>/<key>".
func (s *LocalStorage) Location(key string) string {
	return filepath.Join(s.root, key)
}

// Put writes data to a temporary file in the target folder and renames it
// into place, so readers never see a partially written payload.
func (s *LocalStorage) Put(ctx context.Context, location string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.resolve(location)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create folder %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("move payload into %s: %w", path, err)
	}

	return nil
}

// Get reads the file at location.
func (s *LocalStorage) Get(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.resolve(location)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return data, nil
}

// Delete removes the file at location.
func (s *LocalStorage) Delete(ctx context.Context, location string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.resolve(location)
	if err != nil {
		return err
	}

	if err = os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}

	return nil
}

// resolve rejects locations that escape the root folder.
func (s *LocalStorage) resolve(location string) (string, error) {
	path := filepath.Clean(location)
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}

	rel, err := filepath.Rel(s.root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidLocation, location)
	}

	return path, nil
}
