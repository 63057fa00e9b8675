package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrNotFound = errors.New("statement file not found")

// StatementStore fetches an uploaded statement by the path carried on the
// upload event.
type StatementStore interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// DirStore serves statements from a local directory (or a mounted bucket).
// Paths are relative, e.g. "statements/<applicationId>/statement.pdf".
type DirStore struct{ root string }

func NewDirStore(root string) *DirStore { return &DirStore{root: root} }

func (s *DirStore) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := filepath.Clean("/" + path) // no escaping the root
	full := filepath.Join(s.root, clean)
	if !strings.HasPrefix(full, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return nil, fmt.Errorf("invalid statement path %q", path)
	}
	b, err := os.ReadFile(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return b, err
}

// MemStore is a map-backed StatementStore for tests.
type MemStore struct{ Files map[string][]byte }

func NewMemStore() *MemStore { return &MemStore{Files: map[string][]byte{}} }

func (s *MemStore) Fetch(_ context.Context, path string) ([]byte, error) {
	b, ok := s.Files[path]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}
