package store

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// FileStore is a file-based route store for CLI usage.
// Routes are stored as JSON files named by route ID.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store in baseDir, creating it if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) routePath(id string) string {
	return filepath.Join(s.baseDir, filepath.Base(id)+".json")
}

func (s *FileStore) Save(ctx context.Context, r *Route) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal route: %w", err)
	}
	if err := os.WriteFile(s.routePath(r.ID), data, 0o600); err != nil {
		return fmt.Errorf("write route file: %w", err)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, err := readRoute(s.routePath(id))
	if os.IsNotExist(err) {
		return nil, nil
	}
	return r, err
}

func (s *FileStore) Recent(ctx context.Context, limit int) ([]Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read history dir: %w", err)
	}

	var routes []Route
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		r, err := readRoute(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue // skip unreadable entries
		}
		routes = append(routes, *r)
	}

	slices.SortFunc(routes, func(a, b Route) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if n := normalizeLimit(limit); len(routes) > n {
		routes = routes[:n]
	}
	return routes, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the directory holding the route files.
func (s *FileStore) Path() string {
	return s.baseDir
}

func readRoute(path string) (*Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Route
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse route %s: %w", filepath.Base(path), err)
	}
	return &r, nil
}

var _ Store = (*FileStore)(nil)
