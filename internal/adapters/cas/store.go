// Package cas implements the on-disk metadata cache.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/darkmagic/internal/core/domain"
	"go.trai.ch/darkmagic/internal/core/ports"
	"go.trai.ch/zerr"
)

// storeVersion changes whenever the layout of domain.CacheEntry does.
// Files written with another version are ignored and overwritten.
const storeVersion = 1

var _ ports.MetadataStore = (*Store)(nil)

type storeFile struct {
	Version int                          `json:"version"`
	Entries map[string]domain.CacheEntry `json:"entries"`
}

// Store implements ports.MetadataStore using a JSON file keyed by image path.
type Store struct {
	path    string
	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
}

// NewStore loads the store at path. A missing or empty file is an empty store.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:    filepath.Clean(path),
		entries: make(map[string]domain.CacheEntry),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read metadata store"), "path", s.path)
	}
	if len(data) == 0 {
		return nil
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal metadata store"), "path", s.path)
	}
	if file.Version != storeVersion || file.Entries == nil {
		return nil
	}
	s.entries = file.Entries
	return nil
}

// saveLocked replaces the store file through a rename so that readers never
// see a partial write. The caller holds s.mu.
func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(storeFile{Version: storeVersion, Entries: s.entries}, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal metadata store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory for metadata store"), "dir", dir)
	}

	tmp, err := os.CreateTemp(dir, ".metadata-*.json")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write metadata store"), "path", s.path)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, "failed to write metadata store"), "path", s.path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write metadata store"), "path", s.path)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace metadata store"), "path", s.path)
	}
	return nil
}

// Get returns the entry stored for an image path, or nil when there is none.
func (s *Store) Get(path string) (*domain.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[path]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Put records entry and writes the store to disk.
func (s *Store) Put(entry domain.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.Path] = entry
	return s.saveLocked()
}
