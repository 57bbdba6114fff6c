package ports

import "go.trai.ch/darkmagic/internal/core/domain"

// MetadataStore defines the interface for storing and retrieving extracted metadata.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type MetadataStore interface {
	// Get retrieves the cache entry for a given file path.
	// Returns nil, nil if not found.
	Get(path string) (*domain.CacheEntry, error)

	// Put stores the cache entry.
	Put(entry domain.CacheEntry) error
}

// StoreOpener opens a MetadataStore at a location chosen by configuration.
type StoreOpener interface {
	// Open returns the store backed by the file at path.
	Open(path string) (MetadataStore, error)
	// Remove deletes the store file at path. A missing file is not an error.
	Remove(path string) error
}
