package domain

import "time"

// CacheEntry is a previously extracted metadata record for a file.
type CacheEntry struct {
	Path        string        `json:"path,omitzero"`
	ContentHash string        `json:"content_hash,omitzero"`
	Metadata    ImageMetadata `json:"metadata"`
	Timestamp   time.Time     `json:"timestamp,omitzero"`
}
