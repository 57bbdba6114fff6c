// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/darkmagic/internal/core/domain"
)

// MetadataReader defines the interface for extracting capture metadata from an image.
//
//go:generate go run go.uber.org/mock/mockgen -source=metadata_reader.go -destination=mocks/mock_metadata_reader.go -package=mocks
type MetadataReader interface {
	// Read decodes the EXIF block of the image at path.
	Read(ctx context.Context, path string) (*domain.ImageMetadata, error)
}
