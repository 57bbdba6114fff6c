package cas

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/darkmagic/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StoreOpener = (*Opener)(nil)

// Opener creates JSON file stores on demand, once the configured path is known.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open returns the store backed by the file at path.
func (o *Opener) Open(path string) (ports.MetadataStore, error) {
	return NewStore(path)
}

// Remove deletes the store file at path.
func (o *Opener) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to remove metadata store"), "path", path)
	}
	return nil
}
