package fs

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/darkmagic/internal/core/domain"
	"go.trai.ch/darkmagic/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InputResolver = (*Resolver)(nil)

// Resolver implements the InputResolver interface using filepath.Glob.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveInputs turns command line arguments into file paths, keeping their
// order. Paths stay as given: relative arguments and their glob matches are
// relative to root. Arguments naming an existing file are taken literally; any
// other argument containing glob metacharacters is expanded. Missing literal
// files are kept so that the read reports them against the file.
func (r *Resolver) ResolveInputs(inputs []string, root string) ([]string, error) {
	result := make([]string, 0, len(inputs))

	for _, input := range inputs {
		path := input
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}

		if _, err := os.Lstat(path); err == nil || !hasMeta(input) {
			result = append(result, input)
			continue
		}

		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", path)
		}
		if len(matches) == 0 {
			return nil, zerr.With(domain.ErrInputNotFound, "path", path)
		}

		slices.Sort(matches)
		if !filepath.IsAbs(input) {
			for i, m := range matches {
				if rel, err := filepath.Rel(root, m); err == nil {
					matches[i] = rel
				}
			}
		}
		result = append(result, matches...)
	}

	return result, nil
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, `*?[`)
}
