package ports

import "go.trai.ch/darkmagic/internal/core/domain"

// ConfigLoader defines the interface for loading the tool configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration. An empty path means the default file in cwd,
	// which may be absent; an explicit path must exist.
	Load(cwd, path string) (*domain.Config, error)
}
