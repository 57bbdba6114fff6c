package domain

import (
	"os"
	"path/filepath"
	"strings"
)

// OutputFormat selects how extracted metadata is printed.
type OutputFormat string

const (
	// OutputText prints an indented block per file.
	OutputText OutputFormat = "text"
	// OutputJSON prints a JSON array.
	OutputJSON OutputFormat = "json"
	// OutputYAML prints a YAML sequence.
	OutputYAML OutputFormat = "yaml"
)

// ParseOutputFormat converts a user supplied string to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case OutputText, "":
		return OutputText, true
	case OutputJSON:
		return OutputJSON, true
	case OutputYAML, "yml":
		return OutputYAML, true
	default:
		return "", false
	}
}

// DefaultConfigFile is the config file name looked up in the working directory.
const DefaultConfigFile = "darkmagic.yaml"

// CacheConfig controls the on-disk metadata cache.
type CacheConfig struct {
	Enabled bool
	Path    string
}

// Config is the resolved tool configuration.
type Config struct {
	Output OutputFormat
	// Jobs is the number of files read in parallel. Zero means one per CPU.
	Jobs  int
	Cache CacheConfig
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputText,
		Cache: CacheConfig{
			Enabled: true,
			Path:    DefaultStorePath(),
		},
	}
}

// DefaultStorePath returns the default location of the metadata cache.
func DefaultStorePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "darkmagic", "metadata.json")
}
