// Package config provides the configuration loader for darkmagic.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/darkmagic/internal/core/domain"
	"go.trai.ch/darkmagic/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const supportedVersion = "1"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the configuration. An explicit path must exist. Without one,
// darkmagic.yaml is searched from cwd upwards and defaults apply when none is found.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	if path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		if _, err := os.Stat(path); err != nil {
			return nil, zerr.With(domain.ErrConfigNotFound, "path", path)
		}
		return l.loadFile(path)
	}

	found, ok := findConfiguration(cwd)
	if !ok {
		l.Logger.Debug(fmt.Sprintf("no %s found from %s, using defaults", domain.DefaultConfigFile, cwd))
		return domain.DefaultConfig(), nil
	}
	return l.loadFile(found)
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.DefaultConfigFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) loadFile(path string) (*domain.Config, error) {
	var file Configfile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, err
	}
	l.Logger.Debug("loaded configuration from " + path)

	if file.Version != "" && file.Version != supportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", path, file.Version, supportedVersion))
	}

	cfg := domain.DefaultConfig()

	output, ok := domain.ParseOutputFormat(file.Output)
	if !ok {
		return nil, zerr.With(zerr.With(domain.ErrUnknownFormat, "output", file.Output), "config", path)
	}
	cfg.Output = output

	if file.Jobs < 0 {
		return nil, zerr.With(zerr.With(domain.ErrInvalidConfig, "jobs", file.Jobs), "config", path)
	}
	cfg.Jobs = file.Jobs

	if file.Cache.Enabled != nil {
		cfg.Cache.Enabled = *file.Cache.Enabled
	}
	if file.Cache.Path != "" {
		cfg.Cache.Path = resolvePath(path, file.Cache.Path)
	}

	return cfg, nil
}

// resolvePath makes p relative to the directory of the config file.
func resolvePath(configPath, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(filepath.Dir(configPath), p)
}

func readAndUnmarshalYAML(path string, v any) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}
	return nil
}
