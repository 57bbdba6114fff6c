package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/darkmagic/internal/adapters/config"
	"go.trai.ch/darkmagic/internal/core/domain"
	"go.trai.ch/darkmagic/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger), mockLogger
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader, _ := newLoader(t)

	cfg, err := loader.Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoader_Load_File(t *testing.T) {
	loader, _ := newLoader(t)
	dir := t.TempDir()
	createFile(t, dir, domain.DefaultConfigFile, `
version: "1"
output: json
jobs: 4
cache:
  enabled: false
  path: cache/metadata.json
`)

	cfg, err := loader.Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, domain.OutputJSON, cfg.Output)
	assert.Equal(t, 4, cfg.Jobs)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, filepath.Join(dir, "cache", "metadata.json"), cfg.Cache.Path)
}

func TestLoader_Load_PartialFileKeepsDefaults(t *testing.T) {
	loader, _ := newLoader(t)
	dir := t.TempDir()
	createFile(t, dir, domain.DefaultConfigFile, "output: yml\n")

	cfg, err := loader.Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, domain.OutputYAML, cfg.Output)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, domain.DefaultStorePath(), cfg.Cache.Path)
}

func TestLoader_Load_EmptyFile(t *testing.T) {
	loader, _ := newLoader(t)
	dir := t.TempDir()
	createFile(t, dir, domain.DefaultConfigFile, "")

	cfg, err := loader.Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoader_Load_DiscoversParent(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	createFile(t, root, domain.DefaultConfigFile, "jobs: 2\n")

	nested := filepath.Join(root, "shoot", "2024-01-01")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	cfg, err := loader.Load(nested, "")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Jobs)
}

func TestLoader_Load_ExplicitPath(t *testing.T) {
	loader, _ := newLoader(t)
	dir := t.TempDir()
	createFile(t, dir, domain.DefaultConfigFile, "jobs: 2\n")
	createFile(t, dir, "other.yaml", "jobs: 8\n")

	cfg, err := loader.Load(dir, "other.yaml")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Jobs)
}

func TestLoader_Load_UnsupportedVersionWarns(t *testing.T) {
	loader, mockLogger := newLoader(t)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	dir := t.TempDir()
	createFile(t, dir, domain.DefaultConfigFile, "version: \"2\"\n")

	_, err := loader.Load(dir, "")
	require.NoError(t, err)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		path        string
		errContains string
	}{
		{
			name:        "explicit path missing",
			path:        "missing.yaml",
			errContains: domain.ErrConfigNotFound.Error(),
		},
		{
			name:        "unknown output format",
			content:     "output: xml\n",
			errContains: domain.ErrUnknownFormat.Error(),
		},
		{
			name:        "negative jobs",
			content:     "jobs: -1\n",
			errContains: domain.ErrInvalidConfig.Error(),
		},
		{
			name:        "unknown key",
			content:     "outptu: json\n",
			errContains: "failed to parse config file",
		},
		{
			name:        "malformed yaml",
			content:     "cache: [\n",
			errContains: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t)
			dir := t.TempDir()
			if tt.content != "" {
				createFile(t, dir, domain.DefaultConfigFile, tt.content)
			}

			cfg, err := loader.Load(dir, tt.path)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.ErrorContains(t, err, tt.errContains)
		})
	}
}
