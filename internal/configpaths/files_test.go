package configpaths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/autoremap/internal/configpaths"
)

func TestDefaultConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := configpaths.DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "autoremap"), dir)

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/Users/me")
	dir, err = configpaths.DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/Users/me", ".config", "autoremap"), dir)

	t.Setenv("HOME", "")
	_, err = configpaths.DefaultConfigDir()
	assert.Error(t, err)
}

func TestDefaultNamedConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	tests := map[string]string{
		"json": "config.json",
		"yaml": "config.yaml",
		"yml":  "config.yaml",
		"toml": "config.toml",
		"":     "config.json",
	}
	for format, file := range tests {
		p, err := configpaths.DefaultConfigPath(format)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/tmp/xdg", "autoremap", file), p, format)
	}
}

func TestConfigCandidatePathsUserPathFirst(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths("/opt/custom.yml")
	require.NotEmpty(t, yamlPaths)
	assert.Equal(t, "/opt/custom.yml", yamlPaths[0])
	assert.NotContains(t, jsonPaths, "/opt/custom.yml")
	assert.Contains(t, tomlPaths, filepath.Join("/tmp/xdg", "autoremap", "config.toml"))

	jsonPaths, _, _ = configpaths.ConfigCandidatePaths("/opt/custom")
	assert.Equal(t, "/opt/custom", jsonPaths[0])
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "config.json")
	require.NoError(t, configpaths.EnsureDir(target))
	info, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
