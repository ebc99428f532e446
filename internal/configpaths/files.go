package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "autoremap"

// DefaultConfigDir returns the per-user configuration directory.
func DefaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", appName), nil
	}
	return "", errors.New("HOME not set")
}

// DefaultConfigPath returns the default config file path for the given format using base name "config".
func DefaultConfigPath(format string) (string, error) {
	return DefaultNamedConfigPath("config", format)
}

// DefaultNamedConfigPath returns the default config file path for the given format and base name.
func DefaultNamedConfigPath(baseName, format string) (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, baseName+"."+Extension(format)), nil
}

// Extension maps a format name to its file extension, defaulting to json.
func Extension(format string) string {
	switch format {
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return "json"
	}
}

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	dir := filepath.Dir(filePath)
	return os.MkdirAll(dir, 0o755)
}

// ConfigCandidatePaths builds candidate paths for config files per format.
// If userPath is provided, it is prioritized and routed to the matching loader by extension.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	add := func(slice *[]string, p string) { *slice = append(*slice, p) }
	addBase := func(dir, base string) {
		add(&jsonPaths, filepath.Join(dir, base+".json"))
		add(&yamlPaths, filepath.Join(dir, base+".yaml"))
		add(&yamlPaths, filepath.Join(dir, base+".yml"))
		add(&tomlPaths, filepath.Join(dir, base+".toml"))
	}

	if userPath != "" {
		switch ext := filepath.Ext(userPath); ext {
		case ".json":
			add(&jsonPaths, userPath)
		case ".yaml", ".yml":
			add(&yamlPaths, userPath)
		case ".toml":
			add(&tomlPaths, userPath)
		default:
			add(&jsonPaths, userPath)
		}
	}

	// Working directory candidates
	if wd, err := os.Getwd(); err == nil {
		addBase(wd, appName)
	}

	// Config home
	if dir, err := DefaultConfigDir(); err == nil {
		addBase(dir, "config")
		addBase(dir, appName)
	}

	// System-wide
	if runtime.GOOS != "windows" {
		addBase(filepath.Join("/etc", appName), "config")
	}

	return
}
