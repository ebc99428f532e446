package config

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/Alia5/autoremap/internal/configpaths"
)

// NewParser builds the kong parser for cli. Configuration files are read in
// priority order: userConfig first, then the working directory, the user
// config directory and /etc. Flags and environment win over all of them.
func NewParser(cli *CLI, userConfig string, opts ...kong.Option) (*kong.Kong, error) {
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userConfig)
	base := []kong.Option{
		kong.Name("autoremap"),
		kong.Description("Swap keys while a specific external keyboard is connected"),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	}
	return kong.New(cli, append(base, opts...)...)
}

// UserConfigPath finds --config in args before kong runs, falling back to
// AUTOREMAP_CONFIG. The config resolvers have to exist before parsing.
func UserConfigPath(args []string) string {
	for i, a := range args {
		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("AUTOREMAP_CONFIG")
}
