// Package config holds the root command line of autoremap.
package config

import (
	"github.com/Alia5/autoremap/internal/cmd"
	"github.com/Alia5/autoremap/internal/log"
)

// CLI is the root kong model. Flags may also come from JSON/YAML/TOML config
// files and AUTOREMAP_* environment variables; flags win.
type CLI struct {
	Config string      `help:"Path to a JSON, YAML or TOML configuration file" type:"path" env:"AUTOREMAP_CONFIG"`
	Log    log.Options `embed:"" prefix:"log."`

	Run       cmd.Run           `cmd:"" default:"withargs" help:"Watch for the keyboard and keep the key mapping in sync (default)"`
	Table     cmd.Table         `cmd:"" help:"Print the key mapping table the daemon installs"`
	Check     cmd.Check         `cmd:"" help:"Probe every transport once and compare the installed key mapping"`
	Settings  cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
	Install   cmd.Install       `cmd:"" help:"Start the daemon at login (launchd agent)"`
	Uninstall cmd.Uninstall     `cmd:"" help:"Remove the launchd agent"`
}
