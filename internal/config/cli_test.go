package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/autoremap/internal/config"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		configFile   string
		wantErr      bool
		wantCommand  string
		wantInterval int
		wantLevel    string
	}{
		{
			name:         "no arguments runs the daemon",
			args:         nil,
			wantCommand:  "run",
			wantInterval: 10,
			wantLevel:    "info",
		},
		{
			name:         "short interval",
			args:         []string{"-i", "5"},
			wantCommand:  "run",
			wantInterval: 5,
			wantLevel:    "info",
		},
		{
			name:         "explicit run command",
			args:         []string{"run", "--interval", "30", "--log.level", "warn"},
			wantCommand:  "run",
			wantInterval: 30,
			wantLevel:    "warn",
		},
		{
			name:    "non numeric interval",
			args:    []string{"--interval", "abc"},
			wantErr: true,
		},
		{
			name:    "zero interval",
			args:    []string{"-i", "0"},
			wantErr: true,
		},
		{
			name:    "negative interval",
			args:    []string{"--interval=-3"},
			wantErr: true,
		},
		{
			name:         "values from config file",
			configFile:   `{"interval": 7, "log": {"level": "debug"}}`,
			wantCommand:  "run",
			wantInterval: 7,
			wantLevel:    "debug",
		},
		{
			name:         "flags override config file",
			args:         []string{"-i", "3"},
			configFile:   `{"interval": 7, "log": {"level": "debug"}}`,
			wantCommand:  "run",
			wantInterval: 3,
			wantLevel:    "debug",
		},
		{
			name:       "invalid interval in config file",
			configFile: `{"interval": 0}`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv("XDG_CONFIG_HOME", dir)

			var userConfig string
			if tt.configFile != "" {
				userConfig = filepath.Join(dir, "autoremap.json")
				require.NoError(t, os.WriteFile(userConfig, []byte(tt.configFile), 0o644))
			}

			var cli config.CLI
			parser, err := config.NewParser(&cli, userConfig)
			require.NoError(t, err)

			ctx, err := parser.Parse(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCommand, ctx.Command())
			assert.Equal(t, tt.wantInterval, cli.Run.Interval)
			assert.Equal(t, tt.wantLevel, cli.Log.Level)
		})
	}
}

func TestParseSubcommands(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tests := []struct {
		args        []string
		wantCommand string
	}{
		{[]string{"table", "--present"}, "table"},
		{[]string{"check", "--no-usb"}, "check"},
		{[]string{"install", "-i", "20"}, "install"},
		{[]string{"uninstall", "--reset"}, "uninstall"},
	}
	for _, tt := range tests {
		t.Run(tt.wantCommand, func(t *testing.T) {
			var cli config.CLI
			parser, err := config.NewParser(&cli, "")
			require.NoError(t, err)

			ctx, err := parser.Parse(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCommand, ctx.Command())
		})
	}
}

func TestUserConfigPath(t *testing.T) {
	t.Setenv("AUTOREMAP_CONFIG", "/etc/autoremap/env.toml")

	assert.Equal(t, "/tmp/a.yaml", config.UserConfigPath([]string{"run", "--config=/tmp/a.yaml"}))
	assert.Equal(t, "/tmp/b.json", config.UserConfigPath([]string{"--config", "/tmp/b.json", "-i", "5"}))
	assert.Equal(t, "/etc/autoremap/env.toml", config.UserConfigPath([]string{"-i", "5"}))
	assert.Equal(t, "/etc/autoremap/env.toml", config.UserConfigPath([]string{"--config"}))
}
