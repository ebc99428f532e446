//go:build darwin

package cmd

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/Alia5/autoremap/internal/execx"
)

func newLaunchAgent(runner execx.Runner) (launchAgent, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return launchAgent{}, err
	}
	exe, err := os.Executable()
	if err != nil {
		return launchAgent{}, err
	}
	if exe, err = filepath.EvalSymlinks(exe); err != nil {
		return launchAgent{}, err
	}
	return launchAgent{
		runner:    runner,
		domain:    "gui/" + strconv.Itoa(os.Getuid()),
		plistPath: filepath.Join(home, "Library", "LaunchAgents", agentLabel+".plist"),
		logFile:   filepath.Join(home, "Library", "Logs", "autoremap.log"),
		exe:       exe,
	}, nil
}
