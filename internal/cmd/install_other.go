//go:build !darwin

package cmd

import (
	"errors"

	"github.com/Alia5/autoremap/internal/execx"
)

var errInstallUnsupported = errors.New("install is only supported on macOS")

func newLaunchAgent(execx.Runner) (launchAgent, error) {
	return launchAgent{}, errInstallUnsupported
}
