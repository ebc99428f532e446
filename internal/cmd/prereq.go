package cmd

import (
	"log/slog"
	"os/exec"
	"runtime"
)

// CheckPrerequisites checks that the OS tools the daemon shells out to are
// available. Returns true if all requirements are satisfied, false otherwise
// with helpful log messages.
func CheckPrerequisites(logger *slog.Logger) bool {
	allOk := true

	if runtime.GOOS != "darwin" {
		logger.Warn("autoremap drives macOS hidutil; key mappings will not be applied on " + runtime.GOOS)
		allOk = false
	}

	if _, err := exec.LookPath("hidutil"); err != nil {
		logger.Warn("Tool 'hidutil' not found in PATH")
		logger.Warn("Key mappings cannot be installed without it")
		logger.Info("hidutil ships with macOS 10.12 and later in /usr/bin")
		allOk = false
	} else {
		logger.Debug("hidutil found in PATH")
	}

	if _, err := exec.LookPath("system_profiler"); err != nil {
		logger.Warn("Tool 'system_profiler' not found in PATH")
		logger.Warn("Bluetooth presence detection will report the keyboard as absent")
		logger.Info("You can disable Bluetooth detection with --no-bluetooth")
		allOk = false
	} else {
		logger.Debug("system_profiler found in PATH")
	}

	return allOk
}
