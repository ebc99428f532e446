package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/Alia5/autoremap/internal/execx"
	"github.com/Alia5/autoremap/internal/hidutil"
	"github.com/Alia5/autoremap/internal/keymap"
	"github.com/Alia5/autoremap/internal/log"
	"github.com/Alia5/autoremap/internal/presence"
)

// Check probes every transport once and reports the installed mapping.
type Check struct {
	Transports `embed:""`
}

// Run is called by Kong when the check command is executed.
func (c *Check) Run(logger *slog.Logger, transcript log.TranscriptLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if CheckPrerequisites(logger) {
		logger.Info("Prerequisites satisfied")
	}

	target := presence.DefaultTarget()
	runner := execx.NewRunner(c.CommandTimeout, transcript)
	sensor, closeFn, err := c.Transports.Aggregator(runner, target, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	present := false
	for _, r := range sensor.Sample(ctx) {
		if r.Err != nil {
			logger.Warn("probe failed", "transport", r.Transport, "error", r.Err)
			continue
		}
		logger.Info("probe", "transport", r.Transport, "keyboard", target.Name, "present", r.Present)
		present = present || r.Present
	}
	logger.Info("keyboard", "connected", present)

	want := keymap.DefaultPolicy().Table(present)
	current, err := hidutil.NewApplier(runner).Current(ctx)
	if err != nil {
		logger.Warn("could not read installed key mapping", "error", err)
		return nil
	}
	logger.Info("installed key mapping", "entries", current, "expected", want, "inSync", slices.Equal(current, want))
	return nil
}
