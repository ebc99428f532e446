// Package reconcile keeps the host key mapping in line with keyboard presence.
package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Alia5/autoremap/internal/keymap"
)

//go:generate mockgen -source=loop.go -destination=mocks/mock_loop.go

// Sensor reports the combined presence of the target keyboard.
type Sensor interface {
	Present(ctx context.Context) bool
}

// Applier installs a complete mapping table on the host.
type Applier interface {
	Apply(ctx context.Context, table keymap.MappingTable) error
}

// DefaultInterval is the time between presence checks.
const DefaultInterval = 10 * time.Second

type phase int

const (
	uninitialized phase = iota
	steady
)

// state is owned by the loop goroutine only.
type state struct {
	phase    phase
	presence bool
	// pending is set when the last apply failed; the next tick re-applies
	// even if presence is unchanged.
	pending bool
}

// Loop probes presence on a fixed interval and re-applies the mapping table
// whenever presence changes.
type Loop struct {
	sensor   Sensor
	applier  Applier
	policy   keymap.Policy
	interval time.Duration
	logger   *slog.Logger

	// OnApplied is called after every successful apply.
	OnApplied func(present bool)

	state state
}

func New(sensor Sensor, applier Applier, policy keymap.Policy, interval time.Duration, logger *slog.Logger) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		sensor:   sensor,
		applier:  applier,
		policy:   policy,
		interval: interval,
		logger:   logger,
	}
}

// Step runs a single reconciliation tick. It returns the apply error, if any;
// the loop stays usable and retries on the next Step.
func (l *Loop) Step(ctx context.Context) error {
	present := l.sensor.Present(ctx)
	if err := ctx.Err(); err != nil {
		// Probes were interrupted; their result is meaningless.
		return err
	}

	if l.state.phase == steady && !l.state.pending && present == l.state.presence {
		return nil
	}

	if l.state.pending && l.state.presence == present {
		l.logger.Info("retrying update", "keyboardConnected", present)
	} else {
		l.logger.Info("update", "keyboardConnected", present)
	}

	table := l.policy.Table(present)
	err := l.applier.Apply(ctx, table)
	l.state = state{phase: steady, presence: present, pending: err != nil}
	if err != nil {
		return err
	}

	l.logger.Debug("mapping applied", "entries", len(table))
	if l.OnApplied != nil {
		l.OnApplied(present)
	}
	return nil
}

// Run applies the table for the initial presence state, then re-checks every
// interval until ctx is cancelled. Apply failures are logged and retried.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("watching keyboard presence", "interval", l.interval)

	l.step(ctx)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping")
			return nil
		case <-ticker.C:
			l.step(ctx)
		}
	}
}

func (l *Loop) step(ctx context.Context) {
	err := l.Step(ctx)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	l.logger.Error("failed to apply key mapping, will retry", "error", err)
}
