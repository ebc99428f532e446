package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alia5/autoremap/internal/execx"
	"github.com/Alia5/autoremap/internal/hidutil"
	"github.com/Alia5/autoremap/internal/keymap"
	"github.com/Alia5/autoremap/internal/log"
	"github.com/Alia5/autoremap/internal/notify"
	"github.com/Alia5/autoremap/internal/presence"
	"github.com/Alia5/autoremap/internal/reconcile"
)

// Transports selects which presence probes are used.
type Transports struct {
	NoBluetooth    bool          `help:"Do not look for the keyboard over Bluetooth" env:"AUTOREMAP_NO_BLUETOOTH"`
	NoUSB          bool          `name:"no-usb" help:"Do not look for the keyboard over USB" env:"AUTOREMAP_NO_USB"`
	CommandTimeout time.Duration `help:"Timeout for each external command" default:"5s" env:"AUTOREMAP_COMMAND_TIMEOUT"`
}

// Run watches for the keyboard and keeps the host key mapping in sync.
type Run struct {
	Interval   int  `short:"i" help:"Seconds between presence checks" default:"10" env:"AUTOREMAP_INTERVAL"`
	Notify     bool `help:"Show a desktop notification when the keyboard connects or disconnects" env:"AUTOREMAP_NOTIFY"`
	Transports `embed:""`
}

func (r *Run) Validate() error {
	if r.Interval <= 0 {
		return errors.New("--interval must be a positive number of seconds")
	}
	return nil
}

// Run is called by Kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, transcript log.TranscriptLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.Watch(ctx, logger, transcript)
}

// Watch runs the reconciliation loop until ctx is cancelled.
func (r *Run) Watch(ctx context.Context, logger *slog.Logger, transcript log.TranscriptLogger) error {
	target := presence.DefaultTarget()
	runner := execx.NewRunner(r.CommandTimeout, transcript)

	CheckPrerequisites(logger)

	sensor, closeFn, err := r.Transports.Aggregator(runner, target, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	logger.Info("Starting autoremap", "keyboard", target.String(), "transports", transportNames(sensor))

	loop := reconcile.New(sensor, hidutil.NewApplier(runner), keymap.DefaultPolicy(), time.Duration(r.Interval)*time.Second, logger)
	if r.Notify {
		loop.OnApplied = notifyOnChange(notify.Desktop{}, target.Name, logger)
	}
	return loop.Run(ctx)
}

// Aggregator builds the presence aggregator for the enabled transports. The
// returned func releases transport resources.
func (t Transports) Aggregator(runner execx.Runner, target presence.Target, logger *slog.Logger) (*presence.Aggregator, func(), error) {
	var probes []presence.Probe
	closeFn := func() {}

	if !t.NoBluetooth {
		probes = append(probes, presence.NewBluetoothProbe(runner, target.Name))
	}
	if !t.NoUSB {
		usb := presence.NewUSBProbe(target.VendorID, target.ProductID)
		usb.Timeout = t.CommandTimeout
		if err := usb.Init(); err != nil {
			logger.Warn("USB device enumeration unavailable", "error", err)
		}
		closeFn = func() { _ = usb.Close() }
		probes = append(probes, usb)
	}
	if len(probes) == 0 {
		closeFn()
		return nil, nil, errors.New("all transports disabled; enable Bluetooth or USB")
	}
	return presence.NewAggregator(logger, probes...), closeFn, nil
}

func transportNames(a *presence.Aggregator) []string {
	var names []string
	for _, p := range a.Probes() {
		names = append(names, p.Name())
	}
	return names
}

// notifyOnChange returns an OnApplied hook that notifies only when presence
// differs from the previous successful apply. The first apply is silent.
func notifyOnChange(n notify.Notifier, keyboard string, logger *slog.Logger) func(bool) {
	first := true
	var last bool
	return func(present bool) {
		if !first && present == last {
			return
		}
		announce := !first
		first = false
		last = present
		if !announce {
			return
		}
		title, msg := notify.PresenceMessage(keyboard, present)
		if err := n.Notify(title, msg); err != nil {
			logger.Debug("notification failed", "error", err)
		}
	}
}
