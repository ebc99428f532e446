package cmd

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Alia5/autoremap/internal/execx"
	"github.com/Alia5/autoremap/internal/hidutil"
	"github.com/Alia5/autoremap/internal/log"
)

const agentLabel = "com.github.alia5.autoremap"

// Install registers the daemon to start at login.
type Install struct {
	Interval int `short:"i" help:"Seconds between presence checks for the installed daemon" default:"10"`
}

func (i *Install) Validate() error {
	return (&Run{Interval: i.Interval}).Validate()
}

// Run is called by Kong when the install command is executed.
func (i *Install) Run(logger *slog.Logger, transcript log.TranscriptLogger) error {
	agent, err := newLaunchAgent(execx.NewRunner(execx.DefaultTimeout, transcript))
	if err != nil {
		return err
	}
	return agent.install(context.Background(), logger, i.Interval)
}

// Uninstall removes the login item installed by Install.
type Uninstall struct {
	Reset bool `help:"Also clear the installed key mapping"`
}

// Run is called by Kong when the uninstall command is executed.
func (u *Uninstall) Run(logger *slog.Logger, transcript log.TranscriptLogger) error {
	agent, err := newLaunchAgent(execx.NewRunner(execx.DefaultTimeout, transcript))
	if err != nil {
		return err
	}
	return agent.uninstall(context.Background(), logger, u.Reset)
}

// launchAgent manages the per-user launchd job running the daemon.
type launchAgent struct {
	runner    execx.Runner
	domain    string // gui/<uid>
	plistPath string
	logFile   string
	exe       string
}

func (a launchAgent) target() string { return a.domain + "/" + agentLabel }

func (a launchAgent) launchctl(ctx context.Context, args ...string) error {
	if _, err := a.runner.Run(ctx, "launchctl", args...); err != nil {
		return fmt.Errorf("launchctl %s: %w", strings.Join(args, " "), err)
	}
	return nil
}

func (a launchAgent) install(ctx context.Context, logger *slog.Logger, interval int) error {
	if err := os.MkdirAll(filepath.Dir(a.plistPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(a.plistPath, []byte(a.plist(interval)), 0o644); err != nil {
		return err
	}

	// Reinstalling replaces a running agent; bootout fails when none is loaded.
	if err := a.launchctl(ctx, "bootout", a.target()); err != nil {
		logger.Debug("no running agent to replace", "error", err)
	}
	if err := a.launchctl(ctx, "bootstrap", a.domain, a.plistPath); err != nil {
		return err
	}

	logger.Info("autoremap launch agent installed", "path", a.plistPath, "exe", a.exe, "log", a.logFile)
	return nil
}

func (a launchAgent) uninstall(ctx context.Context, logger *slog.Logger, reset bool) error {
	var errs []error
	if err := a.launchctl(ctx, "bootout", a.target()); err != nil {
		errs = append(errs, err)
	}
	if err := os.Remove(a.plistPath); err != nil && !os.IsNotExist(err) {
		errs = append(errs, err)
	}
	if reset {
		if err := hidutil.NewApplier(a.runner).Reset(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	logger.Info("autoremap launch agent removed", "path", a.plistPath)
	return nil
}

func (a launchAgent) plist(interval int) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
		<string>run</string>
		<string>--interval</string>
		<string>%d</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>KeepAlive</key>
	<true/>
	<key>StandardOutPath</key>
	<string>%s</string>
	<key>StandardErrorPath</key>
	<string>%s</string>
</dict>
</plist>
`, agentLabel, xmlEscape(a.exe), interval, xmlEscape(a.logFile), xmlEscape(a.logFile))
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
