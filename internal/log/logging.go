// Package log builds the slog.Logger and command transcript used by every
// autoremap command.
//
// Console records below error go to stdout and errors go to stderr, so a
// launchd agent can keep its error log separate from the regular one.
package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// LevelTrace is below Debug. At trace level the command transcript is echoed
// to stdout unless a raw log file is configured.
const LevelTrace slog.Level = -8

var levels = map[string]slog.Level{
	"trace": LevelTrace,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel maps a level name to its slog level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	if l, ok := levels[s]; ok {
		return l
	}
	return slog.LevelInfo
}

// Sinks holds the diagnostics outputs of one process.
type Sinks struct {
	Logger     *slog.Logger
	Transcript TranscriptLogger

	files []io.Closer
}

// Close closes any log files opened by Open.
func (s *Sinks) Close() error {
	var errs []error
	for _, f := range s.files {
		errs = append(errs, f.Close())
	}
	s.files = nil
	return errors.Join(errs...)
}

// Open builds the logger and transcript described by o. A log file that
// cannot be opened is an error; a raw transcript file that cannot be opened
// is logged and the transcript is disabled.
func (o Options) Open(stdout, stderr io.Writer) (*Sinks, error) {
	level := ParseLevel(o.Level)
	s := &Sinks{}

	var h slog.Handler = consoleHandler{
		out: slog.NewTextHandler(stdout, &slog.HandlerOptions{Level: level}),
		err: slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}),
	}
	if o.File != "" {
		f, err := openAppend(o.File)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		s.files = append(s.files, f)
		h = fanout{h, slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})}
	}
	s.Logger = slog.New(h)

	switch {
	case o.RawFile != "":
		f, err := openAppend(o.RawFile)
		if err != nil {
			s.Logger.Error("failed to open raw log file", "file", o.RawFile, "error", err)
			s.Transcript = NewTranscript(nil)
			break
		}
		s.files = append(s.files, f)
		s.Transcript = NewTranscript(f)
	case level <= LevelTrace:
		s.Transcript = NewTranscript(stdout)
	default:
		s.Transcript = NewTranscript(nil)
	}
	return s, nil
}

func openAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// consoleHandler routes error records to err and everything else to out.
type consoleHandler struct {
	out, err slog.Handler
}

func (c consoleHandler) pick(level slog.Level) slog.Handler {
	if level >= slog.LevelError {
		return c.err
	}
	return c.out
}

func (c consoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return c.pick(level).Enabled(ctx, level)
}

func (c consoleHandler) Handle(ctx context.Context, r slog.Record) error {
	return c.pick(r.Level).Handle(ctx, r)
}

func (c consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return consoleHandler{out: c.out.WithAttrs(attrs), err: c.err.WithAttrs(attrs)}
}

func (c consoleHandler) WithGroup(name string) slog.Handler {
	return consoleHandler{out: c.out.WithGroup(name), err: c.err.WithGroup(name)}
}

// fanout writes each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
