// Package execx runs the external OS tools the daemon depends on with a
// bounded run time and an exit status check.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/Alia5/autoremap/internal/log"
)

// DefaultTimeout bounds a single external command.
const DefaultTimeout = 5 * time.Second

// Runner executes a command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// CommandError describes a command that could not be started, timed out, or
// exited with a non-zero status.
type CommandError struct {
	Name     string
	ExitCode int // -1 when the process never exited normally
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Name, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExecRunner runs commands through os/exec.
type ExecRunner struct {
	Timeout    time.Duration
	Transcript log.TranscriptLogger
}

// NewRunner returns an ExecRunner with the given timeout; zero selects DefaultTimeout.
func NewRunner(timeout time.Duration, transcript log.TranscriptLogger) *ExecRunner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if transcript == nil {
		transcript = log.NewTranscript(nil)
	}
	return &ExecRunner{Timeout: timeout, Transcript: transcript}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	err := cmd.Run()
	if err != nil {
		cerr := &CommandError{
			Name:     name,
			ExitCode: -1,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cerr.ExitCode = exitErr.ExitCode()
		}
		switch ctxErr := ctx.Err(); {
		case errors.Is(ctxErr, context.DeadlineExceeded):
			cerr.Err = fmt.Errorf("timed out after %s: %w", timeout, ctxErr)
		case ctxErr != nil:
			cerr.Err = ctxErr
		}
		err = cerr
	}
	if r.Transcript != nil {
		r.Transcript.Log(name, args, stdout.Bytes(), err)
	}
	if err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

// RunnerFunc adapts a plain function to the Runner interface.
type RunnerFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func (f RunnerFunc) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return f(ctx, name, args...)
}
