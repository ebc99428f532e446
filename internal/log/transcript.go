package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// TranscriptLogger records every external command the daemon runs together
// with its outcome. Used for debugging probe and installer behavior.
type TranscriptLogger interface {
	Log(name string, args []string, output []byte, err error)
}

type transcriptLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewTranscript creates a new TranscriptLogger. If writer is nil, returns a no-op logger.
func NewTranscript(w io.Writer) TranscriptLogger {
	return &transcriptLogger{w: w}
}

// Log emits a single-line record of the command followed by its output.
func (t *transcriptLogger) Log(name string, args []string, output []byte, err error) {
	if t.w == nil {
		return
	}

	status := "ok"
	if err != nil {
		status = "error: " + err.Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s $ %s %s (%s, %d bytes)\n",
		time.Now().Format("2006/01/02 15:04:05"),
		name,
		strings.Join(args, " "),
		status,
		len(output))
	if len(output) > 0 {
		b.Write(output)
		if output[len(output)-1] != '\n' {
			b.WriteByte('\n')
		}
	}

	t.mu.Lock()
	_, _ = io.WriteString(t.w, b.String())
	t.mu.Unlock()
}
