// Package testing provides shared fakes for tests that exercise external commands.
package testing

import (
	"context"
	"strings"
	"sync"
)

// Call is one recorded command invocation.
type Call struct {
	Name string
	Args []string
}

// Response is what the fake returns for a command.
type Response struct {
	Output []byte
	Err    error
}

// Runner is a scripted execx.Runner. Responses are looked up by command name;
// queued responses are consumed in order and the last one repeats.
type Runner struct {
	mu        sync.Mutex
	responses map[string][]Response
	calls     []Call
}

func NewRunner() *Runner {
	return &Runner{responses: map[string][]Response{}}
}

// On queues responses for the named command.
func (r *Runner) On(name string, responses ...Response) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[name] = append(r.responses[name], responses...)
	return r
}

// OnOutput queues a successful response with the given stdout.
func (r *Runner) OnOutput(name, output string) *Runner {
	return r.On(name, Response{Output: []byte(output)})
}

func (r *Runner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Name: name, Args: append([]string(nil), args...)})

	queue := r.responses[name]
	if len(queue) == 0 {
		return nil, nil
	}
	resp := queue[0]
	if len(queue) > 1 {
		r.responses[name] = queue[1:]
	}
	return resp.Output, resp.Err
}

// Calls returns the recorded invocations.
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// CommandLines returns each recorded invocation as a single space-joined string.
func (r *Runner) CommandLines() []string {
	var lines []string
	for _, c := range r.Calls() {
		lines = append(lines, strings.TrimSpace(c.Name+" "+strings.Join(c.Args, " ")))
	}
	return lines
}
