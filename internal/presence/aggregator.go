package presence

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one probe within a sample.
type Result struct {
	Transport string
	Present   bool
	Err       error
}

// Aggregator ORs the results of a set of probes.
type Aggregator struct {
	probes []Probe
	logger *slog.Logger
}

func NewAggregator(logger *slog.Logger, probes ...Probe) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{probes: probes, logger: logger}
}

// Probes returns the configured transports in order.
func (a *Aggregator) Probes() []Probe {
	return append([]Probe(nil), a.probes...)
}

// Sample runs every probe concurrently and returns the individual results in
// probe order.
func (a *Aggregator) Sample(ctx context.Context) []Result {
	results := make([]Result, len(a.probes))
	var g errgroup.Group
	for i, p := range a.probes {
		g.Go(func() error {
			present, err := p.Probe(ctx)
			results[i] = Result{Transport: p.Name(), Present: present && err == nil, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Present reports whether any probe sees the keyboard. A failing probe counts
// as absent; the failure is logged and never returned.
func (a *Aggregator) Present(ctx context.Context) bool {
	present := false
	for _, r := range a.Sample(ctx) {
		if r.Err != nil {
			err := r.Err
			var perr *ProbeError
			if errors.As(err, &perr) {
				err = perr.Err
			}
			// Shutdown interrupts in-flight probes; that is not a transport failure.
			if errors.Is(err, context.Canceled) {
				a.logger.Debug("probe interrupted", "transport", r.Transport, "error", err)
				continue
			}
			a.logger.Warn("probe failed, treating transport as absent", "transport", r.Transport, "error", err)
			continue
		}
		a.logger.Debug("probe", "transport", r.Transport, "present", r.Present)
		present = present || r.Present
	}
	return present
}
