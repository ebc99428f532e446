// Package presence detects whether the target keyboard is reachable over any
// of the configured transports.
package presence

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=probe.go -destination=mocks/mock_probe.go

// Probe reports whether the target keyboard is reachable over one transport.
// A probe that cannot query its transport returns a *ProbeError.
type Probe interface {
	Name() string
	Probe(ctx context.Context) (bool, error)
}

// ProbeFunc adapts a function to the Probe interface.
type ProbeFunc struct {
	Transport string
	Fn        func(ctx context.Context) (bool, error)
}

func (p ProbeFunc) Name() string { return p.Transport }

func (p ProbeFunc) Probe(ctx context.Context) (bool, error) { return p.Fn(ctx) }

// ProbeError means a transport could not be queried at all.
type ProbeError struct {
	Transport string
	Err       error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("%s probe failed: %v", e.Transport, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// Target identifies the keyboard across transports.
type Target struct {
	// Name is matched as a case-sensitive substring of connected Bluetooth device names.
	Name      string
	VendorID  uint16
	ProductID uint16
}

// DefaultTarget is the Logitech MX Keys.
func DefaultTarget() Target {
	return Target{
		Name:      "MX Keys",
		VendorID:  0x046d,
		ProductID: 0xb35b,
	}
}

func (t Target) String() string {
	return fmt.Sprintf("%q (%04x:%04x)", t.Name, t.VendorID, t.ProductID)
}
