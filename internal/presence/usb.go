package presence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sstallion/go-hid"
)

const TransportUSB = "usb"

var errFound = errors.New("device found")

// EnumerateFunc matches hid.Enumerate.
type EnumerateFunc func(vid, pid uint16, fn hid.EnumFunc) error

// LastErrorFunc matches hid.Error. hid.Enumerate returns nil both for an empty
// device table and for a failed enumeration; the difference is only visible
// through hidapi's last error.
type LastErrorFunc func() error

// USBProbe checks the HID device table for a vendor/product id pair.
type USBProbe struct {
	VendorID  uint16
	ProductID uint16
	// Timeout bounds a single enumeration; zero means only ctx bounds it.
	Timeout time.Duration

	enumerate EnumerateFunc
	lastError LastErrorFunc
}

func NewUSBProbe(vendorID, productID uint16) *USBProbe {
	return NewUSBProbeWithEnumerator(vendorID, productID, hid.Enumerate, hid.Error)
}

// NewUSBProbeWithEnumerator allows replacing the hidapi enumeration.
func NewUSBProbeWithEnumerator(vendorID, productID uint16, enumerate EnumerateFunc, lastError LastErrorFunc) *USBProbe {
	if lastError == nil {
		lastError = func() error { return nil }
	}
	return &USBProbe{VendorID: vendorID, ProductID: productID, enumerate: enumerate, lastError: lastError}
}

func (p *USBProbe) Name() string { return TransportUSB }

type enumResult struct {
	found bool
	err   error
}

// Probe runs the enumeration on its own goroutine so ctx and Timeout bound
// the wait. hidapi cannot be interrupted; a stuck enumeration keeps its
// goroutine until hidapi returns.
func (p *USBProbe) Probe(ctx context.Context) (bool, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	done := make(chan enumResult, 1)
	go func() {
		found, err := p.scan()
		done <- enumResult{found: found, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return false, &ProbeError{Transport: TransportUSB, Err: r.err}
		}
		return r.found, nil
	case <-ctx.Done():
		return false, &ProbeError{Transport: TransportUSB, Err: fmt.Errorf("enumeration: %w", ctx.Err())}
	}
}

func (p *USBProbe) scan() (bool, error) {
	err := p.enumerate(p.VendorID, p.ProductID, func(info *hid.DeviceInfo) error {
		if info.VendorID == p.VendorID && info.ProductID == p.ProductID {
			return errFound
		}
		return nil
	})
	if errors.Is(err, errFound) {
		return true, nil
	}
	if err == nil {
		err = p.lastError()
	}
	if err == nil || isNoDevices(err) {
		return false, nil
	}
	return false, err
}

// Init initializes hidapi. Enumeration initializes lazily, so calling it is
// only needed to surface permission problems early.
func (p *USBProbe) Init() error {
	return hid.Init()
}

// Close releases hidapi resources.
func (p *USBProbe) Close() error {
	return hid.Exit()
}

// hidapi sets this message when the table simply has no matching device.
func isNoDevices(err error) bool {
	return strings.Contains(err.Error(), "No HID devices")
}
