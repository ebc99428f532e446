package presence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sstallion/go-hid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/autoremap/internal/presence"
)

// fakeEnumerator behaves like hid.Enumerate: it never reports hidapi
// failures itself, only errors returned by the callback.
func fakeEnumerator(devices []hid.DeviceInfo) presence.EnumerateFunc {
	return func(vid, pid uint16, fn hid.EnumFunc) error {
		for i := range devices {
			d := devices[i]
			if (vid != 0 && d.VendorID != vid) || (pid != 0 && d.ProductID != pid) {
				continue
			}
			if err := fn(&d); err != nil {
				return err
			}
		}
		return nil
	}
}

func lastError(err error) presence.LastErrorFunc {
	return func() error { return err }
}

func TestUSBProbe(t *testing.T) {
	tests := []struct {
		name     string
		devices  []hid.DeviceInfo
		hidErr   error
		expected bool
		wantErr  bool
	}{
		{
			name:     "attached",
			devices:  []hid.DeviceInfo{{VendorID: 0x046d, ProductID: 0xb35b}},
			expected: true,
		},
		{
			name: "multiple interfaces",
			devices: []hid.DeviceInfo{
				{VendorID: 0x046d, ProductID: 0xb35b, Path: "IOService:/kbd0"},
				{VendorID: 0x046d, ProductID: 0xb35b, Path: "IOService:/kbd1"},
			},
			expected: true,
		},
		{
			name:     "attached despite stale hidapi error",
			devices:  []hid.DeviceInfo{{VendorID: 0x046d, ProductID: 0xb35b}},
			hidErr:   errors.New("hid: permission denied"),
			expected: true,
		},
		{
			name:     "same vendor different product",
			devices:  []hid.DeviceInfo{{VendorID: 0x046d, ProductID: 0xc52b}},
			expected: false,
		},
		{
			name:     "nothing attached",
			expected: false,
		},
		{
			name:     "hidapi reports empty table",
			hidErr:   errors.New("hid: No HID devices with requested VID/PID found in the system."),
			expected: false,
		},
		{
			name:    "enumeration failed",
			hidErr:  errors.New("hid: IOHIDManagerOpen failed: permission denied"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := presence.NewUSBProbeWithEnumerator(0x046d, 0xb35b, fakeEnumerator(tt.devices), lastError(tt.hidErr))
			found, err := p.Probe(context.Background())
			if tt.wantErr {
				var perr *presence.ProbeError
				require.ErrorAs(t, err, &perr)
				assert.Equal(t, presence.TransportUSB, perr.Transport)
				assert.ErrorIs(t, err, tt.hidErr)
				assert.False(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, found)
		})
	}
}

func TestUSBProbeCallbackError(t *testing.T) {
	boom := errors.New("callback failed")
	enum := func(vid, pid uint16, fn hid.EnumFunc) error { return boom }

	_, err := presence.NewUSBProbeWithEnumerator(0x1, 0x2, enum, nil).Probe(context.Background())
	var perr *presence.ProbeError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, boom)
}

func TestUSBProbeStopsAtFirstMatch(t *testing.T) {
	calls := 0
	enum := func(vid, pid uint16, fn hid.EnumFunc) error {
		for i := 0; i < 3; i++ {
			calls++
			if err := fn(&hid.DeviceInfo{VendorID: vid, ProductID: pid}); err != nil {
				return err
			}
		}
		return nil
	}

	found, err := presence.NewUSBProbeWithEnumerator(0x1, 0x2, enum, nil).Probe(context.Background())
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, calls)
}

func TestUSBProbeBoundedWait(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	stuck := func(vid, pid uint16, fn hid.EnumFunc) error {
		<-release
		return nil
	}

	t.Run("timeout", func(t *testing.T) {
		p := presence.NewUSBProbeWithEnumerator(0x1, 0x2, stuck, nil)
		p.Timeout = 20 * time.Millisecond

		found, err := p.Probe(context.Background())
		assert.False(t, found)
		var perr *presence.ProbeError
		require.ErrorAs(t, err, &perr)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := presence.NewUSBProbeWithEnumerator(0x1, 0x2, stuck, nil).Probe(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
