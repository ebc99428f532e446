package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Alia5/autoremap/internal/execx"
)

const (
	TransportBluetooth = "bluetooth"

	systemProfiler     = "system_profiler"
	bluetoothDataType  = "SPBluetoothDataType"
	bluetoothConnected = "device_connected"
)

// BluetoothProbe inspects the connected devices reported by system_profiler.
type BluetoothProbe struct {
	Runner        execx.Runner
	NameSubstring string
}

func NewBluetoothProbe(r execx.Runner, nameSubstring string) *BluetoothProbe {
	return &BluetoothProbe{Runner: r, NameSubstring: nameSubstring}
}

func (p *BluetoothProbe) Name() string { return TransportBluetooth }

func (p *BluetoothProbe) Probe(ctx context.Context) (bool, error) {
	out, err := p.Runner.Run(ctx, systemProfiler, bluetoothDataType, "-json")
	if err != nil {
		return false, &ProbeError{Transport: TransportBluetooth, Err: err}
	}
	found, err := ConnectedBluetoothDevice(out, p.NameSubstring)
	if err != nil {
		return false, &ProbeError{Transport: TransportBluetooth, Err: err}
	}
	return found, nil
}

// ConnectedBluetoothDevice reports whether the system_profiler JSON output
// lists a connected device whose name contains nameSubstring.
//
// Output that is not valid JSON, or whose sections have unexpected types, is an
// error. A missing Bluetooth section or connected-device list is not: it means
// there is no controller or nothing is connected.
func ConnectedBluetoothDevice(out []byte, nameSubstring string) (bool, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(out, &root); err != nil {
		return false, fmt.Errorf("decode %s output: %w", systemProfiler, err)
	}
	raw, ok := root[bluetoothDataType]
	if !ok || isNull(raw) {
		return false, nil
	}

	var controllers []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &controllers); err != nil {
		return false, fmt.Errorf("decode %s: %w", bluetoothDataType, err)
	}
	for _, controller := range controllers {
		raw, ok := controller[bluetoothConnected]
		if !ok || isNull(raw) {
			continue
		}
		var devices []json.RawMessage
		if err := json.Unmarshal(raw, &devices); err != nil {
			return false, fmt.Errorf("decode %s: %w", bluetoothConnected, err)
		}
		for _, dev := range devices {
			names, err := deviceNames(dev)
			if err != nil {
				return false, err
			}
			for _, name := range names {
				if strings.Contains(name, nameSubstring) {
					return true, nil
				}
			}
		}
	}
	return false, nil
}

// deviceNames extracts the descriptive names of one connected-device entry.
// macOS emits {"<name>": {...properties}}; a bare string is accepted as well.
func deviceNames(raw json.RawMessage) ([]string, error) {
	var byName map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byName); err == nil {
		names := make([]string, 0, len(byName))
		for name := range byName {
			names = append(names, name)
		}
		return names, nil
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return nil, fmt.Errorf("decode %s entry: unexpected %s", bluetoothConnected, string(raw))
	}
	return []string{name}, nil
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
