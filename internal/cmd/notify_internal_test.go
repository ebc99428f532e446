package cmd

import (
	"errors"
	"log/slog"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingNotifier struct {
	titles []string
	err    error
}

func (r *recordingNotifier) Notify(title, _ string) error {
	r.titles = append(r.titles, title)
	return r.err
}

func TestNotifyOnChange(t *testing.T) {
	n := &recordingNotifier{}
	hook := notifyOnChange(n, "MX Keys", slog.New(slog.DiscardHandler))

	hook(false) // initial apply
	hook(false) // retry of the same state
	hook(true)
	hook(true)
	hook(false)

	assert.Equal(t, []string{"Keyboard connected", "Keyboard disconnected"}, n.titles)
}

func TestNotifyOnChangeIgnoresErrors(t *testing.T) {
	n := &recordingNotifier{err: errors.New("no notification center")}
	hook := notifyOnChange(n, "MX Keys", slog.New(slog.DiscardHandler))

	assert.NotPanics(t, func() {
		hook(true)
		hook(false)
	})
	assert.Len(t, n.titles, 1)
}

func TestConfigKey(t *testing.T) {
	type sample struct {
		Interval       int
		CommandTimeout int
		NoBluetooth    bool
		NoUSB          bool `name:"no-usb"`
		RawFile        string
		HIDPath        string
	}
	got := buildMapFromStruct(reflect.TypeOf(sample{}))
	assert.Len(t, got, 6)
	for _, k := range []string{"interval", "command_timeout", "no_bluetooth", "no_usb", "raw_file", "hid_path"} {
		assert.Contains(t, got, k)
	}
}
