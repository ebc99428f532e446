// Package notify shows desktop notifications when the keyboard comes and goes.
package notify

import (
	"github.com/gen2brain/beeep"
)

type Notifier interface {
	Notify(title, message string) error
}

// Desktop posts notifications through the OS notification center.
type Desktop struct {
	Icon string
}

func (d Desktop) Notify(title, message string) error {
	return beeep.Notify(title, message, d.Icon)
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Notify(string, string) error { return nil }

// PresenceMessage formats the notification for a presence change.
func PresenceMessage(keyboard string, present bool) (title, message string) {
	if present {
		return "Keyboard connected", keyboard + " detected, device-specific key swaps enabled"
	}
	return "Keyboard disconnected", keyboard + " not detected, default key mapping restored"
}
