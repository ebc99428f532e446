package notify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alia5/autoremap/internal/notify"
)

func TestPresenceMessage(t *testing.T) {
	title, msg := notify.PresenceMessage("MX Keys", true)
	assert.Equal(t, "Keyboard connected", title)
	assert.Contains(t, msg, "MX Keys")

	title, msg = notify.PresenceMessage("MX Keys", false)
	assert.Equal(t, "Keyboard disconnected", title)
	assert.Contains(t, msg, "default key mapping restored")
}

func TestNop(t *testing.T) {
	var n notify.Notifier = notify.Nop{}
	assert.NoError(t, n.Notify("a", "b"))
}
