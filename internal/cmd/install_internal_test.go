package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/autoremap/internal/execx"
	th "github.com/Alia5/autoremap/internal/testing"
)

func testAgent(t *testing.T, runner execx.Runner) launchAgent {
	dir := t.TempDir()
	return launchAgent{
		runner:    runner,
		domain:    "gui/501",
		plistPath: filepath.Join(dir, "LaunchAgents", agentLabel+".plist"),
		logFile:   filepath.Join(dir, "Logs", "autoremap & co.log"),
		exe:       "/usr/local/bin/autoremap",
	}
}

func TestLaunchAgentInstall(t *testing.T) {
	runner := th.NewRunner().On("launchctl",
		th.Response{Err: &execx.CommandError{Name: "launchctl", ExitCode: 3, Err: errors.New("exit status 3")}},
		th.Response{},
	)
	agent := testAgent(t, runner)

	require.NoError(t, agent.install(context.Background(), slog.New(slog.DiscardHandler), 15))

	assert.Equal(t, []string{
		"launchctl bootout gui/501/" + agentLabel,
		"launchctl bootstrap gui/501 " + agent.plistPath,
	}, runner.CommandLines())

	data, err := os.ReadFile(agent.plistPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<string>"+agentLabel+"</string>")
	assert.Contains(t, string(data), "<string>/usr/local/bin/autoremap</string>\n\t\t<string>run</string>\n\t\t<string>--interval</string>\n\t\t<string>15</string>")
	assert.Contains(t, string(data), "autoremap &amp; co.log")
}

func TestLaunchAgentInstallBootstrapFails(t *testing.T) {
	failure := &execx.CommandError{Name: "launchctl", ExitCode: 5, Stderr: "Bootstrap failed: 5: Input/output error", Err: errors.New("exit status 5")}
	runner := th.NewRunner().On("launchctl", th.Response{}, th.Response{Err: failure})
	agent := testAgent(t, runner)

	err := agent.install(context.Background(), slog.New(slog.DiscardHandler), 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, failure)
	assert.Contains(t, err.Error(), "launchctl bootstrap gui/501")
}

func TestLaunchAgentUninstall(t *testing.T) {
	t.Run("removes agent", func(t *testing.T) {
		runner := th.NewRunner()
		agent := testAgent(t, runner)
		require.NoError(t, os.MkdirAll(filepath.Dir(agent.plistPath), 0o755))
		require.NoError(t, os.WriteFile(agent.plistPath, []byte("plist"), 0o644))

		require.NoError(t, agent.uninstall(context.Background(), slog.New(slog.DiscardHandler), false))

		assert.Equal(t, []string{"launchctl bootout gui/501/" + agentLabel}, runner.CommandLines())
		assert.NoFileExists(t, agent.plistPath)
	})

	t.Run("reset clears mapping", func(t *testing.T) {
		runner := th.NewRunner()
		agent := testAgent(t, runner)

		require.NoError(t, agent.uninstall(context.Background(), slog.New(slog.DiscardHandler), true))

		calls := runner.Calls()
		require.Len(t, calls, 2)
		assert.Equal(t, "launchctl", calls[0].Name)
		assert.Equal(t, "hidutil", calls[1].Name)
		assert.Equal(t, []string{"property", "--set"}, calls[1].Args[:2])
	})

	t.Run("errors are joined", func(t *testing.T) {
		bootout := errors.New("no such process")
		runner := th.NewRunner().
			On("launchctl", th.Response{Err: bootout}).
			On("hidutil", th.Response{Err: errors.New("denied")})
		agent := testAgent(t, runner)

		err := agent.uninstall(context.Background(), slog.New(slog.DiscardHandler), true)
		require.Error(t, err)
		assert.ErrorIs(t, err, bootout)
		assert.Contains(t, err.Error(), "launchctl bootout")
		assert.Contains(t, err.Error(), "denied")
	})
}
