package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/compass/internal/logger"
)

func TestRootCmd_RegistersCommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"ask", "admin", "history", "settings", "tui", "mcp", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	v := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, v)
	assert.Equal(t, "v", v.Shorthand)
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config-dir"))
}

func TestRootCmd_VerboseEnablesLogger(t *testing.T) {
	defer logger.SetVerbose(false)

	_, _, err := execute(t, "--verbose", "version")

	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())
}

func TestConfigDir(t *testing.T) {
	defer resetFlags(rootCmd)

	dir := ConfigDir([]string{"ask", "--city", "x", "--config-dir", "/tmp/compass", "food"})

	assert.Equal(t, "/tmp/compass", dir)
}

func TestSetters(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	SetAskService(nil)
	assert.Nil(t, askService)
	SetAskService(ts.ask)
	assert.Equal(t, ts.ask, askService)

	SetAdminService(ts.admin)
	assert.Equal(t, ts.admin, adminService)
	SetHistoryService(ts.history)
	assert.Equal(t, ts.history, historyService)
	SetSettingsService(ts.settings)
	assert.Equal(t, ts.settings, settingsService)

	orig := version
	defer func() { version = orig }()
	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}

type mockWatcher struct {
	started chan struct{}
}

func (m *mockWatcher) Watch(ctx context.Context, onChange func()) error {
	onChange()
	close(m.started)
	<-ctx.Done()
	return ctx.Err()
}

func TestWatchConfig(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	w := &mockWatcher{started: make(chan struct{})}
	SetConfigWatcher(w)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watchConfig(ctx)

	<-w.started
}

func TestWatchConfig_NoWatcher(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	assert.NotPanics(t, func() { watchConfig(context.Background()) })
}

func TestTUICmd_HelpOutput(t *testing.T) {
	out, _, err := execute(t, "tui", "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "interactive terminal user interface")
	assert.Contains(t, out, "Controls:")
}

func TestMCPCmd_HTTPFlag(t *testing.T) {
	flag := mcpCmd.Flags().Lookup("http")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestMCPCmd_HelpOutput(t *testing.T) {
	out, _, err := execute(t, "mcp", "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "admin_summary")
}
