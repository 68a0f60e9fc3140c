// Package cli provides the cobra command tree of the compass binary.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/core/ports/driving"
	"github.com/custodia-labs/compass/internal/logger"
)

var (
	version   = "dev"
	verbose   bool
	configDir string
)

// Services used by the commands. Set by the entry point before Execute.
var (
	askService      driving.AskService
	adminService    driving.AdminService
	historyService  driving.HistoryService
	settingsService driving.SettingsService
	markupSanitizer driven.MarkupSanitizer
	configWatcher   driven.ConfigWatcher
)

var rootCmd = &cobra.Command{
	Use:   "compass",
	Short: "Find community resources from the terminal",
	Long: `Compass asks the resource-matching service about a situation and shows
the matched resources grouped by theme, together with an action plan that
cites them.

Run without a subcommand to see the available commands, or use
"compass tui" for the interactive interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory holding config.toml and history.db")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// ConfigDir returns the directory given with --config-dir. It parses the
// persistent flags on its own so the entry point can build the stores
// before the command tree runs.
func ConfigDir(args []string) string {
	flags := rootCmd.PersistentFlags()
	flags.ParseErrorsWhitelist.UnknownFlags = true
	if err := flags.Parse(args); err != nil {
		return ""
	}
	return configDir
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetAskService sets the query service.
func SetAskService(s driving.AskService) {
	askService = s
}

// SetAdminService sets the admin editor service.
func SetAdminService(s driving.AdminService) {
	adminService = s
}

// SetHistoryService sets the query history service.
func SetHistoryService(s driving.HistoryService) {
	historyService = s
}

// SetSettingsService sets the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetSanitizer sets the sanitizer applied to rendered action plans.
func SetSanitizer(s driven.MarkupSanitizer) {
	markupSanitizer = s
}

// SetConfigWatcher sets the watcher long-running commands use to reload
// the configuration file.
func SetConfigWatcher(w driven.ConfigWatcher) {
	configWatcher = w
}

// watchConfig reloads the configuration in the background until ctx is
// done. It does nothing without a watcher.
func watchConfig(ctx context.Context) {
	if configWatcher == nil {
		return
	}
	go func() {
		err := configWatcher.Watch(ctx, func() {
			logger.Info("Configuration reloaded")
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("Config watcher stopped: %v", err)
		}
	}()
}
